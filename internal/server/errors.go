package server

import (
	"errors"
	"net/http"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	ofdomain "github.com/cafeledger/cafeledger/internal/orderflow/domain"
	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware translates domain sentinels pushed through
// c.Error into JSON responses. Handlers that already wrote a body are left
// alone.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ofdomain.ErrForbidden),
		errors.Is(err, ofdomain.ErrTrialExpired):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ofdomain.ErrResetUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ofdomain.ErrMissingTableCode),
		errors.Is(err, ofdomain.ErrCafeteriaCodeMismatch),
		errors.Is(err, ofdomain.ErrTableInactive),
		errors.Is(err, ofdomain.ErrInvalidTransition),
		errors.Is(err, ofdomain.ErrInvalidRechargeStatus),
		errors.Is(err, settingsdomain.ErrCommissionSumInvalid),
		errors.Is(err, settingsdomain.ErrNegativeRate),
		errors.Is(err, settingsdomain.ErrInvalidTrialDays):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ofdomain.ErrCafeteriaNotFound),
		errors.Is(err, ofdomain.ErrTableNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, cafedomain.ErrNotFound),
		errors.Is(err, staffdomain.ErrNotFound),
		errors.Is(err, ledgerdomain.ErrRechargeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ofdomain.ErrNoPointsBalance),
		errors.Is(err, ofdomain.ErrInsufficientPoints),
		errors.Is(err, ofdomain.ErrInsufficientMarketerBalance),
		errors.Is(err, ofdomain.ErrRechargeAlreadyProcessed),
		errors.Is(err, ofdomain.ErrSettlementBusy),
		errors.Is(err, cafedomain.ErrInsufficientPoints):
		return true
	default:
		return false
	}
}
