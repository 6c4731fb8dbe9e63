package server

import (
	"net/http"

	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

type updateCommissionConfigRequest struct {
	RateDirectParentPercent *int `json:"rate_direct_parent_percent" binding:"required"`
	RateGrandparentPercent  *int `json:"rate_grandparent_percent" binding:"required"`
	RateOwnerPercent        *int `json:"rate_owner_percent" binding:"required"`
}

func (s *Server) getCommissionConfig(c *gin.Context) {
	cfg, err := s.flow.CommissionConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) updateCommissionConfig(c *gin.Context) {
	var req updateCommissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cfg := settingsdomain.CommissionConfig{
		RateDirectParentPercent: *req.RateDirectParentPercent,
		RateGrandparentPercent:  *req.RateGrandparentPercent,
		RateOwnerPercent:        *req.RateOwnerPercent,
	}
	if err := s.flow.UpdateCommissionConfig(c.Request.Context(), cfg); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) getTrialConfig(c *gin.Context) {
	cfg, err := s.flow.TrialConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) updateTrialConfig(c *gin.Context) {
	var req struct {
		GlobalTrialDays *int `json:"global_trial_days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cfg := settingsdomain.TrialConfig{GlobalTrialDays: *req.GlobalTrialDays}
	if err := s.flow.UpdateTrialConfig(c.Request.Context(), cfg); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
