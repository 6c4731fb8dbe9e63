package server

import (
	"net/http"
	"sort"

	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	ofdomain "github.com/cafeledger/cafeledger/internal/orderflow/domain"
	"github.com/gin-gonic/gin"
)

type createRechargeRequest struct {
	CafeteriaID   string `json:"cafeteria_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	ProofImageURL string `json:"proof_image_url"`
}

type processRechargeRequest struct {
	Status ledgerdomain.RechargeStatus `json:"status" binding:"required"`
	Notes  string                      `json:"notes"`
}

type createPayoutRequest struct {
	MarketerID string `json:"marketer_id" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Note       string `json:"note"`
	CreatedBy  string `json:"created_by"`
}

func (s *Server) listRecharges(c *gin.Context) {
	requests, err := s.ledger.RechargeRequests(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recharge_requests": requests})
}

func (s *Server) listCafeteriaRecharges(c *gin.Context) {
	requests, err := s.ledger.RechargeRequestsByCafeteria(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recharge_requests": requests})
}

func (s *Server) createRecharge(c *gin.Context) {
	var req createRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	request, err := s.flow.CreateRechargeRequest(c.Request.Context(), ofdomain.CreateRechargeInput{
		CafeteriaID:   req.CafeteriaID,
		Amount:        req.Amount,
		ProofImageURL: req.ProofImageURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (s *Server) processRecharge(c *gin.Context) {
	var req processRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	request, err := s.flow.ProcessRechargeRequest(c.Request.Context(), ofdomain.ProcessRechargeInput{
		RequestID: c.Param("id"),
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// listMarketers derives the known marketer IDs from the cafeteria registry:
// every direct and grandparent attribution counts.
func (s *Server) listMarketers(c *gin.Context) {
	cafeterias, err := s.cafes.FindAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	seen := make(map[string]struct{})
	marketers := make([]string, 0)
	add := func(id *string) {
		if id == nil || *id == "" {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		marketers = append(marketers, *id)
	}
	for i := range cafeterias {
		add(cafeterias[i].MarketerID)
		add(cafeterias[i].GrandparentMarketerID)
	}
	sort.Strings(marketers)

	c.JSON(http.StatusOK, gin.H{"marketers": marketers})
}

func (s *Server) getMarketerBalance(c *gin.Context) {
	balance, err := s.flow.MarketerBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"marketer_id": c.Param("id"),
		"balance":     balance,
	})
}

func (s *Server) listMarketerCommissions(c *gin.Context) {
	entries, err := s.flow.MarketerCommissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": entries})
}

func (s *Server) listMarketerPayouts(c *gin.Context) {
	payouts, err := s.flow.MarketerPayouts(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}

func (s *Server) createPayout(c *gin.Context) {
	var req createPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	payout, err := s.flow.CreatePayout(c.Request.Context(), ofdomain.CreatePayoutInput{
		MarketerID: req.MarketerID,
		Amount:     req.Amount,
		Note:       req.Note,
		CreatedBy:  req.CreatedBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payout)
}

func (s *Server) listLedgerEntries(c *gin.Context) {
	entries, err := s.ledger.Entries(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
