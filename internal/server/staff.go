package server

import (
	"net/http"

	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

type createStaffRequest struct {
	Name              string           `json:"name" binding:"required"`
	Role              staffdomain.Role `json:"role" binding:"required,oneof=waiter kitchen"`
	KitchenCategoryID *string          `json:"kitchen_category_id"`
}

func (s *Server) listStaff(c *gin.Context) {
	staff, err := s.staff.FindByCafeteria(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

func (s *Server) createStaff(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	member := &staffdomain.Staff{
		ID:                s.node.Generate().String(),
		CafeteriaID:       c.Param("id"),
		Name:              req.Name,
		Role:              req.Role,
		IsActive:          true,
		CreatedAt:         s.clock.Now(),
		KitchenCategoryID: req.KitchenCategoryID,
	}
	if err := s.staff.Create(c.Request.Context(), member); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (s *Server) updateStaffStatus(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	member, err := s.staff.UpdateStatus(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if member == nil {
		AbortWithError(c, staffdomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (s *Server) setWaiterSession(c *gin.Context) {
	var req struct {
		SectionID   string `json:"section_id" binding:"required"`
		CafeteriaID string `json:"cafeteria_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	session := staffdomain.WaiterSession{
		WaiterID:    c.Param("id"),
		SectionID:   req.SectionID,
		CafeteriaID: req.CafeteriaID,
	}
	if err := s.staff.SetWaiterSession(c.Request.Context(), session); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) clearWaiterSession(c *gin.Context) {
	if err := s.staff.ClearWaiterSession(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
