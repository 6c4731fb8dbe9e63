package server

import (
	"net/http"

	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) listCafeterias(c *gin.Context) {
	cafeterias, err := s.cafes.FindAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafeterias": cafeterias})
}

func (s *Server) getCafeteria(c *gin.Context) {
	cafe, err := s.cafes.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if cafe == nil {
		AbortWithError(c, cafedomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, cafe)
}

func (s *Server) listWaiterTables(c *gin.Context) {
	tables, err := s.cafes.WaiterTables(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (s *Server) updateWaiterTableStatus(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	table, err := s.cafes.UpdateWaiterTableStatus(c.Request.Context(), c.Param("tableId"), *req.IsActive)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if table == nil {
		AbortWithError(c, cafedomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (s *Server) listWaiterSections(c *gin.Context) {
	sections, err := s.cafes.WaiterSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (s *Server) listKitchenCategories(c *gin.Context) {
	categories, err := s.cafes.KitchenCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kitchen_categories": categories})
}

func (s *Server) listMenuCategories(c *gin.Context) {
	categories, err := s.cafes.MenuCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) listMenuItems(c *gin.Context) {
	items, err := s.cafes.MenuItemsByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listMenuItemsByKitchenCategory(c *gin.Context) {
	items, err := s.cafes.MenuItemsByKitchenCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) updateMenuItemKitchenCategory(c *gin.Context) {
	var req struct {
		KitchenCategoryID string `json:"kitchen_category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.cafes.UpdateMenuItemKitchenCategory(c.Request.Context(), c.Param("id"), req.KitchenCategoryID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if item == nil {
		AbortWithError(c, cafedomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// getCafeteriaTrial resolves the trial window the cafeteria is actually
// subject to: the per-cafeteria override when set, otherwise the global
// default.
func (s *Server) getCafeteriaTrial(c *gin.Context) {
	cafe, err := s.cafes.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if cafe == nil {
		AbortWithError(c, cafedomain.ErrNotFound)
		return
	}

	trialCfg, err := s.flow.TrialConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	effective := trialCfg.GlobalTrialDays
	if cafe.TrialDaysOverride != nil {
		effective = *cafe.TrialDaysOverride
	}

	c.JSON(http.StatusOK, gin.H{
		"cafeteria_id":         cafe.ID,
		"is_trial_expired":     cafe.IsTrialExpired,
		"trial_days_override":  cafe.TrialDaysOverride,
		"effective_trial_days": effective,
	})
}

func (s *Server) setTrialOverride(c *gin.Context) {
	var req struct {
		TrialDays *int `json:"trial_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cafe, err := s.flow.SetTrialOverride(c.Request.Context(), c.Param("id"), req.TrialDays)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cafe)
}

func (s *Server) setTrialExpired(c *gin.Context) {
	var req struct {
		Expired *bool `json:"expired" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cafe, err := s.flow.SetTrialExpired(c.Request.Context(), c.Param("id"), *req.Expired)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cafe)
}
