package server

import (
	"net/http"

	orderdomain "github.com/cafeledger/cafeledger/internal/order/domain"
	ofdomain "github.com/cafeledger/cafeledger/internal/orderflow/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	SessionID   string                  `json:"session_id" binding:"required"`
	CafeteriaID string                  `json:"cafeteria_id" binding:"required"`
	Items       []orderdomain.OrderItem `json:"items" binding:"required,min=1"`
	Table       ofdomain.TableBinding   `json:"table"`
}

type updateOrderStatusRequest struct {
	Status    orderdomain.Status `json:"status" binding:"required"`
	ActorID   string             `json:"actor_id"`
	ActorRole staffdomain.Role   `json:"actor_role"`
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.flow.Orders(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.flow.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if order == nil {
		AbortWithError(c, orderdomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) listCafeteriaOrders(c *gin.Context) {
	orders, err := s.flow.OrdersByCafeteria(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.flow.CreateOrder(c.Request.Context(), ofdomain.CreateOrderRequest{
		SessionID:   req.SessionID,
		CafeteriaID: req.CafeteriaID,
		Items:       req.Items,
		Table:       req.Table,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.flow.UpdateOrderStatus(c.Request.Context(), ofdomain.UpdateStatusRequest{
		OrderID:   c.Param("id"),
		NewStatus: req.Status,
		ActorID:   req.ActorID,
		ActorRole: req.ActorRole,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if order == nil {
		AbortWithError(c, orderdomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}
