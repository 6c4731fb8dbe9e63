// Package server exposes the order-lifecycle and ledger operations over
// HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	cafedomain "github.com/cafeledger/cafeledger/internal/cafeteria/domain"
	"github.com/cafeledger/cafeledger/internal/clock"
	"github.com/cafeledger/cafeledger/internal/config"
	ledgerdomain "github.com/cafeledger/cafeledger/internal/ledger/domain"
	"github.com/cafeledger/cafeledger/internal/logger"
	ofdomain "github.com/cafeledger/cafeledger/internal/orderflow/domain"
	secdomain "github.com/cafeledger/cafeledger/internal/securityevent/domain"
	staffdomain "github.com/cafeledger/cafeledger/internal/staff/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	flow     ofdomain.Service
	cafes    cafedomain.Repository
	staff    staffdomain.Repository
	ledger   ledgerdomain.Repository
	security secdomain.Repository
	clock    clock.Clock
	node     *snowflake.Node
}

type Params struct {
	fx.In

	Config     config.Config
	Logger     *zap.Logger
	Flow       ofdomain.Service
	Cafeterias cafedomain.Repository
	Staff      staffdomain.Repository
	Ledger     ledgerdomain.Repository
	Security   secdomain.Repository
	Clock      clock.Clock
	Node       *snowflake.Node
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewServer(engine *gin.Engine, p Params) *Server {
	s := &Server{
		engine:   engine,
		cfg:      p.Config,
		log:      p.Logger.Named("server"),
		flow:     p.Flow,
		cafes:    p.Cafeterias,
		staff:    p.Staff,
		ledger:   p.Ledger,
		security: p.Security,
		clock:    p.Clock,
		node:     p.Node,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	orders := v1.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	orders.GET("/:id", s.getOrder)
	orders.PATCH("/:id/status", s.updateOrderStatus)

	cafeterias := v1.Group("/cafeterias")
	cafeterias.GET("", s.listCafeterias)
	cafeterias.GET("/:id", s.getCafeteria)
	cafeterias.GET("/:id/orders", s.listCafeteriaOrders)
	cafeterias.GET("/:id/tables", s.listWaiterTables)
	cafeterias.PATCH("/:id/tables/:tableId/status", s.updateWaiterTableStatus)
	cafeterias.GET("/:id/sections", s.listWaiterSections)
	cafeterias.GET("/:id/kitchen-categories", s.listKitchenCategories)
	cafeterias.GET("/:id/staff", s.listStaff)
	cafeterias.POST("/:id/staff", s.createStaff)
	cafeterias.GET("/:id/recharges", s.listCafeteriaRecharges)
	cafeterias.GET("/:id/trial", s.getCafeteriaTrial)
	cafeterias.PUT("/:id/trial-override", s.setTrialOverride)
	cafeterias.PUT("/:id/trial-expired", s.setTrialExpired)

	menu := v1.Group("/menu")
	menu.GET("/categories", s.listMenuCategories)
	menu.GET("/categories/:id/items", s.listMenuItems)
	menu.PATCH("/items/:id/kitchen-category", s.updateMenuItemKitchenCategory)
	menu.GET("/kitchen-categories/:id/items", s.listMenuItemsByKitchenCategory)

	staff := v1.Group("/staff")
	staff.PATCH("/:id/status", s.updateStaffStatus)
	staff.PUT("/:id/session", s.setWaiterSession)
	staff.DELETE("/:id/session", s.clearWaiterSession)

	recharges := v1.Group("/recharges")
	recharges.GET("", s.listRecharges)
	recharges.POST("", s.createRecharge)
	recharges.POST("/:id/process", s.processRecharge)

	marketers := v1.Group("/marketers")
	marketers.GET("", s.listMarketers)
	marketers.GET("/:id/balance", s.getMarketerBalance)
	marketers.GET("/:id/commissions", s.listMarketerCommissions)
	marketers.GET("/:id/payouts", s.listMarketerPayouts)

	v1.POST("/payouts", s.createPayout)
	v1.GET("/ledger/entries", s.listLedgerEntries)

	configGroup := v1.Group("/config")
	configGroup.GET("/commission", s.getCommissionConfig)
	configGroup.PUT("/commission", s.updateCommissionConfig)
	configGroup.GET("/trial", s.getTrialConfig)
	configGroup.PUT("/trial", s.updateTrialConfig)

	v1.GET("/security-events", s.listSecurityEvents)
	v1.POST("/admin/reset", s.reset)
}

func run(lc fx.Lifecycle, s *Server, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(run),
)
