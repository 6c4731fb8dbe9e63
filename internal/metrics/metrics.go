// Package metrics exposes prometheus instrumentation for the order and
// ledger flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Metrics struct {
	OrdersCreated      prometheus.Counter
	OrdersSettled      prometheus.Counter
	SettlementFailures *prometheus.CounterVec
	PointsDeducted     prometheus.Counter
	CommissionPoints   *prometheus.CounterVec
	GuardDenials       *prometheus.CounterVec
	RechargesProcessed *prometheus.CounterVec
	PayoutsCreated     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "orders_created_total",
			Help:      "Orders accepted by the orchestrator.",
		}),
		OrdersSettled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "orders_settled_total",
			Help:      "Orders that completed payment settlement.",
		}),
		SettlementFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "settlement_failures_total",
			Help:      "Failed payment settlements by reason.",
		}, []string{"reason"}),
		PointsDeducted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "points_deducted_total",
			Help:      "Points deducted from cafeteria balances.",
		}),
		CommissionPoints: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "commission_points_total",
			Help:      "Commission points credited by tier.",
		}, []string{"tier"}),
		GuardDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "guard_denials_total",
			Help:      "Staff actions blocked by security guards.",
		}, []string{"guard"}),
		RechargesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "recharges_processed_total",
			Help:      "Processed recharge requests by outcome.",
		}, []string{"status"}),
		PayoutsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "cafeledger",
			Name:      "payouts_created_total",
			Help:      "Payout records created for marketers.",
		}),
	}
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
