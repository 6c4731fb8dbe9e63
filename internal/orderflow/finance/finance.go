// Package finance holds the pure point arithmetic for order settlement
// and commission fan-out. Everything here is side-effect free.
package finance

import (
	"math"

	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
)

// PointValueUSD is the fixed conversion rate: one point is worth $0.003.
// Not configurable per tenant.
const PointValueUSD = 0.003

// PointsToDeduct converts a monetary order total into the integer points
// charged at settlement. Truncates toward zero, so a $0.001 order costs
// nothing.
func PointsToDeduct(orderTotal float64) int64 {
	if orderTotal <= 0 {
		return 0
	}
	return int64(math.Floor(orderTotal / PointValueUSD))
}

// CommissionBreakdown is the per-party split of a settled order's points.
// The three shares are floored independently, so their sum may fall short
// of the points charged. The shortfall stays with the platform.
type CommissionBreakdown struct {
	DirectMarketerPoints      int64 `json:"direct_marketer_points"`
	GrandparentMarketerPoints int64 `json:"grandparent_marketer_points"`
	OwnerPoints               int64 `json:"owner_points"`
}

// CalculateCommissions splits the charged points per the configured rates.
// Marketer shares are zero when the cafeteria has no assigned marketer;
// the owner share is computed regardless.
func CalculateCommissions(points int64, cfg settingsdomain.CommissionConfig, hasMarketer bool) CommissionBreakdown {
	var breakdown CommissionBreakdown
	if hasMarketer {
		breakdown.DirectMarketerPoints = share(points, cfg.RateDirectParentPercent)
		breakdown.GrandparentMarketerPoints = share(points, cfg.RateGrandparentPercent)
	}
	breakdown.OwnerPoints = share(points, cfg.RateOwnerPercent)
	return breakdown
}

func share(points int64, percent int) int64 {
	return int64(math.Floor(float64(points) * float64(percent) / 100))
}
