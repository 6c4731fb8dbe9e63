package finance

import (
	"testing"

	settingsdomain "github.com/cafeledger/cafeledger/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsToDeduct(t *testing.T) {
	assert.Equal(t, int64(0), PointsToDeduct(0))
	assert.Equal(t, int64(0), PointsToDeduct(0.001))
	assert.Equal(t, int64(1000), PointsToDeduct(3.00))
	assert.Equal(t, int64(3333), PointsToDeduct(10.00))
}

func TestPointsToDeductFloorBoundary(t *testing.T) {
	for _, n := range []int64{1, 2, 5, 10, 100, 1000} {
		got := PointsToDeduct(PointValueUSD * float64(n))
		assert.Equal(t, n, got, "n=%d", n)
	}
}

func TestPointsToDeductMonotonic(t *testing.T) {
	prev := int64(0)
	for cents := 1; cents <= 500; cents++ {
		got := PointsToDeduct(float64(cents) / 100)
		require.GreaterOrEqual(t, got, prev, "cents=%d", cents)
		prev = got
	}
}

func TestCalculateCommissions(t *testing.T) {
	cfg := settingsdomain.CommissionConfig{
		RateDirectParentPercent: 10,
		RateGrandparentPercent:  5,
		RateOwnerPercent:        85,
	}

	b := CalculateCommissions(1000, cfg, true)
	assert.Equal(t, int64(100), b.DirectMarketerPoints)
	assert.Equal(t, int64(50), b.GrandparentMarketerPoints)
	assert.Equal(t, int64(850), b.OwnerPoints)
}

func TestCalculateCommissionsWithoutMarketer(t *testing.T) {
	cfg := settingsdomain.CommissionConfig{
		RateDirectParentPercent: 10,
		RateGrandparentPercent:  5,
		RateOwnerPercent:        85,
	}

	b := CalculateCommissions(999, cfg, false)
	assert.Zero(t, b.DirectMarketerPoints)
	assert.Zero(t, b.GrandparentMarketerPoints)
	assert.Equal(t, int64(849), b.OwnerPoints)
}

func TestCalculateCommissionsIndependentFloors(t *testing.T) {
	cfg := settingsdomain.CommissionConfig{
		RateDirectParentPercent: 33,
		RateGrandparentPercent:  33,
		RateOwnerPercent:        34,
	}

	// 10 points: 3 + 3 + 3 = 9, one point retained by the platform.
	b := CalculateCommissions(10, cfg, true)
	assert.Equal(t, int64(3), b.DirectMarketerPoints)
	assert.Equal(t, int64(3), b.GrandparentMarketerPoints)
	assert.Equal(t, int64(3), b.OwnerPoints)
	assert.Less(t, b.DirectMarketerPoints+b.GrandparentMarketerPoints+b.OwnerPoints, int64(10))
}
