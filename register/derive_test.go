package register_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asset-register/depreciation"
	"github.com/warp/asset-register/register"
)

func TestRecompute_DerivesHomeCostTotalAndNBV(t *testing.T) {
	// GIVEN: Acquisition in a foreign currency plus fees
	// THEN: home cost = rate*cost, total = fees + home cost, NBV resolved
	asset := register.Asset{
		ID:                 "a1",
		AssetStatus:        depreciation.StatusReadyToUse,
		Method:             depreciation.MethodStraightLine,
		UsefulLife:         1,
		Period:             depreciation.UnitYear,
		Computation:        depreciation.UnitMonth,
		CapitalizationDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ExchangeRate:       decimal.NewFromInt(2),
		AcquisitionCost:    decimal.NewFromInt(500),
		TransportationFee:  decimal.NewFromInt(100),
		Tax:                decimal.NewFromInt(50),
		OtherFee:           decimal.NewFromInt(50),
		ResidualValue:      decimal.Zero,
	}

	today := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	derived, err := register.Recompute(asset, today)
	require.NoError(t, err)

	assert.True(t, derived.HomeAcquisitionCost.Equal(decimal.NewFromInt(1000)))
	assert.True(t, derived.TotalAmount.Equal(decimal.NewFromInt(1200)))
	// 6 of 12 months elapsed, straight line over 1200: NBV 600.
	assert.True(t, derived.CurrentNBV.Equal(depreciation.MustParseDecimal("600.00")),
		"nbv = %s", derived.CurrentNBV)

	asset.Apply(derived)
	assert.True(t, asset.TotalAmount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, asset.CurrentNBV.Equal(depreciation.MustParseDecimal("600.00")))
}

func TestRecompute_NoDepreciationStatus_NBVEqualsTotal(t *testing.T) {
	asset := register.Asset{
		ID:              "a1",
		AssetStatus:     depreciation.StatusNoDepreciation,
		Method:          depreciation.MethodDoubleDeclining,
		ExchangeRate:    decimal.NewFromInt(1),
		AcquisitionCost: decimal.NewFromInt(800),
		ResidualValue:   decimal.NewFromInt(100),
	}

	derived, err := register.Recompute(asset, time.Now())
	require.NoError(t, err)
	assert.True(t, derived.CurrentNBV.Equal(depreciation.MustParseDecimal("800.00")))
}
