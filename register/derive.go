/*
derive.go - Recomputation of derived asset financial fields

PURPOSE:
  Whenever an asset's financial attributes change (acquisition cost,
  fees, exchange rate), three derived fields must be recomputed before
  the row is committed:

    home_acquisition_cost = exchange_rate * acquisition_cost
    total_amount          = transportation_fee + other_fee + tax
                            + home_acquisition_cost
    current_nbv           = depreciation resolver over the new totals

  Recompute is a pure function; the persistence path calls it explicitly
  before every asset write. There is no hidden save-hook.
*/
package register

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
)

// Derived is the set of fields Recompute produces.
type Derived struct {
	HomeAcquisitionCost decimal.Decimal
	TotalAmount         decimal.Decimal
	CurrentNBV          decimal.Decimal
}

// Recompute derives the dependent financial fields for an asset as of
// today. The input asset is not modified.
func Recompute(a Asset, today time.Time) (Derived, error) {
	home := a.ExchangeRate.Mul(a.AcquisitionCost)
	total := a.TransportationFee.Add(a.OtherFee).Add(a.Tax).Add(home)

	snap := a.Snapshot()
	snap.TotalAmount = total

	nbv, err := depreciation.CurrentNBV(snap, today)
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		HomeAcquisitionCost: home,
		TotalAmount:         total,
		CurrentNBV:          nbv,
	}, nil
}

// Apply writes the derived fields onto the asset.
func (a *Asset) Apply(d Derived) {
	a.HomeAcquisitionCost = d.HomeAcquisitionCost
	a.TotalAmount = d.TotalAmount
	a.CurrentNBV = d.CurrentNBV
}
