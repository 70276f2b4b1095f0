/*
Package register provides the fixed-asset register domain.

PURPOSE:
  Holds the asset register entities and the depreciation execution
  workflow that turns a calculation result into durable records. The
  calculation itself lives in the depreciation package; this package owns
  the state: assets, accounts, depreciation records, policies, events,
  disposals and adjustments.

KEY CONCEPTS IN THIS FILE (types.go):
  - Asset: A fixed-asset register row with its financial attributes
  - Account: The ledger account depreciation posts against
  - DepreciationRecord: One immutable row per depreciation run
  - AssetPolicy: One per asset, created lazily on first execution
  - DepreciationEvent: Append-only ledger entry per execution run
  - Disposal / Adjustment: Lifecycle records

OWNERSHIP:
  The register owns asset financial state and writes back current_nbv and
  asset_status on execution. DepreciationRecord, AssetPolicy and
  DepreciationEvent are created exclusively by the Executor; nothing else
  mutates them. Records have no update path once created.

SEE ALSO:
  - derive.go: Recompute of derived financial fields
  - executor.go: The execution workflow
  - store.go: Persistence interfaces
*/
package register

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
)

// =============================================================================
// ASSET - Fixed-asset register entry
// =============================================================================

type Asset struct {
	ID                string
	FixedAssetCode    string
	FixedAssetAccount string // account name depreciation posts against
	AssetName         string
	AssetGroup        string
	Description       string
	Supplier          string

	AcquisitionDate    time.Time
	CapitalizationDate time.Time
	AssetStatus        depreciation.Status

	UsefulLife  int
	Period      depreciation.Unit
	Computation depreciation.Unit
	Method      depreciation.Method

	HomeCurrency        string
	TransactionCurrency string
	ExchangeRate        decimal.Decimal
	AcquisitionCost     decimal.Decimal
	HomeAcquisitionCost decimal.Decimal // derived: exchange_rate * acquisition_cost
	TransportationFee   decimal.Decimal
	Tax                 decimal.Decimal
	OtherFee            decimal.Decimal
	TotalAmount         decimal.Decimal // derived: fees + home acquisition cost
	ResidualValue       decimal.Decimal
	CurrentNBV          decimal.Decimal // derived: resolver output

	CreatedAt time.Time
}

// Snapshot returns the immutable financial view the depreciation engine
// calculates from.
func (a Asset) Snapshot() depreciation.Snapshot {
	return depreciation.Snapshot{
		TotalAmount:        a.TotalAmount,
		ResidualValue:      a.ResidualValue,
		UsefulLife:         a.UsefulLife,
		Period:             a.Period,
		Computation:        a.Computation,
		CapitalizationDate: a.CapitalizationDate,
		Method:             a.Method,
		Status:             a.AssetStatus,
	}
}

// =============================================================================
// ACCOUNT - Ledger account
// =============================================================================

type Account struct {
	ID          string
	AccountCode string
	AccountName string
	AccountType string // "Asset" for accounts created by the executor
	Currency    string
}

// =============================================================================
// DEPRECIATION RECORD - One row per depreciation run, immutable
// =============================================================================

type DepreciationRecord struct {
	ID               string
	AssetID          string
	AccountID        string
	DepreciationDate time.Time
	Method           depreciation.Method
	Computation      depreciation.Unit
	BookValue        decimal.Decimal
	Journal          string // free-text annotation, empty when not journaled
}

// =============================================================================
// ASSET POLICY - One per asset, created on first execution
// =============================================================================

type PolicyStatus string

const (
	PolicyActive   PolicyStatus = "Active"
	PolicyInactive PolicyStatus = "Inactive"
)

type AssetPolicy struct {
	ID         string
	AssetID    string
	UsefulLife int
	Period     depreciation.Unit
	StartDate  time.Time // capitalization date
	EndDate    time.Time // start + useful_life years, fixed at creation
	Method     depreciation.Method
	Amount     decimal.Decimal
	Status     PolicyStatus
	Remark     string
}

// =============================================================================
// DEPRECIATION EVENT - Append-only ledger entry per execution run
// =============================================================================

type DepreciationEvent struct {
	ID                      string
	AssetID                 string
	PolicyID                string
	DepreciationID          string
	DepreciationDate        time.Time
	DepreciationAmount      decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NBV                     decimal.Decimal // resulting net book value
	CreatedAt               time.Time
}

// =============================================================================
// DISPOSAL
// =============================================================================

type DisposalType string

const (
	DisposalSale     DisposalType = "Sale"
	DisposalScrap    DisposalType = "Scrap"
	DisposalWriteOff DisposalType = "WriteOff"
)

type DisposalOutcome string

const (
	OutcomeGain DisposalOutcome = "Gain"
	OutcomeLoss DisposalOutcome = "Loss"
)

type Disposal struct {
	ID           string
	AssetID      string
	PolicyID     string // empty if the asset never had a policy
	DisposalDate time.Time
	DisposalType DisposalType
	Outcome      DisposalOutcome
	Proceeds     decimal.Decimal
	BookValue    decimal.Decimal
	GainLoss     decimal.Decimal // derived: proceeds - book value
	Remark       string
}

// =============================================================================
// ADJUSTMENT - Typed old/new value log
// =============================================================================

type Adjustment struct {
	ID             string
	AssetID        string
	AdjustmentDate time.Time
	AdjustmentType string // e.g. "Additional Cost", "Changing Useful Life"
	OldValue       decimal.Decimal
	NewValue       decimal.Decimal
	Remark         string
}
