/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Defines the JSON contract between the API and its clients. DTOs are
  separate from domain types so the wire format can evolve without
  touching domain logic.

CONVENTIONS:
  - Monetary fields use decimal.Decimal, which marshals as a JSON number
  - Dates are "2006-01-02" strings; timestamps are RFC3339
  - Enum fields carry the canonical spelling ("Straight Line", "YEAR")

SEE ALSO:
  - handlers.go: Handlers that produce/consume these DTOs
*/
package api

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CALCULATION
// =============================================================================

type CalculateRequest struct {
	Method             string          `json:"depreciation_method"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ResidualValue      decimal.Decimal `json:"residual_value"`
	UsefulLife         int             `json:"useful_life"`
	Period             string          `json:"period"`
	Computation        string          `json:"computation"`
	CapitalizationDate string          `json:"capitalization_date,omitempty"` // optional, YYYY-MM-DD
}

type CalculateResponse struct {
	Method                  string          `json:"depreciation_method"`
	TotalUnits              int             `json:"total_units"`
	ElapsedUnits            int             `json:"elapsed_units"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	CurrentNBV              decimal.Decimal `json:"current_nbv"`
}

// =============================================================================
// EXECUTION
// =============================================================================

type CalculationResultDTO struct {
	CurrentNBV              *decimal.Decimal `json:"current_nbv,omitempty"`
	DepreciationAmount      decimal.Decimal  `json:"depreciation_amount"`
	AccumulatedDepreciation decimal.Decimal  `json:"accumulated_depreciation"`
}

type ExecuteRequest struct {
	AssetID       string               `json:"asset_id"`
	Result        CalculationResultDTO `json:"calculation_result"`
	ShowInJournal bool                 `json:"show_in_journal"`
}

type ExecuteResponse struct {
	DepreciationID string          `json:"depreciation_id"`
	EventID        string          `json:"event_id"`
	PolicyID       string          `json:"policy_id"`
	NewNBV         decimal.Decimal `json:"new_nbv"`
}

// =============================================================================
// ASSETS
// =============================================================================

type AssetDTO struct {
	ID                  string          `json:"id"`
	FixedAssetCode      string          `json:"fixed_asset_code"`
	FixedAssetAccount   string          `json:"fixed_asset_account"`
	AssetName           string          `json:"asset_name"`
	AssetGroup          string          `json:"asset_group,omitempty"`
	Description         string          `json:"description,omitempty"`
	Supplier            string          `json:"supplier,omitempty"`
	AcquisitionDate     string          `json:"acquisition_date,omitempty"`
	CapitalizationDate  string          `json:"capitalization_date,omitempty"`
	AssetStatus         string          `json:"asset_status"`
	UsefulLife          int             `json:"useful_life"`
	Period              string          `json:"period"`
	Computation         string          `json:"computation"`
	Method              string          `json:"depreciation_method"`
	HomeCurrency        string          `json:"home_currency,omitempty"`
	TransactionCurrency string          `json:"transaction_currency,omitempty"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
	AcquisitionCost     decimal.Decimal `json:"acquisition_cost"`
	HomeAcquisitionCost decimal.Decimal `json:"home_acquisition_cost"`
	TransportationFee   decimal.Decimal `json:"transportation_fee"`
	Tax                 decimal.Decimal `json:"tax"`
	OtherFee            decimal.Decimal `json:"other_fee"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	ResidualValue       decimal.Decimal `json:"residual_value"`
	CurrentNBV          decimal.Decimal `json:"current_nbv"`
	CreatedAt           string          `json:"created_at,omitempty"`
}

// AssetRequest is the create/update payload. Derived fields
// (home_acquisition_cost, total_amount, current_nbv) are recomputed
// server-side and ignored if supplied.
type AssetRequest struct {
	ID                  string          `json:"id,omitempty"`
	FixedAssetCode      string          `json:"fixed_asset_code"`
	FixedAssetAccount   string          `json:"fixed_asset_account"`
	AssetName           string          `json:"asset_name"`
	AssetGroup          string          `json:"asset_group"`
	Description         string          `json:"description"`
	Supplier            string          `json:"supplier"`
	AcquisitionDate     string          `json:"acquisition_date"`
	CapitalizationDate  string          `json:"capitalization_date"`
	AssetStatus         string          `json:"asset_status"`
	UsefulLife          int             `json:"useful_life"`
	Period              string          `json:"period"`
	Computation         string          `json:"computation"`
	Method              string          `json:"depreciation_method"`
	HomeCurrency        string          `json:"home_currency"`
	TransactionCurrency string          `json:"transaction_currency"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
	AcquisitionCost     decimal.Decimal `json:"acquisition_cost"`
	TransportationFee   decimal.Decimal `json:"transportation_fee"`
	Tax                 decimal.Decimal `json:"tax"`
	OtherFee            decimal.Decimal `json:"other_fee"`
	ResidualValue       decimal.Decimal `json:"residual_value"`
}

// =============================================================================
// ACCOUNTS
// =============================================================================

type AccountDTO struct {
	ID          string `json:"id"`
	AccountCode string `json:"account_code,omitempty"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Currency    string `json:"currency,omitempty"`
}

type CreateAccountRequest struct {
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
	Currency    string `json:"currency"`
}

// =============================================================================
// RECORDS
// =============================================================================

type DepreciationRecordDTO struct {
	ID               string          `json:"id"`
	AssetID          string          `json:"asset_id"`
	AccountID        string          `json:"account_id"`
	DepreciationDate string          `json:"depreciation_date"`
	Method           string          `json:"depreciation_method"`
	Computation      string          `json:"computation"`
	BookValue        decimal.Decimal `json:"book_value"`
	Journal          string          `json:"journal,omitempty"`
}

type PolicyDTO struct {
	ID         string          `json:"id"`
	AssetID    string          `json:"asset_id"`
	UsefulLife int             `json:"useful_life"`
	Period     string          `json:"period"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Method     string          `json:"depreciation_method"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Remark     string          `json:"remark,omitempty"`
}

type EventDTO struct {
	ID                      string          `json:"id"`
	AssetID                 string          `json:"asset_id"`
	PolicyID                string          `json:"policy_id"`
	DepreciationID          string          `json:"depreciation_id"`
	DepreciationDate        string          `json:"depreciation_date"`
	DepreciationAmount      decimal.Decimal `json:"depreciation_amount"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	NBV                     decimal.Decimal `json:"nbv_depreciation"`
	CreatedAt               string          `json:"created_at"`
}

// =============================================================================
// DISPOSAL / ADJUSTMENT
// =============================================================================

type DisposalRequest struct {
	DisposalType string          `json:"disposal_type"` // Sale, Scrap or WriteOff
	Proceeds     decimal.Decimal `json:"proceeds"`
	Remark       string          `json:"remark"`
}

type DisposalDTO struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"asset_id"`
	PolicyID     string          `json:"policy_id,omitempty"`
	DisposalDate string          `json:"disposal_date"`
	DisposalType string          `json:"disposal_type"`
	Outcome      string          `json:"outcome"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	BookValue    decimal.Decimal `json:"book_value"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	Remark       string          `json:"remark,omitempty"`
}

type AdjustmentRequest struct {
	AdjustmentType string          `json:"adjustment_type"`
	OldValue       decimal.Decimal `json:"old_value"`
	NewValue       decimal.Decimal `json:"new_value"`
	Remark         string          `json:"remark"`
}

type AdjustmentDTO struct {
	ID             string          `json:"id"`
	AssetID        string          `json:"asset_id"`
	AdjustmentDate string          `json:"adjustment_date"`
	AdjustmentType string          `json:"adjustment_type"`
	OldValue       decimal.Decimal `json:"old_value"`
	NewValue       decimal.Decimal `json:"new_value"`
	Remark         string          `json:"remark,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
