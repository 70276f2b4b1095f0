/*
handlers.go - HTTP API handlers for the asset register

PURPOSE:
  Exposes the depreciation engine and asset register via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Depreciation:
    POST   /api/depreciation/calculate  Stateless calculation preview
    POST   /api/depreciation/execute    Execute depreciation run

  Assets:
    GET    /api/assets                  List assets
    POST   /api/assets                  Create asset (derives financials)
    GET    /api/assets/{id}             Get asset
    PUT    /api/assets/{id}             Update asset (re-derives financials)
    GET    /api/assets/{id}/depreciations  Depreciation record history
    GET    /api/assets/{id}/events      Depreciation event ledger
    GET    /api/assets/{id}/policy      Asset policy
    GET    /api/assets/{id}/adjustments Adjustment log
    POST   /api/assets/{id}/adjustments Record an adjustment
    POST   /api/assets/{id}/disposal    Dispose of an asset

  Accounts:
    GET    /api/accounts                List accounts
    POST   /api/accounts                Create account

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, wrong asset status
  - 404: Asset/policy not found
  - 500: Arithmetic or persistence errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
	"github.com/warp/asset-register/register"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    register.TxStore
	Executor *register.Executor

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler creates a new handler over the given store.
func NewHandler(store register.TxStore) *Handler {
	return &Handler{
		Store:    store,
		Executor: register.NewExecutor(store),
		Now:      time.Now,
	}
}

// =============================================================================
// DEPRECIATION HANDLERS
// =============================================================================

// CalculateDepreciation runs a stateless calculation preview.
func (h *Handler) CalculateDepreciation(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	method, err := depreciation.ParseMethod(req.Method)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid depreciation method", err)
		return
	}
	period, err := depreciation.ParseUnit(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period unit", err)
		return
	}
	computation, err := depreciation.ParseUnit(req.Computation)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid computation unit", err)
		return
	}

	var capDate time.Time
	if req.CapitalizationDate != "" {
		capDate, err = time.Parse(dateLayout, req.CapitalizationDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid capitalization_date format (use YYYY-MM-DD)", err)
			return
		}
	}

	result, err := depreciation.Calculate(depreciation.Input{
		Method:             method,
		TotalAmount:        req.TotalAmount,
		ResidualValue:      req.ResidualValue,
		UsefulLife:         req.UsefulLife,
		Period:             period,
		Computation:        computation,
		CapitalizationDate: capDate,
	}, h.Now())
	if err != nil {
		writeDomainError(w, "Calculation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, CalculateResponse{
		Method:                  string(result.Method),
		TotalUnits:              result.TotalUnits,
		ElapsedUnits:            result.ElapsedUnits,
		AccumulatedDepreciation: result.AccumulatedDepreciation,
		CurrentNBV:              result.CurrentNBV,
	})
}

// ExecuteDepreciation runs the depreciation execution workflow.
func (h *Handler) ExecuteDepreciation(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out, err := h.Executor.Execute(r.Context(), register.ExecuteInput{
		AssetID: req.AssetID,
		Result: register.CalculationResult{
			CurrentNBV:              req.Result.CurrentNBV,
			DepreciationAmount:      req.Result.DepreciationAmount,
			AccumulatedDepreciation: req.Result.AccumulatedDepreciation,
		},
		ShowInJournal: req.ShowInJournal,
	})
	if err != nil {
		writeDomainError(w, "Execution failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, ExecuteResponse{
		DepreciationID: out.DepreciationID,
		EventID:        out.EventID,
		PolicyID:       out.PolicyID,
		NewNBV:         out.NewNBV,
	})
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns all assets.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Store.ListAssets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assets", err)
		return
	}

	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAsset returns a single asset.
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Store.GetAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get asset", err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(*asset))
}

// CreateAsset creates a new asset. Derived financial fields are
// recomputed before the row is committed.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	asset, err := h.assetFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asset", err)
		return
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	asset.CreatedAt = h.Now().UTC()

	derived, err := register.Recompute(asset, h.Now())
	if err != nil {
		writeDomainError(w, "Failed to derive asset financials", err)
		return
	}
	asset.Apply(derived)

	if err := h.Store.SaveAsset(r.Context(), asset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create asset", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssetDTO(asset))
}

// UpdateAsset updates an asset's attributes and re-derives the dependent
// financial fields before committing.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get asset", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}

	var req AssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = id

	asset, err := h.assetFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asset", err)
		return
	}
	asset.CreatedAt = existing.CreatedAt

	derived, err := register.Recompute(asset, h.Now())
	if err != nil {
		writeDomainError(w, "Failed to derive asset financials", err)
		return
	}
	asset.Apply(derived)

	if err := h.Store.SaveAsset(r.Context(), asset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update asset", err)
		return
	}

	writeJSON(w, http.StatusOK, toAssetDTO(asset))
}

// GetAssetDepreciations returns the depreciation record history.
func (h *Handler) GetAssetDepreciations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListDepreciationsByAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list depreciations", err)
		return
	}

	dtos := make([]DepreciationRecordDTO, len(records))
	for i, d := range records {
		dtos[i] = DepreciationRecordDTO{
			ID:               d.ID,
			AssetID:          d.AssetID,
			AccountID:        d.AccountID,
			DepreciationDate: d.DepreciationDate.Format(dateLayout),
			Method:           string(d.Method),
			Computation:      string(d.Computation),
			BookValue:        d.BookValue,
			Journal:          d.Journal,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAssetEvents returns the depreciation event ledger.
func (h *Handler) GetAssetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListEventsByAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = EventDTO{
			ID:                      e.ID,
			AssetID:                 e.AssetID,
			PolicyID:                e.PolicyID,
			DepreciationID:          e.DepreciationID,
			DepreciationDate:        e.DepreciationDate.Format(dateLayout),
			DepreciationAmount:      e.DepreciationAmount,
			AccumulatedDepreciation: e.AccumulatedDepreciation,
			NBV:                     e.NBV,
			CreatedAt:               e.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAssetPolicy returns the asset's policy, if one has been created.
func (h *Handler) GetAssetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Store.GetPolicyByAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get policy", err)
		return
	}
	if policy == nil {
		writeError(w, http.StatusNotFound, "Policy not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, PolicyDTO{
		ID:         policy.ID,
		AssetID:    policy.AssetID,
		UsefulLife: policy.UsefulLife,
		Period:     string(policy.Period),
		StartDate:  policy.StartDate.Format(dateLayout),
		EndDate:    policy.EndDate.Format(dateLayout),
		Method:     string(policy.Method),
		Amount:     policy.Amount,
		Status:     string(policy.Status),
		Remark:     policy.Remark,
	})
}

// GetAssetAdjustments returns the adjustment log for an asset.
func (h *Handler) GetAssetAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments, err := h.Store.ListAdjustmentsByAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list adjustments", err)
		return
	}

	dtos := make([]AdjustmentDTO, len(adjustments))
	for i, a := range adjustments {
		dtos[i] = toAdjustmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAssetAdjustment records a typed old/new value change.
func (h *Handler) CreateAssetAdjustment(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	asset, err := h.Store.GetAsset(r.Context(), assetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get asset", err)
		return
	}
	if asset == nil {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}

	var req AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AdjustmentType == "" {
		writeError(w, http.StatusBadRequest, "adjustment_type is required", nil)
		return
	}

	adjustment := register.Adjustment{
		ID:             uuid.NewString(),
		AssetID:        assetID,
		AdjustmentDate: h.Now(),
		AdjustmentType: req.AdjustmentType,
		OldValue:       req.OldValue,
		NewValue:       req.NewValue,
		Remark:         req.Remark,
	}
	if err := h.Store.CreateAdjustment(r.Context(), adjustment); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create adjustment", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAdjustmentDTO(adjustment))
}

// DisposeAsset retires an asset with a gain/loss record.
func (h *Handler) DisposeAsset(w http.ResponseWriter, r *http.Request) {
	var req DisposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	disposal, err := h.Executor.Dispose(r.Context(), register.DisposeInput{
		AssetID:      chi.URLParam(r, "id"),
		DisposalType: register.DisposalType(req.DisposalType),
		Proceeds:     req.Proceeds,
		Remark:       req.Remark,
	})
	if err != nil {
		writeDomainError(w, "Disposal failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, DisposalDTO{
		ID:           disposal.ID,
		AssetID:      disposal.AssetID,
		PolicyID:     disposal.PolicyID,
		DisposalDate: disposal.DisposalDate.Format(dateLayout),
		DisposalType: string(disposal.DisposalType),
		Outcome:      string(disposal.Outcome),
		Proceeds:     disposal.Proceeds,
		BookValue:    disposal.BookValue,
		GainLoss:     disposal.GainLoss,
		Remark:       disposal.Remark,
	})
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns all accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = AccountDTO{
			ID:          a.ID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
			Currency:    a.Currency,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount creates a new account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AccountName == "" {
		writeError(w, http.StatusBadRequest, "account_name is required", nil)
		return
	}

	account := register.Account{
		ID:          uuid.NewString(),
		AccountCode: req.AccountCode,
		AccountName: req.AccountName,
		AccountType: req.AccountType,
		Currency:    req.Currency,
	}
	if err := h.Store.CreateAccount(r.Context(), account); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, AccountDTO{
		ID:          account.ID,
		AccountCode: account.AccountCode,
		AccountName: account.AccountName,
		AccountType: account.AccountType,
		Currency:    account.Currency,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) assetFromRequest(req AssetRequest) (register.Asset, error) {
	method, err := depreciation.ParseMethod(req.Method)
	if err != nil {
		return register.Asset{}, err
	}
	period, err := depreciation.ParseUnit(req.Period)
	if err != nil {
		return register.Asset{}, err
	}
	computation, err := depreciation.ParseUnit(req.Computation)
	if err != nil {
		return register.Asset{}, err
	}

	var acquisitionDate, capDate time.Time
	if req.AcquisitionDate != "" {
		acquisitionDate, err = time.Parse(dateLayout, req.AcquisitionDate)
		if err != nil {
			return register.Asset{}, &depreciation.InputError{Field: "acquisition_date", Message: "use YYYY-MM-DD"}
		}
	}
	if req.CapitalizationDate != "" {
		capDate, err = time.Parse(dateLayout, req.CapitalizationDate)
		if err != nil {
			return register.Asset{}, &depreciation.InputError{Field: "capitalization_date", Message: "use YYYY-MM-DD"}
		}
	}

	status := depreciation.Status(req.AssetStatus)
	if req.AssetStatus == "" {
		status = depreciation.StatusReadyToUse
	}

	rate := req.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	return register.Asset{
		ID:                  req.ID,
		FixedAssetCode:      req.FixedAssetCode,
		FixedAssetAccount:   req.FixedAssetAccount,
		AssetName:           req.AssetName,
		AssetGroup:          req.AssetGroup,
		Description:         req.Description,
		Supplier:            req.Supplier,
		AcquisitionDate:     acquisitionDate,
		CapitalizationDate:  capDate,
		AssetStatus:         status,
		UsefulLife:          req.UsefulLife,
		Period:              period,
		Computation:         computation,
		Method:              method,
		HomeCurrency:        req.HomeCurrency,
		TransactionCurrency: req.TransactionCurrency,
		ExchangeRate:        rate,
		AcquisitionCost:     req.AcquisitionCost,
		TransportationFee:   req.TransportationFee,
		Tax:                 req.Tax,
		OtherFee:            req.OtherFee,
		ResidualValue:       req.ResidualValue,
	}, nil
}

func toAssetDTO(a register.Asset) AssetDTO {
	dto := AssetDTO{
		ID:                  a.ID,
		FixedAssetCode:      a.FixedAssetCode,
		FixedAssetAccount:   a.FixedAssetAccount,
		AssetName:           a.AssetName,
		AssetGroup:          a.AssetGroup,
		Description:         a.Description,
		Supplier:            a.Supplier,
		AssetStatus:         string(a.AssetStatus),
		UsefulLife:          a.UsefulLife,
		Period:              string(a.Period),
		Computation:         string(a.Computation),
		Method:              string(a.Method),
		HomeCurrency:        a.HomeCurrency,
		TransactionCurrency: a.TransactionCurrency,
		ExchangeRate:        a.ExchangeRate,
		AcquisitionCost:     a.AcquisitionCost,
		HomeAcquisitionCost: a.HomeAcquisitionCost,
		TransportationFee:   a.TransportationFee,
		Tax:                 a.Tax,
		OtherFee:            a.OtherFee,
		TotalAmount:         a.TotalAmount,
		ResidualValue:       a.ResidualValue,
		CurrentNBV:          a.CurrentNBV,
	}
	if !a.AcquisitionDate.IsZero() {
		dto.AcquisitionDate = a.AcquisitionDate.Format(dateLayout)
	}
	if !a.CapitalizationDate.IsZero() {
		dto.CapitalizationDate = a.CapitalizationDate.Format(dateLayout)
	}
	if !a.CreatedAt.IsZero() {
		dto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toAdjustmentDTO(a register.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:             a.ID,
		AssetID:        a.AssetID,
		AdjustmentDate: a.AdjustmentDate.Format(dateLayout),
		AdjustmentType: a.AdjustmentType,
		OldValue:       a.OldValue,
		NewValue:       a.NewValue,
		Remark:         a.Remark,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain error categories onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case depreciation.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case depreciation.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
