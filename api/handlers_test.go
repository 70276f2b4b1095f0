package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asset-register/store/sqlite"
)

// newTestServer wires a handler over an in-memory SQLite store with a
// fixed clock (2025-07-01) so elapsed-unit assertions are stable.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	h.Now = func() time.Time {
		return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	}
	h.Executor.Now = h.Now

	return &testServer{router: NewRouter(h)}
}

type testServer struct {
	router http.Handler
}

func (m *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	m.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func machineryAsset() AssetRequest {
	return AssetRequest{
		FixedAssetCode:     "FA-001",
		FixedAssetAccount:  "Machinery",
		AssetName:          "CNC Mill",
		AssetStatus:        "Ready to Use",
		UsefulLife:         5,
		Period:             "YEAR",
		Computation:        "YEAR",
		Method:             "Straight Line",
		ExchangeRate:       decimal.NewFromInt(1),
		AcquisitionCost:    decimal.NewFromInt(10000),
		ResidualValue:      decimal.NewFromInt(1000),
		CapitalizationDate: "2024-01-01",
	}
}

// =============================================================================
// CALCULATION ENDPOINT
// =============================================================================

func TestCalculate_StraightLine(t *testing.T) {
	// GIVEN: 1200 over 1 year computed monthly, capitalized 6 months ago
	// THEN: 6 of 12 months elapsed, NBV 600
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/depreciation/calculate", CalculateRequest{
		Method:             "Straight Line",
		TotalAmount:        decimal.NewFromInt(1200),
		ResidualValue:      decimal.Zero,
		UsefulLife:         1,
		Period:             "YEAR",
		Computation:        "MONTH",
		CapitalizationDate: "2025-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CalculateResponse](t, rec)
	assert.Equal(t, "Straight Line", resp.Method)
	assert.Equal(t, 12, resp.TotalUnits)
	assert.Equal(t, 6, resp.ElapsedUnits)
	assert.True(t, resp.AccumulatedDepreciation.Equal(decimal.NewFromInt(600)),
		"accumulated = %s", resp.AccumulatedDepreciation)
	assert.True(t, resp.CurrentNBV.Equal(decimal.NewFromInt(600)),
		"nbv = %s", resp.CurrentNBV)
}

func TestCalculate_UnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/depreciation/calculate", CalculateRequest{
		Method:      "Sum of Years",
		TotalAmount: decimal.NewFromInt(1000),
		UsefulLife:  5,
		Period:      "YEAR",
		Computation: "YEAR",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculate_ZeroCostDecliningIsReportedNotCrash(t *testing.T) {
	// Geometric rate is undefined for zero cost; must come back as a
	// 500 error payload, not a panic.
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/depreciation/calculate", CalculateRequest{
		Method:             "Reducing Balance",
		TotalAmount:        decimal.Zero,
		ResidualValue:      decimal.NewFromInt(100),
		UsefulLife:         5,
		Period:             "YEAR",
		Computation:        "YEAR",
		CapitalizationDate: "2024-01-01",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.NotEmpty(t, resp.Error)
}

// =============================================================================
// ASSET CRUD
// =============================================================================

func TestAsset_CreateDerivesFinancials(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/assets", machineryAsset())
	require.Equal(t, http.StatusCreated, rec.Code)

	asset := decode[AssetDTO](t, rec)
	assert.NotEmpty(t, asset.ID)
	assert.True(t, asset.TotalAmount.Equal(decimal.NewFromInt(10000)))
	// 1.5 elapsed years floors to 1: (10000-1000)/5 = 1800 off the total
	assert.True(t, asset.CurrentNBV.Equal(decimal.NewFromInt(8200)),
		"nbv = %s", asset.CurrentNBV)

	got := srv.do(t, http.MethodGet, "/api/assets/"+asset.ID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	fetched := decode[AssetDTO](t, got)
	assert.Equal(t, asset.ID, fetched.ID)
	assert.True(t, fetched.CurrentNBV.Equal(decimal.NewFromInt(8200)))
}

func TestAsset_UpdateRederives(t *testing.T) {
	srv := newTestServer(t)

	created := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	// Double the cost; total and NBV must follow.
	update := machineryAsset()
	update.AcquisitionCost = decimal.NewFromInt(20000)
	rec := srv.do(t, http.MethodPut, "/api/assets/"+created.ID, update)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[AssetDTO](t, rec)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(20000)))
	// (20000-1000)/5 = 3800 for the one elapsed year
	assert.True(t, updated.CurrentNBV.Equal(decimal.NewFromInt(16200)),
		"nbv = %s", updated.CurrentNBV)
}

func TestAsset_GetUnknownReturns404(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/assets/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAsset_CreateRejectsBadUnit(t *testing.T) {
	srv := newTestServer(t)

	bad := machineryAsset()
	bad.Period = "FORTNIGHT"
	rec := srv.do(t, http.MethodPost, "/api/assets", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// EXECUTION ENDPOINT
// =============================================================================

func TestExecute_FullFlow(t *testing.T) {
	srv := newTestServer(t)

	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	nbv := decimal.NewFromInt(8200)
	rec := srv.do(t, http.MethodPost, "/api/depreciation/execute", ExecuteRequest{
		AssetID: asset.ID,
		Result: CalculationResultDTO{
			CurrentNBV:              &nbv,
			DepreciationAmount:      decimal.NewFromInt(1800),
			AccumulatedDepreciation: decimal.NewFromInt(1800),
		},
		ShowInJournal: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	out := decode[ExecuteResponse](t, rec)
	assert.NotEmpty(t, out.DepreciationID)
	assert.NotEmpty(t, out.EventID)
	assert.NotEmpty(t, out.PolicyID)
	assert.True(t, out.NewNBV.Equal(nbv))

	// Record history
	records := decode[[]DepreciationRecordDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/depreciations", nil))
	require.Len(t, records, 1)
	assert.Equal(t, out.DepreciationID, records[0].ID)
	assert.Equal(t, "Depreciation Journal Entry", records[0].Journal)
	assert.True(t, records[0].BookValue.Equal(nbv))

	// Event ledger
	events := decode[[]EventDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/events", nil))
	require.Len(t, events, 1)
	assert.Equal(t, out.PolicyID, events[0].PolicyID)
	assert.True(t, events[0].DepreciationAmount.Equal(decimal.NewFromInt(1800)))

	// Policy created on first run
	policyRec := srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/policy", nil)
	require.Equal(t, http.StatusOK, policyRec.Code)
	policy := decode[PolicyDTO](t, policyRec)
	assert.Equal(t, out.PolicyID, policy.ID)
	assert.Equal(t, 5, policy.UsefulLife)
	assert.Equal(t, "Active", policy.Status)

	// The executor's account get-or-create resolved "Machinery"
	accounts := decode[[]AccountDTO](t, srv.do(t, http.MethodGet, "/api/accounts", nil))
	require.Len(t, accounts, 1)
	assert.Equal(t, "Machinery", accounts[0].AccountName)
	assert.Equal(t, "Asset", accounts[0].AccountType)

	// Asset NBV written back
	updated := decode[AssetDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID, nil))
	assert.True(t, updated.CurrentNBV.Equal(nbv))
	assert.Equal(t, "Ready to Use", updated.AssetStatus)
}

func TestExecute_SecondRunReusesPolicy(t *testing.T) {
	srv := newTestServer(t)

	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	exec := func(amount int64) ExecuteResponse {
		rec := srv.do(t, http.MethodPost, "/api/depreciation/execute", ExecuteRequest{
			AssetID: asset.ID,
			Result: CalculationResultDTO{
				DepreciationAmount:      decimal.NewFromInt(amount),
				AccumulatedDepreciation: decimal.NewFromInt(amount),
			},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		return decode[ExecuteResponse](t, rec)
	}

	first := exec(1800)
	second := exec(1800)
	assert.Equal(t, first.PolicyID, second.PolicyID)
	assert.NotEqual(t, first.EventID, second.EventID)

	events := decode[[]EventDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/events", nil))
	assert.Len(t, events, 2)
}

func TestExecute_MissingAssetID(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/depreciation/execute", ExecuteRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecute_UnknownAsset(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/depreciation/execute", ExecuteRequest{AssetID: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExecute_WrongStatusRejected(t *testing.T) {
	srv := newTestServer(t)

	frozen := machineryAsset()
	frozen.AssetStatus = "No Depreciation"
	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", frozen))

	rec := srv.do(t, http.MethodPost, "/api/depreciation/execute", ExecuteRequest{AssetID: asset.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No records were written
	records := decode[[]DepreciationRecordDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/depreciations", nil))
	assert.Empty(t, records)
}

// =============================================================================
// DISPOSAL
// =============================================================================

func TestDisposal_SaleWithGain(t *testing.T) {
	srv := newTestServer(t)

	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	rec := srv.do(t, http.MethodPost, "/api/assets/"+asset.ID+"/disposal", DisposalRequest{
		DisposalType: "Sale",
		Proceeds:     decimal.NewFromInt(9000),
		Remark:       "sold at auction",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	disposal := decode[DisposalDTO](t, rec)
	assert.Equal(t, "Gain", disposal.Outcome)
	// proceeds 9000 against book value 8200
	assert.True(t, disposal.GainLoss.Equal(decimal.NewFromInt(800)),
		"gain = %s", disposal.GainLoss)

	updated := decode[AssetDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID, nil))
	assert.Equal(t, "Disposal", updated.AssetStatus)

	// A second disposal is rejected
	again := srv.do(t, http.MethodPost, "/api/assets/"+asset.ID+"/disposal", DisposalRequest{
		DisposalType: "Scrap",
	})
	assert.Equal(t, http.StatusBadRequest, again.Code)
}

func TestDisposal_BadTypeRejected(t *testing.T) {
	srv := newTestServer(t)

	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	rec := srv.do(t, http.MethodPost, "/api/assets/"+asset.ID+"/disposal", DisposalRequest{
		DisposalType: "Donation",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// ADJUSTMENTS AND ACCOUNTS
// =============================================================================

func TestAdjustments_RecordAndList(t *testing.T) {
	srv := newTestServer(t)

	asset := decode[AssetDTO](t, srv.do(t, http.MethodPost, "/api/assets", machineryAsset()))

	rec := srv.do(t, http.MethodPost, "/api/assets/"+asset.ID+"/adjustments", AdjustmentRequest{
		AdjustmentType: "Changing Useful Life",
		OldValue:       decimal.NewFromInt(5),
		NewValue:       decimal.NewFromInt(7),
		Remark:         "extended after overhaul",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	listed := decode[[]AdjustmentDTO](t, srv.do(t, http.MethodGet, "/api/assets/"+asset.ID+"/adjustments", nil))
	require.Len(t, listed, 1)
	assert.Equal(t, "Changing Useful Life", listed[0].AdjustmentType)
	assert.True(t, listed[0].NewValue.Equal(decimal.NewFromInt(7)))
}

func TestAdjustments_UnknownAsset(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/assets/ghost/adjustments", AdjustmentRequest{
		AdjustmentType: "Additional Cost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccounts_CreateAndList(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec := srv.do(t, http.MethodPost, "/api/accounts", CreateAccountRequest{
			AccountCode: fmt.Sprintf("18%02d", i),
			AccountName: fmt.Sprintf("Account %d", i),
			AccountType: "Asset",
			Currency:    "USD",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	accounts := decode[[]AccountDTO](t, srv.do(t, http.MethodGet, "/api/accounts", nil))
	assert.Len(t, accounts, 2)
}

func TestAccounts_NameRequired(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/accounts", CreateAccountRequest{AccountType: "Asset"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
