/*
executor.go - Depreciation execution workflow

PURPOSE:
  Turns a computed depreciation result into durable records. One
  execution run, inside a single transaction:

    1. Resolve or create the account named by the asset's
       fixed-asset-account field (idempotent by name)
    2. Create a DepreciationRecord dated today
    3. Get-or-create the AssetPolicy for the asset (first run creates it,
       later runs reuse it)
    4. Create a DepreciationEvent from the calculation result
    5. Update the asset's current NBV; transition to Finished when the
       asset is fully depreciated

  Either all records are created and the asset updated, or none are.

STATE MACHINE:
  Ready to Use -> (execute) -> Ready to Use | Finished
  Execution requires status "Ready to Use" (case-insensitive); any other
  status fails validation before any write.

CONCURRENCY:
  Executions against the same asset are serialized by a per-asset mutex,
  so the get-or-create policy step cannot race and double-create.
  Executions against different assets do not contend.
*/
package register

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
)

// CalculationResult carries the figures from a calculation run into an
// execution. CurrentNBV is optional; when nil the asset's stored NBV is
// used as the book value.
type CalculationResult struct {
	CurrentNBV              *decimal.Decimal
	DepreciationAmount      decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
}

type ExecuteInput struct {
	AssetID       string
	Result        CalculationResult
	ShowInJournal bool
}

type ExecuteOutput struct {
	DepreciationID string
	EventID        string
	PolicyID       string
	NewNBV         decimal.Decimal
}

type DisposeInput struct {
	AssetID      string
	DisposalType DisposalType
	Proceeds     decimal.Decimal
	Remark       string
}

// Executor runs the depreciation execution workflow against a TxStore.
type Executor struct {
	Store TxStore

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewExecutor(store TxStore) *Executor {
	return &Executor{
		Store: store,
		Now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

// assetLock returns the mutex serializing executions for one asset.
func (e *Executor) assetLock(assetID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[assetID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[assetID] = l
	}
	return l
}

// Execute runs one depreciation execution. See the package comment for
// the step sequence and atomicity guarantees.
func (e *Executor) Execute(ctx context.Context, in ExecuteInput) (ExecuteOutput, error) {
	if in.AssetID == "" {
		return ExecuteOutput{}, &depreciation.InputError{Field: "asset_id", Message: "is required"}
	}

	lock := e.assetLock(in.AssetID)
	lock.Lock()
	defer lock.Unlock()

	today := e.Now()
	var out ExecuteOutput

	err := e.Store.WithTx(ctx, func(s Store) error {
		asset, err := s.GetAsset(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: %s", depreciation.ErrAssetNotFound, in.AssetID)
		}

		if !asset.AssetStatus.Is(depreciation.StatusReadyToUse) {
			return &depreciation.StatusError{Current: asset.AssetStatus}
		}

		account, err := e.resolveAccount(ctx, s, asset.FixedAssetAccount)
		if err != nil {
			return err
		}

		bookValue := asset.CurrentNBV
		if in.Result.CurrentNBV != nil {
			bookValue = *in.Result.CurrentNBV
		}

		journal := ""
		if in.ShowInJournal {
			journal = "Depreciation Journal Entry"
		}

		record := DepreciationRecord{
			ID:               uuid.NewString(),
			AssetID:          asset.ID,
			AccountID:        account.ID,
			DepreciationDate: today,
			Method:           asset.Method,
			Computation:      asset.Computation,
			BookValue:        bookValue,
			Journal:          journal,
		}
		if err := s.CreateDepreciation(ctx, record); err != nil {
			return err
		}

		policy, err := e.resolvePolicy(ctx, s, *asset, in.Result.DepreciationAmount)
		if err != nil {
			return err
		}

		event := DepreciationEvent{
			ID:                      uuid.NewString(),
			AssetID:                 asset.ID,
			PolicyID:                policy.ID,
			DepreciationID:          record.ID,
			DepreciationDate:        today,
			DepreciationAmount:      in.Result.DepreciationAmount,
			AccumulatedDepreciation: in.Result.AccumulatedDepreciation,
			NBV:                     bookValue,
			CreatedAt:               today,
		}
		if err := s.CreateEvent(ctx, event); err != nil {
			return err
		}

		asset.CurrentNBV = bookValue
		if bookValue.LessThanOrEqual(asset.ResidualValue) {
			asset.AssetStatus = depreciation.StatusFinished
		}
		if err := s.SaveAsset(ctx, *asset); err != nil {
			return err
		}

		out = ExecuteOutput{
			DepreciationID: record.ID,
			EventID:        event.ID,
			PolicyID:       policy.ID,
			NewNBV:         bookValue,
		}
		return nil
	})
	if err != nil {
		return ExecuteOutput{}, err
	}
	return out, nil
}

// resolveAccount finds the account by name, creating an Asset-typed one
// if none exists. Idempotent by name.
func (e *Executor) resolveAccount(ctx context.Context, s Store, name string) (*Account, error) {
	account, err := s.GetAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	created := Account{
		ID:          uuid.NewString(),
		AccountName: name,
		AccountType: "Asset",
	}
	if err := s.CreateAccount(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// resolvePolicy returns the asset's policy, creating it on first
// execution. The end date is fixed at creation as capitalization plus
// useful_life years of 365 days, regardless of computation unit.
func (e *Executor) resolvePolicy(ctx context.Context, s Store, asset Asset, amount decimal.Decimal) (*AssetPolicy, error) {
	policy, err := s.GetPolicyByAsset(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		return policy, nil
	}

	created := AssetPolicy{
		ID:         uuid.NewString(),
		AssetID:    asset.ID,
		UsefulLife: asset.UsefulLife,
		Period:     asset.Period,
		StartDate:  asset.CapitalizationDate,
		EndDate:    asset.CapitalizationDate.AddDate(0, 0, asset.UsefulLife*365),
		Method:     asset.Method,
		Amount:     amount,
		Status:     PolicyActive,
		Remark:     fmt.Sprintf("Auto-generated policy for %s", asset.FixedAssetCode),
	}
	if err := s.CreatePolicy(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Dispose retires an asset: records proceeds against book value with the
// computed gain or loss and transitions the asset to Disposal status.
func (e *Executor) Dispose(ctx context.Context, in DisposeInput) (Disposal, error) {
	if in.AssetID == "" {
		return Disposal{}, &depreciation.InputError{Field: "asset_id", Message: "is required"}
	}
	switch in.DisposalType {
	case DisposalSale, DisposalScrap, DisposalWriteOff:
	default:
		return Disposal{}, &depreciation.InputError{Field: "disposal_type", Message: "must be Sale, Scrap or WriteOff"}
	}

	lock := e.assetLock(in.AssetID)
	lock.Lock()
	defer lock.Unlock()

	today := e.Now()
	var out Disposal

	err := e.Store.WithTx(ctx, func(s Store) error {
		asset, err := s.GetAsset(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: %s", depreciation.ErrAssetNotFound, in.AssetID)
		}
		if asset.AssetStatus.Is(depreciation.StatusDisposal) {
			return &depreciation.InputError{Field: "asset_id", Message: "asset is already disposed"}
		}

		policyID := ""
		if policy, err := s.GetPolicyByAsset(ctx, asset.ID); err != nil {
			return err
		} else if policy != nil {
			policyID = policy.ID
		}

		gainLoss := in.Proceeds.Sub(asset.CurrentNBV)
		outcome := OutcomeGain
		if gainLoss.IsNegative() {
			outcome = OutcomeLoss
		}

		disposal := Disposal{
			ID:           uuid.NewString(),
			AssetID:      asset.ID,
			PolicyID:     policyID,
			DisposalDate: today,
			DisposalType: in.DisposalType,
			Outcome:      outcome,
			Proceeds:     in.Proceeds,
			BookValue:    asset.CurrentNBV,
			GainLoss:     gainLoss,
			Remark:       in.Remark,
		}
		if err := s.CreateDisposal(ctx, disposal); err != nil {
			return err
		}

		asset.AssetStatus = depreciation.StatusDisposal
		if err := s.SaveAsset(ctx, *asset); err != nil {
			return err
		}

		out = disposal
		return nil
	})
	if err != nil {
		return Disposal{}, err
	}
	return out, nil
}
