/*
store.go - Persistence interfaces for the asset register

PURPOSE:
  Defines the interface between the register domain and the database.
  Records (depreciation rows, events) are append-only: the interface has
  no update or delete for them. Assets are the only mutable rows, and
  only their derived valuation fields and status change.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite
  - register/store: in-memory for tests

TRANSACTIONS:
  TxStore.WithTx runs a function against a transactional view. If the
  function returns an error the transaction rolls back and none of its
  writes survive. The Executor wraps every execution run in WithTx so a
  failure can never leave a record without its event, or a policy without
  its asset update.
*/
package register

import "context"

// Store handles persistence of register entities.
// Get* methods return (nil, nil) when the row does not exist.
type Store interface {
	GetAsset(ctx context.Context, id string) (*Asset, error)
	SaveAsset(ctx context.Context, a Asset) error
	ListAssets(ctx context.Context) ([]Asset, error)

	GetAccountByName(ctx context.Context, name string) (*Account, error)
	CreateAccount(ctx context.Context, acc Account) error
	ListAccounts(ctx context.Context) ([]Account, error)

	GetPolicyByAsset(ctx context.Context, assetID string) (*AssetPolicy, error)
	CreatePolicy(ctx context.Context, p AssetPolicy) error

	CreateDepreciation(ctx context.Context, d DepreciationRecord) error
	ListDepreciationsByAsset(ctx context.Context, assetID string) ([]DepreciationRecord, error)

	CreateEvent(ctx context.Context, e DepreciationEvent) error
	ListEventsByAsset(ctx context.Context, assetID string) ([]DepreciationEvent, error)

	CreateDisposal(ctx context.Context, d Disposal) error
	ListDisposalsByAsset(ctx context.Context, assetID string) ([]Disposal, error)

	CreateAdjustment(ctx context.Context, adj Adjustment) error
	ListAdjustmentsByAsset(ctx context.Context, assetID string) ([]Adjustment, error)
}

// TxStore wraps Store with transaction support.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction.
	// If fn returns error, the transaction is rolled back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
