/*
Package sqlite provides a SQLite-backed implementation of the register
storage interfaces.

PURPOSE:
  Implements register.Store and register.TxStore using SQLite. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

APPEND-ONLY ENFORCEMENT:
  depreciations, depreciation_events, asset_disposals and
  asset_adjustments have no UPDATE or DELETE statements. Assets are the
  only mutable rows; asset_policies are written once per asset, with a
  unique index on asset_id backing up the get-or-create step.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. The executor
  additionally serializes runs per asset, so the policy get-or-create
  cannot race.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/assets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  executor := register.NewExecutor(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - register/store.go: Interface definitions
  - register/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/asset-register/depreciation"
	"github.com/warp/asset-register/register"
)

// Store implements register.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		account_code TEXT NOT NULL DEFAULT '',
		account_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_name ON accounts(account_name);

	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		fixed_asset_code TEXT NOT NULL,
		fixed_asset_account TEXT NOT NULL,
		asset_name TEXT NOT NULL,
		asset_group TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		supplier TEXT NOT NULL DEFAULT '',
		acquisition_date TEXT NOT NULL DEFAULT '',
		capitalization_date TEXT NOT NULL DEFAULT '',
		asset_status TEXT NOT NULL,
		useful_life INTEGER NOT NULL,
		period TEXT NOT NULL,
		computation TEXT NOT NULL,
		method TEXT NOT NULL,
		home_currency TEXT NOT NULL DEFAULT '',
		transaction_currency TEXT NOT NULL DEFAULT '',
		exchange_rate TEXT NOT NULL DEFAULT '0',
		acquisition_cost TEXT NOT NULL DEFAULT '0',
		home_acquisition_cost TEXT NOT NULL DEFAULT '0',
		transportation_fee TEXT NOT NULL DEFAULT '0',
		tax TEXT NOT NULL DEFAULT '0',
		other_fee TEXT NOT NULL DEFAULT '0',
		total_amount TEXT NOT NULL DEFAULT '0',
		residual_value TEXT NOT NULL DEFAULT '0',
		current_nbv TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Append-only: no UPDATE/DELETE on this table
	CREATE TABLE IF NOT EXISTS depreciations (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		depreciation_date TEXT NOT NULL,
		method TEXT NOT NULL,
		computation TEXT NOT NULL,
		book_value TEXT NOT NULL,
		journal TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_depreciations_asset ON depreciations(asset_id);

	-- One policy per asset, created on first execution
	CREATE TABLE IF NOT EXISTS asset_policies (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		useful_life INTEGER NOT NULL,
		period TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		method TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		remark TEXT NOT NULL DEFAULT ''
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_policies_asset ON asset_policies(asset_id);

	-- Append-only: no UPDATE/DELETE on this table
	CREATE TABLE IF NOT EXISTS depreciation_events (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		policy_id TEXT NOT NULL,
		depreciation_id TEXT NOT NULL,
		depreciation_date TEXT NOT NULL,
		depreciation_amount TEXT NOT NULL,
		accumulated_depreciation TEXT NOT NULL,
		nbv_depreciation TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_asset ON depreciation_events(asset_id);
	CREATE INDEX IF NOT EXISTS idx_events_policy ON depreciation_events(policy_id);

	CREATE TABLE IF NOT EXISTS asset_disposals (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		policy_id TEXT NOT NULL DEFAULT '',
		disposal_date TEXT NOT NULL,
		disposal_type TEXT NOT NULL,
		outcome TEXT NOT NULL,
		proceeds TEXT NOT NULL,
		book_value TEXT NOT NULL,
		gain_loss TEXT NOT NULL,
		remark TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_disposals_asset ON asset_disposals(asset_id);

	CREATE TABLE IF NOT EXISTS asset_adjustments (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		adjustment_date TEXT NOT NULL,
		adjustment_type TEXT NOT NULL,
		old_value TEXT NOT NULL,
		new_value TEXT NOT NULL,
		remark TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_adjustments_asset ON asset_adjustments(asset_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx abstracts *sql.DB and *sql.Tx so the same query code serves both
// the direct store and the transactional view.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// TRANSACTIONS (register.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(register.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txView{q: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txView is the register.Store bound to one open transaction.
type txView struct {
	q dbtx
}

// =============================================================================
// ASSETS
// =============================================================================

const assetColumns = `id, fixed_asset_code, fixed_asset_account, asset_name, asset_group,
	description, supplier, acquisition_date, capitalization_date, asset_status,
	useful_life, period, computation, method, home_currency, transaction_currency,
	exchange_rate, acquisition_cost, home_acquisition_cost, transportation_fee,
	tax, other_fee, total_amount, residual_value, current_nbv, created_at`

func (s *Store) GetAsset(ctx context.Context, id string) (*register.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getAsset(ctx, s.db, id)
}

func (t *txView) GetAsset(ctx context.Context, id string) (*register.Asset, error) {
	return getAsset(ctx, t.q, id)
}

func getAsset(ctx context.Context, q dbtx, id string) (*register.Asset, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	asset, err := scanAsset(rows)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Store) SaveAsset(ctx context.Context, a register.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAsset(ctx, s.db, a)
}

func (t *txView) SaveAsset(ctx context.Context, a register.Asset) error {
	return saveAsset(ctx, t.q, a)
}

func saveAsset(ctx context.Context, q dbtx, a register.Asset) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx, `
		INSERT OR REPLACE INTO assets (`+assetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FixedAssetCode, a.FixedAssetAccount, a.AssetName, a.AssetGroup,
		a.Description, a.Supplier, formatDate(a.AcquisitionDate), formatDate(a.CapitalizationDate),
		string(a.AssetStatus), a.UsefulLife, string(a.Period), string(a.Computation),
		string(a.Method), a.HomeCurrency, a.TransactionCurrency,
		a.ExchangeRate.String(), a.AcquisitionCost.String(), a.HomeAcquisitionCost.String(),
		a.TransportationFee.String(), a.Tax.String(), a.OtherFee.String(),
		a.TotalAmount.String(), a.ResidualValue.String(), a.CurrentNBV.String(),
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

func (s *Store) ListAssets(ctx context.Context) ([]register.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAssets(ctx, s.db)
}

func (t *txView) ListAssets(ctx context.Context) ([]register.Asset, error) {
	return listAssets(ctx, t.q)
}

func listAssets(ctx context.Context, q dbtx) ([]register.Asset, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []register.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func scanAsset(rows *sql.Rows) (register.Asset, error) {
	var a register.Asset
	var acquisitionDate, capDate, created, status, period, computation, meth string
	var exchangeRate, acquisitionCost, homeCost, transportationFee, tax, otherFee, totalAmount, residualValue, currentNBV string

	err := rows.Scan(
		&a.ID, &a.FixedAssetCode, &a.FixedAssetAccount, &a.AssetName, &a.AssetGroup,
		&a.Description, &a.Supplier, &acquisitionDate, &capDate, &status,
		&a.UsefulLife, &period, &computation, &meth, &a.HomeCurrency, &a.TransactionCurrency,
		&exchangeRate, &acquisitionCost, &homeCost, &transportationFee,
		&tax, &otherFee, &totalAmount, &residualValue, &currentNBV, &created,
	)
	if err != nil {
		return a, fmt.Errorf("failed to scan asset: %w", err)
	}

	a.AcquisitionDate = parseDate(acquisitionDate)
	a.CapitalizationDate = parseDate(capDate)
	a.AssetStatus = depreciation.Status(status)
	a.Period = depreciation.Unit(period)
	a.Computation = depreciation.Unit(computation)
	a.Method = depreciation.Method(meth)
	a.ExchangeRate = parseDecimal(exchangeRate)
	a.AcquisitionCost = parseDecimal(acquisitionCost)
	a.HomeAcquisitionCost = parseDecimal(homeCost)
	a.TransportationFee = parseDecimal(transportationFee)
	a.Tax = parseDecimal(tax)
	a.OtherFee = parseDecimal(otherFee)
	a.TotalAmount = parseDecimal(totalAmount)
	a.ResidualValue = parseDecimal(residualValue)
	a.CurrentNBV = parseDecimal(currentNBV)
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return a, nil
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (s *Store) GetAccountByName(ctx context.Context, name string) (*register.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getAccountByName(ctx, s.db, name)
}

func (t *txView) GetAccountByName(ctx context.Context, name string) (*register.Account, error) {
	return getAccountByName(ctx, t.q, name)
}

func getAccountByName(ctx context.Context, q dbtx, name string) (*register.Account, error) {
	var acc register.Account
	err := q.QueryRowContext(ctx,
		`SELECT id, account_code, account_name, account_type, currency FROM accounts WHERE account_name = ?`,
		name,
	).Scan(&acc.ID, &acc.AccountCode, &acc.AccountName, &acc.AccountType, &acc.Currency)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &acc, nil
}

func (s *Store) CreateAccount(ctx context.Context, acc register.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createAccount(ctx, s.db, acc)
}

func (t *txView) CreateAccount(ctx context.Context, acc register.Account) error {
	return createAccount(ctx, t.q, acc)
}

func createAccount(ctx context.Context, q dbtx, acc register.Account) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO accounts (id, account_code, account_name, account_type, currency) VALUES (?, ?, ?, ?, ?)`,
		acc.ID, acc.AccountCode, acc.AccountName, acc.AccountType, acc.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]register.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAccounts(ctx, s.db)
}

func (t *txView) ListAccounts(ctx context.Context) ([]register.Account, error) {
	return listAccounts(ctx, t.q)
}

func listAccounts(ctx context.Context, q dbtx) ([]register.Account, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, account_code, account_name, account_type, currency FROM accounts ORDER BY account_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []register.Account
	for rows.Next() {
		var acc register.Account
		if err := rows.Scan(&acc.ID, &acc.AccountCode, &acc.AccountName, &acc.AccountType, &acc.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// =============================================================================
// POLICIES
// =============================================================================

func (s *Store) GetPolicyByAsset(ctx context.Context, assetID string) (*register.AssetPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getPolicyByAsset(ctx, s.db, assetID)
}

func (t *txView) GetPolicyByAsset(ctx context.Context, assetID string) (*register.AssetPolicy, error) {
	return getPolicyByAsset(ctx, t.q, assetID)
}

func getPolicyByAsset(ctx context.Context, q dbtx, assetID string) (*register.AssetPolicy, error) {
	var p register.AssetPolicy
	var period, method, start, end, status, amount string
	err := q.QueryRowContext(ctx, `
		SELECT id, asset_id, useful_life, period, start_date, end_date, method, amount, status, remark
		FROM asset_policies WHERE asset_id = ?`, assetID,
	).Scan(&p.ID, &p.AssetID, &p.UsefulLife, &period, &start, &end, &method, &amount, &status, &p.Remark)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query policy: %w", err)
	}

	p.Period = depreciation.Unit(period)
	p.Method = depreciation.Method(method)
	p.StartDate = parseDate(start)
	p.EndDate = parseDate(end)
	p.Amount = parseDecimal(amount)
	p.Status = register.PolicyStatus(status)
	return &p, nil
}

func (s *Store) CreatePolicy(ctx context.Context, p register.AssetPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createPolicy(ctx, s.db, p)
}

func (t *txView) CreatePolicy(ctx context.Context, p register.AssetPolicy) error {
	return createPolicy(ctx, t.q, p)
}

func createPolicy(ctx context.Context, q dbtx, p register.AssetPolicy) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO asset_policies (id, asset_id, useful_life, period, start_date, end_date, method, amount, status, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AssetID, p.UsefulLife, string(p.Period), formatDate(p.StartDate), formatDate(p.EndDate),
		string(p.Method), p.Amount.String(), string(p.Status), p.Remark,
	)
	if err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

// =============================================================================
// DEPRECIATION RECORDS
// =============================================================================

func (s *Store) CreateDepreciation(ctx context.Context, d register.DepreciationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createDepreciation(ctx, s.db, d)
}

func (t *txView) CreateDepreciation(ctx context.Context, d register.DepreciationRecord) error {
	return createDepreciation(ctx, t.q, d)
}

func createDepreciation(ctx context.Context, q dbtx, d register.DepreciationRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO depreciations (id, asset_id, account_id, depreciation_date, method, computation, book_value, journal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.AssetID, d.AccountID, formatDate(d.DepreciationDate),
		string(d.Method), string(d.Computation), d.BookValue.String(), d.Journal,
	)
	if err != nil {
		return fmt.Errorf("failed to create depreciation record: %w", err)
	}
	return nil
}

func (s *Store) ListDepreciationsByAsset(ctx context.Context, assetID string) ([]register.DepreciationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDepreciations(ctx, s.db, assetID)
}

func (t *txView) ListDepreciationsByAsset(ctx context.Context, assetID string) ([]register.DepreciationRecord, error) {
	return listDepreciations(ctx, t.q, assetID)
}

func listDepreciations(ctx context.Context, q dbtx, assetID string) ([]register.DepreciationRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, asset_id, account_id, depreciation_date, method, computation, book_value, journal
		FROM depreciations WHERE asset_id = ? ORDER BY depreciation_date ASC, id ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciations: %w", err)
	}
	defer rows.Close()

	var records []register.DepreciationRecord
	for rows.Next() {
		var d register.DepreciationRecord
		var date, meth, compute, bookValue string
		if err := rows.Scan(&d.ID, &d.AssetID, &d.AccountID, &date, &meth, &compute, &bookValue, &d.Journal); err != nil {
			return nil, fmt.Errorf("failed to scan depreciation record: %w", err)
		}
		d.DepreciationDate = parseDate(date)
		d.Method = depreciation.Method(meth)
		d.Computation = depreciation.Unit(compute)
		d.BookValue = parseDecimal(bookValue)
		records = append(records, d)
	}
	return records, rows.Err()
}

// =============================================================================
// DEPRECIATION EVENTS
// =============================================================================

func (s *Store) CreateEvent(ctx context.Context, e register.DepreciationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createEvent(ctx, s.db, e)
}

func (t *txView) CreateEvent(ctx context.Context, e register.DepreciationEvent) error {
	return createEvent(ctx, t.q, e)
}

func createEvent(ctx context.Context, q dbtx, e register.DepreciationEvent) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO depreciation_events
		(id, asset_id, policy_id, depreciation_id, depreciation_date, depreciation_amount, accumulated_depreciation, nbv_depreciation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AssetID, e.PolicyID, e.DepreciationID, formatDate(e.DepreciationDate),
		e.DepreciationAmount.String(), e.AccumulatedDepreciation.String(), e.NBV.String(),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create depreciation event: %w", err)
	}
	return nil
}

func (s *Store) ListEventsByAsset(ctx context.Context, assetID string) ([]register.DepreciationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listEvents(ctx, s.db, assetID)
}

func (t *txView) ListEventsByAsset(ctx context.Context, assetID string) ([]register.DepreciationEvent, error) {
	return listEvents(ctx, t.q, assetID)
}

func listEvents(ctx context.Context, q dbtx, assetID string) ([]register.DepreciationEvent, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, asset_id, policy_id, depreciation_id, depreciation_date, depreciation_amount, accumulated_depreciation, nbv_depreciation, created_at
		FROM depreciation_events WHERE asset_id = ? ORDER BY created_at ASC, id ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []register.DepreciationEvent
	for rows.Next() {
		var e register.DepreciationEvent
		var date, amount, acc, nbv, created string
		if err := rows.Scan(&e.ID, &e.AssetID, &e.PolicyID, &e.DepreciationID, &date, &amount, &acc, &nbv, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.DepreciationDate = parseDate(date)
		e.DepreciationAmount = parseDecimal(amount)
		e.AccumulatedDepreciation = parseDecimal(acc)
		e.NBV = parseDecimal(nbv)
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		events = append(events, e)
	}
	return events, rows.Err()
}

// =============================================================================
// DISPOSALS
// =============================================================================

func (s *Store) CreateDisposal(ctx context.Context, d register.Disposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createDisposal(ctx, s.db, d)
}

func (t *txView) CreateDisposal(ctx context.Context, d register.Disposal) error {
	return createDisposal(ctx, t.q, d)
}

func createDisposal(ctx context.Context, q dbtx, d register.Disposal) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO asset_disposals
		(id, asset_id, policy_id, disposal_date, disposal_type, outcome, proceeds, book_value, gain_loss, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.AssetID, d.PolicyID, formatDate(d.DisposalDate), string(d.DisposalType),
		string(d.Outcome), d.Proceeds.String(), d.BookValue.String(), d.GainLoss.String(), d.Remark,
	)
	if err != nil {
		return fmt.Errorf("failed to create disposal: %w", err)
	}
	return nil
}

func (s *Store) ListDisposalsByAsset(ctx context.Context, assetID string) ([]register.Disposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDisposals(ctx, s.db, assetID)
}

func (t *txView) ListDisposalsByAsset(ctx context.Context, assetID string) ([]register.Disposal, error) {
	return listDisposals(ctx, t.q, assetID)
}

func listDisposals(ctx context.Context, q dbtx, assetID string) ([]register.Disposal, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, asset_id, policy_id, disposal_date, disposal_type, outcome, proceeds, book_value, gain_loss, remark
		FROM asset_disposals WHERE asset_id = ? ORDER BY disposal_date ASC, id ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list disposals: %w", err)
	}
	defer rows.Close()

	var disposals []register.Disposal
	for rows.Next() {
		var d register.Disposal
		var date, dtype, outcome, proceeds, bookValue, gainLoss string
		if err := rows.Scan(&d.ID, &d.AssetID, &d.PolicyID, &date, &dtype, &outcome, &proceeds, &bookValue, &gainLoss, &d.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan disposal: %w", err)
		}
		d.DisposalDate = parseDate(date)
		d.DisposalType = register.DisposalType(dtype)
		d.Outcome = register.DisposalOutcome(outcome)
		d.Proceeds = parseDecimal(proceeds)
		d.BookValue = parseDecimal(bookValue)
		d.GainLoss = parseDecimal(gainLoss)
		disposals = append(disposals, d)
	}
	return disposals, rows.Err()
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func (s *Store) CreateAdjustment(ctx context.Context, adj register.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createAdjustment(ctx, s.db, adj)
}

func (t *txView) CreateAdjustment(ctx context.Context, adj register.Adjustment) error {
	return createAdjustment(ctx, t.q, adj)
}

func createAdjustment(ctx context.Context, q dbtx, adj register.Adjustment) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO asset_adjustments (id, asset_id, adjustment_date, adjustment_type, old_value, new_value, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		adj.ID, adj.AssetID, formatDate(adj.AdjustmentDate), adj.AdjustmentType,
		adj.OldValue.String(), adj.NewValue.String(), adj.Remark,
	)
	if err != nil {
		return fmt.Errorf("failed to create adjustment: %w", err)
	}
	return nil
}

func (s *Store) ListAdjustmentsByAsset(ctx context.Context, assetID string) ([]register.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listAdjustments(ctx, s.db, assetID)
}

func (t *txView) ListAdjustmentsByAsset(ctx context.Context, assetID string) ([]register.Adjustment, error) {
	return listAdjustments(ctx, t.q, assetID)
}

func listAdjustments(ctx context.Context, q dbtx, assetID string) ([]register.Adjustment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, asset_id, adjustment_date, adjustment_type, old_value, new_value, remark
		FROM asset_adjustments WHERE asset_id = ? ORDER BY adjustment_date ASC, id ASC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []register.Adjustment
	for rows.Next() {
		var adj register.Adjustment
		var date, oldValue, newValue string
		if err := rows.Scan(&adj.ID, &adj.AssetID, &date, &adj.AdjustmentType, &oldValue, &newValue, &adj.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adj.AdjustmentDate = parseDate(date)
		adj.OldValue = parseDecimal(oldValue)
		adj.NewValue = parseDecimal(newValue)
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
