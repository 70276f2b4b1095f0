// Package store provides register.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/asset-register/register"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	data memoryData
}

type memoryData struct {
	assets        map[string]register.Asset
	accounts      map[string]register.Account // keyed by id
	policies      map[string]register.AssetPolicy
	depreciations map[string][]register.DepreciationRecord // keyed by asset id
	events        map[string][]register.DepreciationEvent
	disposals     map[string][]register.Disposal
	adjustments   map[string][]register.Adjustment
}

func newMemoryData() memoryData {
	return memoryData{
		assets:        make(map[string]register.Asset),
		accounts:      make(map[string]register.Account),
		policies:      make(map[string]register.AssetPolicy),
		depreciations: make(map[string][]register.DepreciationRecord),
		events:        make(map[string][]register.DepreciationEvent),
		disposals:     make(map[string][]register.Disposal),
		adjustments:   make(map[string][]register.Adjustment),
	}
}

func NewMemory() *Memory {
	return &Memory{data: newMemoryData()}
}

// The operations live on memoryData, lock-free; Memory wraps them with its
// mutex, and the transactional view calls them under the lock WithTx
// already holds.

func (d *memoryData) getAsset(id string) (*register.Asset, error) {
	if a, ok := d.assets[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (d *memoryData) saveAsset(a register.Asset) error {
	d.assets[a.ID] = a
	return nil
}

func (d *memoryData) listAssets() ([]register.Asset, error) {
	assets := make([]register.Asset, 0, len(d.assets))
	for _, a := range d.assets {
		assets = append(assets, a)
	}
	return assets, nil
}

func (d *memoryData) getAccountByName(name string) (*register.Account, error) {
	for _, acc := range d.accounts {
		if acc.AccountName == name {
			a := acc
			return &a, nil
		}
	}
	return nil, nil
}

func (d *memoryData) createAccount(acc register.Account) error {
	d.accounts[acc.ID] = acc
	return nil
}

func (d *memoryData) listAccounts() ([]register.Account, error) {
	accounts := make([]register.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (d *memoryData) getPolicyByAsset(assetID string) (*register.AssetPolicy, error) {
	for _, p := range d.policies {
		if p.AssetID == assetID {
			policy := p
			return &policy, nil
		}
	}
	return nil, nil
}

func (d *memoryData) createPolicy(p register.AssetPolicy) error {
	d.policies[p.ID] = p
	return nil
}

func (d *memoryData) createDepreciation(rec register.DepreciationRecord) error {
	d.depreciations[rec.AssetID] = append(d.depreciations[rec.AssetID], rec)
	return nil
}

func (d *memoryData) listDepreciationsByAsset(assetID string) ([]register.DepreciationRecord, error) {
	return append([]register.DepreciationRecord{}, d.depreciations[assetID]...), nil
}

func (d *memoryData) createEvent(e register.DepreciationEvent) error {
	d.events[e.AssetID] = append(d.events[e.AssetID], e)
	return nil
}

func (d *memoryData) listEventsByAsset(assetID string) ([]register.DepreciationEvent, error) {
	return append([]register.DepreciationEvent{}, d.events[assetID]...), nil
}

func (d *memoryData) createDisposal(disp register.Disposal) error {
	d.disposals[disp.AssetID] = append(d.disposals[disp.AssetID], disp)
	return nil
}

func (d *memoryData) listDisposalsByAsset(assetID string) ([]register.Disposal, error) {
	return append([]register.Disposal{}, d.disposals[assetID]...), nil
}

func (d *memoryData) createAdjustment(adj register.Adjustment) error {
	d.adjustments[adj.AssetID] = append(d.adjustments[adj.AssetID], adj)
	return nil
}

func (d *memoryData) listAdjustmentsByAsset(assetID string) ([]register.Adjustment, error) {
	return append([]register.Adjustment{}, d.adjustments[assetID]...), nil
}

// clone deep-copies the data for the transaction snapshot.
func (d *memoryData) clone() memoryData {
	s := newMemoryData()
	for k, v := range d.assets {
		s.assets[k] = v
	}
	for k, v := range d.accounts {
		s.accounts[k] = v
	}
	for k, v := range d.policies {
		s.policies[k] = v
	}
	for k, v := range d.depreciations {
		s.depreciations[k] = append([]register.DepreciationRecord{}, v...)
	}
	for k, v := range d.events {
		s.events[k] = append([]register.DepreciationEvent{}, v...)
	}
	for k, v := range d.disposals {
		s.disposals[k] = append([]register.Disposal{}, v...)
	}
	for k, v := range d.adjustments {
		s.adjustments[k] = append([]register.Adjustment{}, v...)
	}
	return s
}

// =============================================================================
// LOCKED STORE METHODS (register.Store interface)
// =============================================================================

func (m *Memory) GetAsset(_ context.Context, id string) (*register.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.getAsset(id)
}

func (m *Memory) SaveAsset(_ context.Context, a register.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.saveAsset(a)
}

func (m *Memory) ListAssets(_ context.Context) ([]register.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listAssets()
}

func (m *Memory) GetAccountByName(_ context.Context, name string) (*register.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.getAccountByName(name)
}

func (m *Memory) CreateAccount(_ context.Context, acc register.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createAccount(acc)
}

func (m *Memory) ListAccounts(_ context.Context) ([]register.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listAccounts()
}

func (m *Memory) GetPolicyByAsset(_ context.Context, assetID string) (*register.AssetPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.getPolicyByAsset(assetID)
}

func (m *Memory) CreatePolicy(_ context.Context, p register.AssetPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createPolicy(p)
}

func (m *Memory) CreateDepreciation(_ context.Context, d register.DepreciationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createDepreciation(d)
}

func (m *Memory) ListDepreciationsByAsset(_ context.Context, assetID string) ([]register.DepreciationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listDepreciationsByAsset(assetID)
}

func (m *Memory) CreateEvent(_ context.Context, e register.DepreciationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createEvent(e)
}

func (m *Memory) ListEventsByAsset(_ context.Context, assetID string) ([]register.DepreciationEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listEventsByAsset(assetID)
}

func (m *Memory) CreateDisposal(_ context.Context, d register.Disposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createDisposal(d)
}

func (m *Memory) ListDisposalsByAsset(_ context.Context, assetID string) ([]register.Disposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listDisposalsByAsset(assetID)
}

func (m *Memory) CreateAdjustment(_ context.Context, adj register.Adjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createAdjustment(adj)
}

func (m *Memory) ListAdjustmentsByAsset(_ context.Context, assetID string) ([]register.Adjustment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.listAdjustmentsByAsset(assetID)
}

// =============================================================================
// TRANSACTIONAL MEMORY STORE
// =============================================================================

// TxMemory wraps Memory with transaction support, simulated with a
// snapshot + rollback on error. The mutex is held for the entire
// transaction, so concurrent transactions serialize and a rollback can
// never wipe a write committed by another transaction in between.
type TxMemory struct {
	*Memory
}

func NewTxMemory() *TxMemory {
	return &TxMemory{Memory: NewMemory()}
}

func (tm *TxMemory) WithTx(ctx context.Context, fn func(register.Store) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	snapshot := tm.data.clone()
	if err := fn(&txView{data: &tm.data}); err != nil {
		tm.data = snapshot
		return err
	}
	return nil
}

// txView is the register.Store handed to the transaction function. It
// reaches the data directly: WithTx already holds the lock, so re-locking
// here would deadlock.
type txView struct {
	data *memoryData
}

func (v *txView) GetAsset(_ context.Context, id string) (*register.Asset, error) {
	return v.data.getAsset(id)
}

func (v *txView) SaveAsset(_ context.Context, a register.Asset) error {
	return v.data.saveAsset(a)
}

func (v *txView) ListAssets(_ context.Context) ([]register.Asset, error) {
	return v.data.listAssets()
}

func (v *txView) GetAccountByName(_ context.Context, name string) (*register.Account, error) {
	return v.data.getAccountByName(name)
}

func (v *txView) CreateAccount(_ context.Context, acc register.Account) error {
	return v.data.createAccount(acc)
}

func (v *txView) ListAccounts(_ context.Context) ([]register.Account, error) {
	return v.data.listAccounts()
}

func (v *txView) GetPolicyByAsset(_ context.Context, assetID string) (*register.AssetPolicy, error) {
	return v.data.getPolicyByAsset(assetID)
}

func (v *txView) CreatePolicy(_ context.Context, p register.AssetPolicy) error {
	return v.data.createPolicy(p)
}

func (v *txView) CreateDepreciation(_ context.Context, d register.DepreciationRecord) error {
	return v.data.createDepreciation(d)
}

func (v *txView) ListDepreciationsByAsset(_ context.Context, assetID string) ([]register.DepreciationRecord, error) {
	return v.data.listDepreciationsByAsset(assetID)
}

func (v *txView) CreateEvent(_ context.Context, e register.DepreciationEvent) error {
	return v.data.createEvent(e)
}

func (v *txView) ListEventsByAsset(_ context.Context, assetID string) ([]register.DepreciationEvent, error) {
	return v.data.listEventsByAsset(assetID)
}

func (v *txView) CreateDisposal(_ context.Context, d register.Disposal) error {
	return v.data.createDisposal(d)
}

func (v *txView) ListDisposalsByAsset(_ context.Context, assetID string) ([]register.Disposal, error) {
	return v.data.listDisposalsByAsset(assetID)
}

func (v *txView) CreateAdjustment(_ context.Context, adj register.Adjustment) error {
	return v.data.createAdjustment(adj)
}

func (v *txView) ListAdjustmentsByAsset(_ context.Context, assetID string) ([]register.Adjustment, error) {
	return v.data.listAdjustmentsByAsset(assetID)
}
