package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asset-register/register"
	"github.com/warp/asset-register/register/store"
)

func TestWithTx_RollbackRestoresSnapshot(t *testing.T) {
	mem := store.NewTxMemory()
	ctx := context.Background()

	require.NoError(t, mem.SaveAsset(ctx, register.Asset{ID: "keep"}))

	boom := errors.New("boom")
	err := mem.WithTx(ctx, func(s register.Store) error {
		if err := s.SaveAsset(ctx, register.Asset{ID: "doomed"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	doomed, err := mem.GetAsset(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, doomed, "failed transaction's write must not survive")

	kept, err := mem.GetAsset(ctx, "keep")
	require.NoError(t, err)
	assert.NotNil(t, kept, "pre-transaction data must survive the rollback")
}

func TestWithTx_ConcurrentCommitAndRollbackStayIsolated(t *testing.T) {
	// GIVEN: Committing and failing transactions racing on distinct assets
	// THEN: Every committed asset survives; no failed transaction's
	// rollback wipes a write another transaction committed in between
	mem := store.NewTxMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- mem.WithTx(ctx, func(s register.Store) error {
				return s.SaveAsset(ctx, register.Asset{ID: fmt.Sprintf("committed-%d", i)})
			})
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mem.WithTx(ctx, func(s register.Store) error {
				if err := s.SaveAsset(ctx, register.Asset{ID: fmt.Sprintf("doomed-%d", i)}); err != nil {
					return err
				}
				return boom
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for i := 0; i < n; i++ {
		committed, err := mem.GetAsset(ctx, fmt.Sprintf("committed-%d", i))
		require.NoError(t, err)
		assert.NotNil(t, committed, "committed-%d was wiped by a concurrent rollback", i)

		doomed, err := mem.GetAsset(ctx, fmt.Sprintf("doomed-%d", i))
		require.NoError(t, err)
		assert.Nil(t, doomed, "doomed-%d survived its rollback", i)
	}
}
