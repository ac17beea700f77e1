package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/testfixtures"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

func countRegions(t *testing.T, db dbmetrics.DBExecutor) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM regions").Scan(&n))
	return n
}

func insertRegion(ctx context.Context, db dbmetrics.DBExecutor, name string) error {
	_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO regions (name) VALUES (?)", name)
	return err
}

func TestTransactionManager_Commit(t *testing.T) {
	h := testfixtures.NewSQLiteHarness(t)
	tm := NewTransactionManager(h.DB)

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return insertRegion(ctx, h.DB, "North")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRegions(t, h.DB))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	h := testfixtures.NewSQLiteHarness(t)
	tm := NewTransactionManager(h.DB)
	boom := errors.New("boom")

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insertRegion(ctx, h.DB, "North"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRegions(t, h.DB))
}

func TestTransactionManager_NestedReusesOuter(t *testing.T) {
	h := testfixtures.NewSQLiteHarness(t)
	tm := NewTransactionManager(h.DB)
	boom := errors.New("boom")

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, insertRegion(ctx, h.DB, "North"))
		inner := tm.Do(ctx, func(ctx context.Context) error {
			return insertRegion(ctx, h.DB, "South")
		})
		require.NoError(t, inner)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRegions(t, h.DB))
}
