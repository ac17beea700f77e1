package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/testfixtures"
)

func TestRepository_EstimatorsAndRegions(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	repo := NewRepository(h.DB, h.Dialect)

	region, err := repo.CreateRegion(ctx, &domain.Region{Name: "North", SortOrder: 1})
	require.NoError(t, err)
	require.NotZero(t, region.ID)

	second, err := repo.CreateEstimator(ctx, &domain.Estimator{Name: "Bob", RegionID: &region.ID, Active: true, SortOrder: 2})
	require.NoError(t, err)
	first, err := repo.CreateEstimator(ctx, &domain.Estimator{Name: "Alice", Active: true, SortOrder: 1, Color: "#ff0000"})
	require.NoError(t, err)
	_, err = repo.CreateEstimator(ctx, &domain.Estimator{Name: "Retired", Active: false})
	require.NoError(t, err)

	fetched, err := repo.GetEstimator(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", fetched.Name)
	assert.Equal(t, domain.DefaultColor, fetched.Color)
	require.NotNil(t, fetched.RegionID)
	assert.Equal(t, region.ID, *fetched.RegionID)

	active, err := repo.ListEstimators(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Nil(t, active[0].RegionID)
	assert.Equal(t, second.ID, active[1].ID)

	all, err := repo.ListEstimators(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_GetEstimator_NotFound(t *testing.T) {
	h := testfixtures.NewSQLiteHarness(t)
	repo := NewRepository(h.DB, h.Dialect)

	_, err := repo.GetEstimator(context.Background(), 123)
	assert.ErrorIs(t, err, ErrEstimatorNotFound)
}
