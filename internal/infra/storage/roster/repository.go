package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

const (
	tableRegions    = "regions"
	tableEstimators = "estimators"
)

var estimatorColumns = []string{"id", "name", "color", "region_id", "active", "sort_order"}

// Repository справочник регионов и оценщиков
type Repository struct {
	db      DBExecutor
	dialect dialect.Dialect
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, dialect: d}
}

// GetEstimator получает оценщика по ID (включая неактивных)
func (r *Repository) GetEstimator(ctx context.Context, id int64) (*domain.Estimator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(estimatorColumns...).
		From(tableEstimators).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEstimator - build select query: %v", ErrBuildQuery, err)
	}

	estimator, err := scanEstimator(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEstimatorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEstimator - scan row: %v", ErrScanRow, err)
	}

	return estimator, nil
}

// ListEstimators возвращает оценщиков в порядке отображения
// activeOnly отбрасывает неактивных
func (r *Repository) ListEstimators(ctx context.Context, activeOnly bool) ([]*domain.Estimator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(estimatorColumns...).From(tableEstimators)
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.OrderBy("sort_order ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEstimators - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEstimators - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	estimators := make([]*domain.Estimator, 0)
	for rows.Next() {
		estimator, err := scanEstimator(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEstimators - scan row: %v", ErrScanRow, err)
		}
		estimators = append(estimators, estimator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEstimators - rows error: %v", ErrScanRow, err)
	}

	return estimators, nil
}

// CreateRegion добавляет регион
func (r *Repository) CreateRegion(ctx context.Context, region *domain.Region) (*domain.Region, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Insert(tableRegions).
		Columns("name", "sort_order").
		Values(region.Name, region.SortOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRegion - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&region.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRegion - execute insert: %v", ErrExecQuery, err)
	}

	return region, nil
}

// CreateEstimator добавляет оценщика
func (r *Repository) CreateEstimator(ctx context.Context, estimator *domain.Estimator) (*domain.Estimator, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if estimator.Color == "" {
		estimator.Color = domain.DefaultColor
	}

	query, args, err := r.dialect.Insert(tableEstimators).
		Columns("name", "color", "region_id", "active", "sort_order").
		Values(estimator.Name, estimator.Color, estimator.RegionID, estimator.Active, estimator.SortOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateEstimator - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&estimator.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateEstimator - execute insert: %v", ErrExecQuery, err)
	}

	return estimator, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEstimator(row rowScanner) (*domain.Estimator, error) {
	var estimator domain.Estimator
	var regionID sql.NullInt64

	if err := row.Scan(
		&estimator.ID,
		&estimator.Name,
		&estimator.Color,
		&regionID,
		&estimator.Active,
		&estimator.SortOrder,
	); err != nil {
		return nil, err
	}

	if regionID.Valid {
		id := regionID.Int64
		estimator.RegionID = &id
	}

	return &estimator, nil
}
