package timeoff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	rosterRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/roster"
	timeOffRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/timeoff"
	"github.com/m04kA/estimate-scheduler/internal/service/timeoff/models"
)

// Service сервис для работы с отсутствиями оценщиков
type Service struct {
	timeOffRepo   TimeOffRepository
	estimatorRepo EstimatorRepository
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса отсутствий
func NewService(
	timeOffRepo TimeOffRepository,
	estimatorRepo EstimatorRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		timeOffRepo:   timeOffRepo,
		estimatorRepo: estimatorRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// IsTimeOff проверяет, исключен ли оценщик на дату
// Исключен, если есть разовое отсутствие на эту дату или еженедельное на ее день недели
func (s *Service) IsTimeOff(ctx context.Context, estimatorID int64, date string) (*models.CheckTimeOffResponse, error) {
	parsed, err := domain.ParseDate(date)
	if err != nil {
		s.logger.Warn("IsTimeOff: invalid date=%s", date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	date = parsed.Format(domain.DateFormat)

	off, err := s.timeOffRepo.IsExcluded(ctx, estimatorID, date, domain.Weekday(parsed))
	if err != nil {
		s.logger.Error("IsTimeOff: repository error for estimator=%d, date=%s: %v", estimatorID, date, err)
		return nil, fmt.Errorf("%w: IsTimeOff - repository error: %v", ErrInternal, err)
	}

	return &models.CheckTimeOffResponse{EstimatorID: estimatorID, Date: date, Off: off}, nil
}

// Upsert добавляет отсутствие
// Еженедельное заменяет прежнее на тот же день недели, повтор разового ничего не меняет
func (s *Service) Upsert(ctx context.Context, req *models.UpsertTimeOffRequest) (*models.UpsertTimeOffResponse, error) {
	s.logger.Info("Upsert: estimator=%d, recurring=%t", req.EstimatorID, req.Recurring)

	label, err := validateUpsert(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.estimatorRepo.GetEstimator(ctx, req.EstimatorID); err != nil {
		if errors.Is(err, rosterRepo.ErrEstimatorNotFound) {
			s.logger.Warn("Upsert: estimator id=%d not found", req.EstimatorID)
			return nil, ErrEstimatorNotFound
		}
		s.logger.Error("Upsert: failed to get estimator id=%d: %v", req.EstimatorID, err)
		return nil, fmt.Errorf("%w: Upsert - failed to get estimator: %v", ErrInternal, err)
	}

	var (
		entry   *domain.TimeOff
		created bool
	)

	if req.Recurring {
		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			var txErr error
			entry, txErr = s.timeOffRepo.ReplaceRecurring(txCtx, req.EstimatorID, *req.DayOfWeek, label)
			return txErr
		})
		created = true
	} else {
		entry, created, err = s.timeOffRepo.CreateOneOff(ctx, req.EstimatorID, *req.Date, label)
	}
	if err != nil {
		s.logger.Error("Upsert: repository error for estimator=%d: %v", req.EstimatorID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: time off id=%d for estimator=%d, created=%t", entry.ID, req.EstimatorID, created)
	return &models.UpsertTimeOffResponse{TimeOff: models.FromDomainTimeOff(entry), Created: created}, nil
}

// Delete удаляет запись об отсутствии
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting time off id=%d", id)

	if err := s.timeOffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeOffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Delete: time off id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("Delete: repository error for time off id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// List возвращает отсутствия оценщика: сначала еженедельные, затем разовые
func (s *Service) List(ctx context.Context, estimatorID int64) (*models.TimeOffListResponse, error) {
	entries, err := s.timeOffRepo.ListByEstimator(ctx, estimatorID)
	if err != nil {
		s.logger.Error("List: repository error for estimator=%d: %v", estimatorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeOffList(entries), nil
}

// validateUpsert проверяет запрос и возвращает метку с учетом значения по умолчанию
func validateUpsert(req *models.UpsertTimeOffRequest) (string, error) {
	if req.EstimatorID <= 0 {
		return "", fmt.Errorf("%w: estimator_id must be positive", ErrInvalidInput)
	}

	if req.Recurring {
		if req.DayOfWeek == nil {
			return "", fmt.Errorf("%w: day_of_week is required for recurring time off", ErrInvalidInput)
		}
		if !domain.IsValidDayOfWeek(*req.DayOfWeek) {
			return "", fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrInvalidInput)
		}
	} else {
		if req.Date == nil {
			return "", fmt.Errorf("%w: date is required for one-off time off", ErrInvalidInput)
		}
		parsed, err := domain.ParseDate(*req.Date)
		if err != nil {
			return "", fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		normalized := parsed.Format(domain.DateFormat)
		req.Date = &normalized
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = domain.DefaultTimeOffLabel
	}
	if len([]rune(label)) > domain.MaxLabelLength {
		return "", fmt.Errorf("%w: label is too long", ErrInvalidInput)
	}

	return label, nil
}
