package leavetype

import (
	"context"
	"database/sql"
	"errors"

	leavetypeerrors "go-leave/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Seed(ctx context.Context) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("name", req.Name),
		zap.Int("max_days", req.MaxDays),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	excludeWeekends := true
	if req.ExcludeWeekends != nil {
		excludeWeekends = *req.ExcludeWeekends
	}

	lt := &LeaveType{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		MaxDays:         req.MaxDays,
		ExcludeWeekends: excludeWeekends,
		IsActive:        true,
	}

	if err := qtx.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

// Update adjusts the entitlement, description and active flag. The name and
// weekend policy are immutable once a type exists; entitlement changes do not
// retroactively alter balances already seeded from the old value.
func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("update leave type requested",
		zap.String("leave_type_id", id),
		zap.Int("max_days", req.MaxDays),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.Description = req.Description
	lt.MaxDays = req.MaxDays
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.logger.Info("update leave type success",
		zap.String("leave_type_id", id),
		zap.Bool("is_active", lt.IsActive),
	)

	return mapToResponse(*lt), nil
}

// Seed inserts the default statutory leave types, skipping ones that already
// exist. Safe to call on every startup.
func (s *service) Seed(ctx context.Context) error {
	for _, seed := range defaultLeaveTypes {
		_, err := s.repo.FindByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		lt := seed
		lt.ID = uuid.New()
		lt.IsActive = true
		if err := s.repo.Create(ctx, &lt); err != nil {
			s.logger.Error("seed leave type failed",
				zap.String("name", lt.Name),
				zap.Error(err),
			)
			return mapRepositoryError(err)
		}
		s.logger.Info("seeded leave type", zap.String("name", lt.Name))
	}
	return nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:              lt.ID.String(),
		Name:            lt.Name,
		Description:     lt.Description,
		MaxDays:         lt.MaxDays,
		ExcludeWeekends: lt.ExcludeWeekends,
		IsActive:        lt.IsActive,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
