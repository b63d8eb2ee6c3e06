package department

import (
	"context"
	"database/sql"

	departmenterrors "go-leave/internal/department/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	headUUID, err := s.resolveHead(ctx, qtx, req.HeadID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		HeadID:      headUUID,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	s.logger.Info("create department success",
		zap.String("department_id", dept.ID.String()),
		zap.String("name", dept.Name),
	)

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("update department requested",
		zap.String("department_id", id),
		zap.String("name", req.Name),
	)

	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	headUUID, err := s.resolveHead(ctx, qtx, req.HeadID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.Description = req.Description
	dept.HeadID = headUUID

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	s.logger.Info("update department success", zap.String("department_id", id))

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func (s *service) resolveHead(ctx context.Context, repo Repository, headID *string) (*uuid.UUID, error) {
	if headID == nil || *headID == "" {
		return nil, nil
	}

	exists, err := repo.EmployeeExists(ctx, *headID)
	if err != nil {
		s.logger.Error("department head lookup failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		s.logger.Warn("department head not found", zap.String("head_id", *headID))
		return nil, departmenterrors.ErrUnknownHead
	}

	parsed := uuid.MustParse(*headID)
	return &parsed, nil
}
