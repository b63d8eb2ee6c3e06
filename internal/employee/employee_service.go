package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EmployeeOptionsKey caches the duty-cover selector list.
const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetRole(ctx context.Context, employeeID string) (Role, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	role, err := ParseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var departmentUUID *uuid.UUID
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		exists, err := qtx.DepartmentExists(ctx, *req.DepartmentID)
		if err != nil {
			s.logger.Error("create employee department check failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !exists {
			s.logger.Warn("create employee unknown department",
				zap.String("department_id", *req.DepartmentID),
			)
			return EmployeeResponse{}, employeeerrors.ErrUnknownDepartment
		}
		parsed := uuid.MustParse(*req.DepartmentID)
		departmentUUID = &parsed
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:             uuid.New(),
		DepartmentID:   departmentUUID,
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           role,
		HireDate:       hireDate,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

// GetOptions serves the duty-cover selector. Redis first, singleflight around
// the database so a burst of form loads produces one query.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

// GetRole is the directory lookup the approval workflow runs on every
// submission and decision.
func (s *service) GetRole(ctx context.Context, employeeID string) (Role, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return "", employeeerrors.ErrInvalidEmployeeID
	}

	role, err := s.repo.FindRoleByID(ctx, employeeID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return role, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("employee_id", id),
		zap.String("role", req.Role),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var departmentUUID *uuid.UUID
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		exists, err := qtx.DepartmentExists(ctx, *req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrUnknownDepartment
		}
		parsed := uuid.MustParse(*req.DepartmentID)
		departmentUUID = &parsed
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.Role = role
	empl.DepartmentID = departmentUUID

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("invalidate employee options cache failed",
			zap.String("key", EmployeeOptionsKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		FullName:       empl.FullName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Role:           empl.Role.String(),
		EmployeeNumber: empl.EmployeeNumber,
	}
	if !empl.HireDate.IsZero() {
		resp.HireDate = empl.HireDate.Format("2006-01-02")
	}
	if empl.DepartmentID != nil {
		v := empl.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		resp[i] = mapToResponse(e)
	}
	return resp
}
