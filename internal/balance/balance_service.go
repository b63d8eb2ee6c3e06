package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "go-leave/internal/balance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger owns every mutation of leave balances. No other component writes
// used_days. WithTx returns a ledger whose mutations run inside the caller's
// transaction, so the approval workflow can commit a debit atomically with a
// status change.
//
//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	Ensure(ctx context.Context, employeeID, leaveTypeID string, year, seedDays int) (*LeaveBalance, error)
	Remaining(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error)
	CanDebit(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error)
	Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
	Credit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
	GetForEmployee(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func (s *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: s.repo.WithTx(tx), logger: s.logger}
}

// Ensure lazily creates the balance row seeded from the leave type's current
// entitlement. Idempotent: an existing row is returned untouched.
func (s *ledger) Ensure(ctx context.Context, employeeID, leaveTypeID string, year, seedDays int) (*LeaveBalance, error) {
	b, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return nil, balanceerrors.ErrBalanceNotFound
	}

	fresh := &LeaveBalance{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		LeaveTypeID:    leaveTypeUUID,
		Year:           year,
		TotalAllocated: seedDays,
	}
	if err := s.repo.Insert(ctx, fresh); err != nil {
		s.logger.Error("ensure balance insert failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("balance initialized",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Int("total_allocated", seedDays),
	)

	// Re-read: a concurrent Ensure may have won the insert race.
	return s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
}

func (s *ledger) Remaining(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	b, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, balanceerrors.ErrBalanceNotFound
		}
		return 0, err
	}
	return b.Remaining(), nil
}

func (s *ledger) CanDebit(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	b, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, balanceerrors.ErrBalanceNotFound
		}
		return false, err
	}
	return b.CanDebit(days), nil
}

func (s *ledger) Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	if days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	ok, err := s.repo.Debit(ctx, employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("debit failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Int("days", days),
			zap.Error(err),
		)
		return err
	}
	if !ok {
		// The conditional update rejected: either the row is missing or the
		// remaining allocation no longer covers the debit.
		if _, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return balanceerrors.ErrBalanceNotFound
			}
			return err
		}
		s.logger.Warn("debit rejected by balance guard",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Int("days", days),
		)
		return balanceerrors.ErrInsufficientBalance
	}

	s.logger.Info("balance debited",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Int("days", days),
	)
	return nil
}

func (s *ledger) Credit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	if days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	if err := s.repo.Credit(ctx, employeeID, leaveTypeID, year, days); err != nil {
		s.logger.Error("credit failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Int("days", days),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("balance credited",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Int("days", days),
	)
	return nil
}

func (s *ledger) GetForEmployee(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}
