package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, b *LeaveBalance) error
	FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error)
	Credit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Insert creates the row if the (employee, type, year) key is free and is a
// no-op otherwise, so lazy initialization is idempotent under races.
func (r *repository) Insert(ctx context.Context, b *LeaveBalance) error {
	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, total_allocated, used_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, now(), now())
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`
	_, err := r.execer().ExecContext(
		ctx, query,
		b.ID, b.EmployeeID, b.LeaveTypeID, b.Year, b.TotalAllocated,
	)
	return err
}

func (r *repository) FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		First(&b, "year = ?", year).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

// Debit increments used_days only while the allocation still covers it. The
// guard lives in the UPDATE itself so two concurrent approvals cannot both
// succeed past the allocation; the row lock serializes them. Returns false
// when the guard rejected the debit (or the row does not exist).
func (r *repository) Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	query := `
		UPDATE leave_balances
		SET used_days = used_days + $4, updated_at = now()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
			AND used_days + $4 <= total_allocated
	`
	res, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, year, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Credit returns days to the balance, flooring used_days at zero.
func (r *repository) Credit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	query := `
		UPDATE leave_balances
		SET used_days = GREATEST(used_days - $4, 0), updated_at = now()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`
	_, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, year, days)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	db, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return db
}
