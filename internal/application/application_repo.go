package application

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *LeaveApplication) error
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveApplication, error)
	UpdateDecision(ctx context.Context, a *LeaveApplication, fromStatus string) (bool, error)
	ListBlockingRanges(ctx context.Context, employeeID string, statuses []string) ([]DateRange, error)
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

func (r *repository) Create(ctx context.Context, a *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var a LeaveApplication
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

// UpdateDecision writes the status and the per-stage decision fields. Raw SQL
// through the execer so a caller's transaction can commit the transition
// atomically with a ledger debit. The fromStatus guard lives in the UPDATE
// itself so a transition decided against a stale read touches no row; returns
// false when the guard rejected the write.
func (r *repository) UpdateDecision(ctx context.Context, a *LeaveApplication, fromStatus string) (bool, error) {
	query := `
UPDATE leave_applications
SET
	status = $2,
	hod_approved = $3,
	hod_decided_by = $4,
	hod_decided_at = $5,
	hod_comments = $6,
	ps_approved = $7,
	ps_decided_by = $8,
	ps_decided_at = $9,
	ps_comments = $10,
	updated_at = NOW()
WHERE id = $1 AND status = $11
`

	exec := r.execer()
	res, err := exec.ExecContext(
		ctx, query,
		a.ID, a.Status,
		a.HODApproved, a.HODDecidedBy, a.HODDecidedAt, a.HODComments,
		a.PSApproved, a.PSDecidedBy, a.PSDecidedAt, a.PSComments,
		fromStatus,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListBlockingRanges returns the date spans of this employee's applications in
// the given statuses. Callers run the overlap check in memory so the inclusive
// share-a-day semantics live in one place.
func (r *repository) ListBlockingRanges(ctx context.Context, employeeID string, statuses []string) ([]DateRange, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Select("start_date", "end_date").
		Where("employee_id = ?", employeeID).
		Where("status IN ?", statuses).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]DateRange, len(apps))
	for i, a := range apps {
		ranges[i] = a.Range()
	}
	return ranges, nil
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
