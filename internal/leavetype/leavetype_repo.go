package leavetype

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	var types []LeaveType
	db := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "name = ?", name).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}
