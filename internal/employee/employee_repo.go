package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindRoleByID(ctx context.Context, id string) (Role, error)
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

// FindOptions loads the slim projection used by duty-cover selectors.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "employee_number", "role").
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindRoleByID(ctx context.Context, id string) (Role, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("role").
		First(&empl, "id = ?", id).Error
	return empl.Role, err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
