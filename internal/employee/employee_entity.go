package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index:idx_employees_department"`

	EmployeeNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string `gorm:"type:varchar(200);not null"`
	Email          string `gorm:"type:varchar(200);not null;uniqueIndex:uq_employee_email"`
	Phone          string `gorm:"type:varchar(30)"`
	Role           Role   `gorm:"type:varchar(30);not null;default:'staff'"`

	HireDate time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
