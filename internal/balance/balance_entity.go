package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is the per (employee, leave type, year) allocation record.
// Rows are never deleted; the next year gets a fresh row.
type LeaveBalance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_type_year"`
	LeaveTypeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_type_year"`
	Year           int       `gorm:"type:int;not null;uniqueIndex:uq_balance_employee_type_year"`
	TotalAllocated int       `gorm:"type:int;not null"`
	UsedDays       int       `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Remaining() int {
	return b.TotalAllocated - b.UsedDays
}

func (b LeaveBalance) CanDebit(days int) bool {
	return days > 0 && b.Remaining() >= days
}
