package application

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPendingHOD = "PENDING_HOD"
	StatusPendingPS  = "PENDING_PS"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusCancelled  = "CANCELLED"
)

// LeaveApplication carries the full paper form: leave period, contact and
// salary instructions while away, duty handover, and one block of decision
// fields per approval stage.
type LeaveApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_applications_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	Subject       string    `gorm:"type:varchar(200);not null"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_applications_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_applications_employee_dates"`
	DaysRequested int       `gorm:"type:int;not null"`

	LastLeaveFrom *time.Time `gorm:"type:date"`
	LastLeaveTo   *time.Time `gorm:"type:date"`

	ContactInfo             string  `gorm:"type:text;not null"`
	SalaryPaymentPreference string  `gorm:"type:varchar(30);not null"`
	SalaryPaymentAddress    *string `gorm:"type:text"`
	PermissionNoteCountry   *string `gorm:"type:varchar(100)"`

	DutyCoverID          *uuid.UUID `gorm:"type:uuid;index:idx_applications_duty_cover"`
	PersonHandlingDuties *string    `gorm:"type:varchar(200)"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING_HOD';index:idx_applications_status"`

	HODApproved  *bool      `gorm:"column:hod_approved"`
	HODDecidedBy *uuid.UUID `gorm:"column:hod_decided_by;type:uuid"`
	HODDecidedAt *time.Time `gorm:"column:hod_decided_at"`
	HODComments  *string    `gorm:"column:hod_comments;type:text"`

	PSApproved  *bool      `gorm:"column:ps_approved"`
	PSDecidedBy *uuid.UUID `gorm:"column:ps_decided_by;type:uuid"`
	PSDecidedAt *time.Time `gorm:"column:ps_decided_at"`
	PSComments  *string    `gorm:"column:ps_comments;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_applications_deleted_at"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// IsPending reports whether the application still awaits a decision.
func (a LeaveApplication) IsPending() bool {
	return a.Status == StatusPendingHOD || a.Status == StatusPendingPS
}

func (a LeaveApplication) Range() DateRange {
	return DateRange{Start: a.StartDate, End: a.EndDate}
}
