package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_type_name"`
	Description     string    `gorm:"type:text"`
	MaxDays         int       `gorm:"type:int;not null"`
	ExcludeWeekends bool      `gorm:"not null;default:true"`
	IsActive        bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_types_deleted_at"`
}
