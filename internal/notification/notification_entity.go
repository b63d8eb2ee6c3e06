package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
