package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_user_employee"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password   string     `gorm:"type:varchar(255);not null"`
	IsActive   bool       `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

// PasswordResetToken stores only the hash of the emailed token. Rows are
// ephemeral: requesting a new token deletes the previous ones.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_reset_tokens_user"`
	TokenHash string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_reset_token_hash"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}
