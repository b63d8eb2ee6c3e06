package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error

	// CreateResetToken replaces any outstanding token for the user, so at most
	// one reset token is live per account.
	CreateResetToken(ctx context.Context, token *PasswordResetToken) error
	GetResetToken(ctx context.Context, tokenHash string) (*PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *repository) CreateResetToken(ctx context.Context, token *PasswordResetToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ?", token.UserID).
			Delete(&PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *repository) GetResetToken(ctx context.Context, tokenHash string) (*PasswordResetToken, error) {
	var token PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	return &token, err
}

func (r *repository) MarkResetTokenUsed(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&PasswordResetToken{}).
		Where("id = ?", id).
		Update("used_at", now).Error
}
