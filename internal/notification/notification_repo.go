package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByRecipient(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByRecipient(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error) {
	var notifs []Notification
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC")
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	err := q.Find(&notifs).Error
	return notifs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", now).Error
}

func (r *repository) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("employee_id = ? AND read_at IS NULL", employeeID).
		Update("read_at", now)
	return res.RowsAffected, res.Error
}
