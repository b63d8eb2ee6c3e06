package notification

import (
	"context"
	"errors"

	notificationerrors "go-leave/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, employeeID, title, message string) error
	ListMine(ctx context.Context, employeeID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, employeeID, title, message string) error {
	recipient, err := uuid.Parse(employeeID)
	if err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}

	n := &Notification{
		ID:         uuid.New(),
		EmployeeID: recipient,
		Title:      title,
		Message:    message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist notification failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification stored",
		zap.String("notification_id", n.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func (s *service) ListMine(ctx context.Context, employeeID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, notificationerrors.ErrInvalidRecipientID
	}

	notifs, err := s.repo.FindByRecipient(ctx, employeeID, unreadOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(notifs))
	for i := range notifs {
		responses = append(responses, mapToResponse(&notifs[i]))
	}
	return responses, nil
}

func (s *service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	if n.EmployeeID.String() != employeeID {
		return notificationerrors.ErrNotRecipient
	}

	return s.repo.MarkRead(ctx, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, notificationerrors.ErrInvalidRecipientID
	}
	return s.repo.MarkAllRead(ctx, employeeID)
}
