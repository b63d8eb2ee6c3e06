package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-leave/internal/application"
	"go-leave/internal/events"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecided notifies the applicant after each approval stage.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title, message := decisionNotification(event)
		if err := notificationService.Notify(ctx, event.EmployeeID, title, message); err != nil {
			log.Error("store decided notification failed",
				zap.String("application_id", event.ApplicationID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("applicant notified of decision",
			zap.String("application_id", event.ApplicationID),
			zap.String("status", event.Status),
		)
	}
}

func decisionNotification(event events.LeaveDecidedEvent) (string, string) {
	switch event.Status {
	case application.StatusApproved:
		return "Leave application approved",
			"Your leave application received final approval. Your balance has been updated."
	case application.StatusRejected:
		message := "Your leave application was rejected."
		if event.Comments != "" {
			message = fmt.Sprintf("%s Reason: %s", message, event.Comments)
		}
		return "Leave application rejected", message
	default:
		return "Leave application update",
			fmt.Sprintf("Your leave application moved to %s.", event.Status)
	}
}
