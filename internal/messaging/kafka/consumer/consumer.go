package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-leave/internal/events"
	"go-leave/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveSubmitted stores a confirmation notification for the applicant
// whenever a new application lands in the approval queue.
func ConsumeLeaveSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_submitted")
	log.Info("leave submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave submitted consumer stopped")
				return
			}
			log.Error("fetch leave submitted message failed", zap.Error(err))
			continue
		}

		var event events.LeaveSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := fmt.Sprintf(
			"Your leave application for %s to %s (%d working days) was received and is awaiting approval.",
			event.StartDate, event.EndDate, event.DaysRequested,
		)
		if err := notificationService.Notify(ctx, event.EmployeeID, "Leave application received", message); err != nil {
			log.Error("store submitted notification failed",
				zap.String("application_id", event.ApplicationID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave submitted message failed", zap.Error(err))
			continue
		}

		log.Info("applicant notified of submission",
			zap.String("application_id", event.ApplicationID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
