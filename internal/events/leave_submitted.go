package events

import "time"

const LeaveSubmittedTopic = "leave.application.submitted.v1"

type LeaveSubmittedEvent struct {
	EventType     string    `json:"event_type"`
	ApplicationID string    `json:"application_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeID   string    `json:"leave_type_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	DaysRequested int       `json:"days_requested"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
