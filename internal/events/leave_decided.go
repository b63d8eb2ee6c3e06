package events

import "time"

const LeaveDecidedTopic = "leave.application.decided.v1"

type LeaveDecidedEvent struct {
	EventType     string    `json:"event_type"`
	ApplicationID string    `json:"application_id"`
	EmployeeID    string    `json:"employee_id"`
	DeciderID     string    `json:"decider_id"`
	Stage         string    `json:"stage"`
	Action        string    `json:"action"`
	Status        string    `json:"status"`
	Comments      string    `json:"comments,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
