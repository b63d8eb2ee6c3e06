package notification

import "time"

type NotificationResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func mapToResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Message:   n.Message,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
