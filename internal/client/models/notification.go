package models

import "time"

// Notification is an in-app notification. Fetching these is best-effort;
// a failed fetch never blocks a page.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
