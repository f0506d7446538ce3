package domain

import "time"

// Notification is a short message shown after a successful mutation.
type Notification struct {
	ID        int64
	Message   string
	Timestamp time.Time
}
