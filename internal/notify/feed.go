// Package notify keeps the short feed of recent zone and project events.
package notify

import (
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
)

// Capacity is the number of notifications the feed retains.
const Capacity = 5

// Feed is a bounded FIFO of notifications, newest first.
type Feed struct {
	items  []domain.Notification
	nextID int64
}

func NewFeed() *Feed {
	return &Feed{nextID: 1}
}

// Push records message at ts and drops the oldest entry beyond Capacity.
func (f *Feed) Push(message string, ts time.Time) domain.Notification {
	n := domain.Notification{ID: f.nextID, Message: message, Timestamp: ts}
	f.nextID++
	f.items = append([]domain.Notification{n}, f.items...)
	if len(f.items) > Capacity {
		f.items = f.items[:Capacity]
	}
	return n
}

// Items returns the retained notifications, newest first.
func (f *Feed) Items() []domain.Notification {
	return append([]domain.Notification(nil), f.items...)
}

func (f *Feed) Len() int { return len(f.items) }
