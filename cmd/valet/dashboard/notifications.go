package dashboard

import (
	"sync"
	"time"
)

// NotificationTimeFormat is the display format of notification timestamps
const NotificationTimeFormat = "15:04:05"

// Notification is an entry of the Feed
type Notification struct {
	ID        int
	Message   string
	Timestamp string
	Time      time.Time
}

// Feed is the notification log of a dashboard session: append, dismiss
// and clear, nothing is persisted. Newest notifications come first.
type Feed struct {
	items  []Notification
	lastID int
	now    func() time.Time
	mux    sync.Mutex
}

// NewFeed creates an empty Feed
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Append stamps and prepends a notification. IDs start at 1 and are
// never reused, even after Clear.
func (f *Feed) Append(message string) Notification {
	f.mux.Lock()
	defer f.mux.Unlock()

	f.lastID++
	now := f.now()
	n := Notification{
		ID:        f.lastID,
		Message:   message,
		Timestamp: now.Local().Format(NotificationTimeFormat),
		Time:      now,
	}
	f.items = append([]Notification{n}, f.items...)
	return n
}

// Dismiss removes the notification id, returns false if absent
func (f *Feed) Dismiss(id int) bool {
	f.mux.Lock()
	defer f.mux.Unlock()

	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the feed
func (f *Feed) Clear() {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.items = nil
}

// Badge is the number of notifications, for the bell icon
func (f *Feed) Badge() int {
	f.mux.Lock()
	defer f.mux.Unlock()
	return len(f.items)
}

// List returns a copy of the notifications, newest first
func (f *Feed) List() []Notification {
	f.mux.Lock()
	defer f.mux.Unlock()

	res := make([]Notification, len(f.items))
	copy(res, f.items)
	return res
}
