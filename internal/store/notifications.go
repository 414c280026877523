package store

import "github.com/weiawesome/wes-io-live/feed-service/internal/domain"

// NotificationLog is append-only; entries are never removed, only marked read.
type NotificationLog struct {
	entries []domain.Notification
}

// NewNotificationLog creates an empty log.
func NewNotificationLog() *NotificationLog {
	return &NotificationLog{}
}

// Append adds n to the log.
func (l *NotificationLog) Append(n domain.Notification) {
	l.entries = append(l.entries, n)
}

// Len returns the total number of entries.
func (l *NotificationLog) Len() int { return len(l.entries) }

// For returns deep copies of recipient's notifications, most recent first.
func (l *NotificationLog) For(recipient domain.UserID) []domain.Notification {
	out := []domain.Notification{}
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].RecipientID == recipient {
			out = append(out, l.entries[i].Clone())
		}
	}
	return out
}

// MarkRead flags a notification owned by recipient as read. It returns false
// when no such notification exists.
func (l *NotificationLog) MarkRead(recipient domain.UserID, id domain.NotificationID) bool {
	for i := range l.entries {
		if l.entries[i].ID == id && l.entries[i].RecipientID == recipient {
			l.entries[i].Read = true
			return true
		}
	}
	return false
}

// UnreadCount returns how many of recipient's notifications are unread.
func (l *NotificationLog) UnreadCount(recipient domain.UserID) int {
	n := 0
	for _, e := range l.entries {
		if e.RecipientID == recipient && !e.Read {
			n++
		}
	}
	return n
}
