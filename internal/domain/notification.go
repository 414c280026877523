package domain

import "time"

// NotificationKind names the interaction a notification records.
type NotificationKind string

const (
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
	NotificationFollow  NotificationKind = "follow"
)

// Notification records an interaction directed at RecipientID.
// FromUsername is denormalized; PostID is nil for follow events.
type Notification struct {
	ID           NotificationID   `json:"id"`
	RecipientID  UserID           `json:"user_id"`
	Kind         NotificationKind `json:"type"`
	FromUsername string           `json:"from_user"`
	PostID       *PostID          `json:"post_id"`
	CreatedAt    time.Time        `json:"timestamp"`
	Read         bool             `json:"read"`
}

// Clone returns a copy that shares no memory with n.
func (n *Notification) Clone() Notification {
	c := *n
	if n.PostID != nil {
		id := *n.PostID
		c.PostID = &id
	}
	return c
}

// NotificationsResponse is the viewer's notification list.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
