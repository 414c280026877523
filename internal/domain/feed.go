package domain

import (
	"errors"
	"fmt"
)

// View is the screen a feed is requested for.
type View string

const (
	ViewHome          View = "home"
	ViewExplore       View = "explore"
	ViewProfile       View = "profile"
	ViewNotifications View = "notifications"
	ViewSettings      View = "settings"
)

// ErrInvalidView is returned by ParseView for names outside the known views.
var ErrInvalidView = errors.New("invalid view")

// ParseView validates a view name. An empty string selects home.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case "":
		return ViewHome, nil
	case ViewHome, ViewExplore, ViewProfile, ViewNotifications, ViewSettings:
		return v, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidView)
	}
}

// FeedQuery is the viewing context a feed is derived from.
// A nil Viewer disables author filtering.
type FeedQuery struct {
	Viewer *User
	View   View
	Search string
}

// TagCount is a tag with the number of posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// LikeResult reports the outcome of a like toggle.
// Applied is false when the post or user did not resolve.
type LikeResult struct {
	Applied    bool `json:"applied"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// CommentResult reports the outcome of adding a comment.
type CommentResult struct {
	Applied bool     `json:"applied"`
	Comment *Comment `json:"comment,omitempty"`
}

// FollowResult reports the outcome of a follow toggle.
type FollowResult struct {
	Applied   bool `json:"applied"`
	Following bool `json:"following"`
}

// SessionInfo describes an open session.
type SessionInfo struct {
	ID         string `json:"session_id"`
	Username   string `json:"username,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	LastSeenAt int64  `json:"last_seen_at"`
}
