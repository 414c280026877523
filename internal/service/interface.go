package service

import (
	"context"
	"errors"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

var ErrNotLoggedIn = errors.New("not logged in")

// FeedService is the session-aware façade the HTTP handler talks to.
// Every call names the session it acts on; calls that act as the viewer
// return ErrNotLoggedIn until Login or SignUp succeeds.
type FeedService interface {
	OpenSession(ctx context.Context) (*domain.SessionInfo, error)
	CloseSession(ctx context.Context, sessionID string) error
	Describe(ctx context.Context, sessionID string) (*domain.SessionInfo, error)

	Login(ctx context.Context, sessionID, username string) (*domain.UserResponse, error)
	SignUp(ctx context.Context, sessionID string, req *domain.Profile) (*domain.UserResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sessionID string) (*domain.UserResponse, error)

	GetUser(ctx context.Context, sessionID string, userID domain.UserID) (*domain.UserResponse, error)
	SuggestedUsers(ctx context.Context, sessionID string) ([]domain.UserResponse, error)
	ToggleFollow(ctx context.Context, sessionID string, target domain.UserID) (*domain.FollowResult, error)

	// Feed is available without a viewer; it is then unfiltered by author.
	Feed(ctx context.Context, sessionID string, view domain.View, search string) ([]domain.PostResponse, error)
	GetPost(ctx context.Context, sessionID string, postID domain.PostID) (*domain.PostResponse, error)
	CreatePost(ctx context.Context, sessionID string, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	ToggleLike(ctx context.Context, sessionID string, postID domain.PostID) (*domain.LikeResult, error)
	AddComment(ctx context.Context, sessionID string, postID domain.PostID, req *domain.AddCommentRequest) (*domain.CommentResult, error)
	Trending(ctx context.Context, sessionID string) ([]domain.TagCount, error)

	Notifications(ctx context.Context, sessionID string) (*domain.NotificationsResponse, error)
	MarkNotificationRead(ctx context.Context, sessionID string, id domain.NotificationID) (bool, error)
}
