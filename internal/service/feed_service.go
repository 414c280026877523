package service

import (
	"context"
	"time"

	"github.com/weiawesome/wes-io-live/feed-service/internal/audit"
	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/feed"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
	pkglog "github.com/weiawesome/wes-io-live/feed-service/pkg/log"
)

// feedService implements FeedService over the session registry.
type feedService struct {
	sessions *session.Manager
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(sessions *session.Manager) FeedService {
	return &feedService{sessions: sessions}
}

// OpenSession builds a freshly seeded session.
func (s *feedService) OpenSession(ctx context.Context) (*domain.SessionInfo, error) {
	l := pkglog.Ctx(ctx)

	id, _, err := s.sessions.Open()
	if err != nil {
		l.Warn().Err(err).Msg("failed to open session")
		return nil, err
	}
	info, err := s.sessions.Info(id)
	if err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionSessionOpen, "", id, "session opened")
	return &info, nil
}

// CloseSession discards a session and everything in it.
func (s *feedService) CloseSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Close(sessionID); err != nil {
		return err
	}
	audit.LogWithDetail(ctx, audit.ActionSessionClose, "", sessionID, "session closed")
	return nil
}

// Describe returns the session's metadata without refreshing its idle timer.
func (s *feedService) Describe(ctx context.Context, sessionID string) (*domain.SessionInfo, error) {
	info, err := s.sessions.Info(sessionID)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Login makes username the session viewer.
func (s *feedService) Login(ctx context.Context, sessionID, username string) (*domain.UserResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	u, err := sess.Login(username)
	if err != nil {
		audit.LogWithDetail(ctx, audit.ActionLoginFailed, "", username, "login failed")
		return nil, err
	}

	audit.Log(ctx, audit.ActionLogin, u.Username, "viewer logged in")
	resp := u.ToResponse()
	return &resp, nil
}

// SignUp creates an account in the session and logs it in.
func (s *feedService) SignUp(ctx context.Context, sessionID string, req *domain.Profile) (*domain.UserResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	u, err := sess.SignUp(*req)
	if err != nil {
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionSignUp, u.Username, int64(u.ID), "account created")
	resp := u.ToResponse()
	return &resp, nil
}

// Logout clears the session viewer. Logging out twice is not an error.
func (s *feedService) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	u, ok := sess.Viewer()
	sess.Logout()
	if ok {
		audit.Log(ctx, audit.ActionLogout, u.Username, "viewer logged out")
	}
	return nil
}

// Me returns the session viewer.
func (s *feedService) Me(ctx context.Context, sessionID string) (*domain.UserResponse, error) {
	_, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse()
	return &resp, nil
}

// GetUser returns any user in the session.
func (s *feedService) GetUser(ctx context.Context, sessionID string, userID domain.UserID) (*domain.UserResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	u, ok := sess.User(userID)
	if !ok {
		return nil, session.ErrUserNotFound
	}
	resp := u.ToResponse()
	return &resp, nil
}

// SuggestedUsers returns users the viewer may want to follow.
func (s *feedService) SuggestedUsers(ctx context.Context, sessionID string) ([]domain.UserResponse, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	users := sess.SuggestedUsers(u.ID, session.SuggestedLimit)
	out := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

// ToggleFollow follows or unfollows target as the viewer.
func (s *feedService) ToggleFollow(ctx context.Context, sessionID string, target domain.UserID) (*domain.FollowResult, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	res := sess.ToggleFollow(u.ID, target)
	if res.Applied {
		action, msg := audit.ActionUnfollow, "user unfollowed"
		if res.Following {
			action, msg = audit.ActionFollow, "user followed"
		}
		audit.LogTarget(ctx, action, u.Username, int64(target), msg)
	} else {
		l := pkglog.Ctx(ctx)
		l.Debug().Int64("target_id", int64(target)).Msg("follow toggle was a no-op")
	}
	return &res, nil
}

// Feed returns the posts visible in view, rendered for the viewer.
func (s *feedService) Feed(ctx context.Context, sessionID string, view domain.View, search string) ([]domain.PostResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var viewer domain.UserID
	if u, ok := sess.Viewer(); ok {
		viewer = u.ID
	}

	posts := sess.QueryFeed(viewer, view, search)
	now := sess.Now()
	out := make([]domain.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, renderPost(&posts[i], viewer, now))
	}
	return out, nil
}

// GetPost returns a single post rendered for the viewer.
func (s *feedService) GetPost(ctx context.Context, sessionID string, postID domain.PostID) (*domain.PostResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	p, ok := sess.Post(postID)
	if !ok {
		return nil, session.ErrPostNotFound
	}

	var viewer domain.UserID
	if u, ok := sess.Viewer(); ok {
		viewer = u.ID
	}
	resp := renderPost(&p, viewer, sess.Now())
	return &resp, nil
}

// CreatePost publishes a post as the viewer.
func (s *feedService) CreatePost(ctx context.Context, sessionID string, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	p, applied, err := sess.CreatePost(u.ID, req.Content, req.Tags, req.Image)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrNotLoggedIn
	}

	audit.LogTarget(ctx, audit.ActionPostCreate, u.Username, int64(p.ID), "post created")
	resp := renderPost(&p, u.ID, sess.Now())
	return &resp, nil
}

// ToggleLike likes or unlikes a post as the viewer.
func (s *feedService) ToggleLike(ctx context.Context, sessionID string, postID domain.PostID) (*domain.LikeResult, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	res := sess.ToggleLike(postID, u.ID)
	if res.Applied {
		action, msg := audit.ActionUnlike, "post unliked"
		if res.Liked {
			action, msg = audit.ActionLike, "post liked"
		}
		audit.LogTarget(ctx, action, u.Username, int64(postID), msg)
	}
	return &res, nil
}

// AddComment comments on a post as the viewer.
func (s *feedService) AddComment(ctx context.Context, sessionID string, postID domain.PostID, req *domain.AddCommentRequest) (*domain.CommentResult, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	res, err := sess.AddComment(postID, u.ID, req.Content)
	if err != nil {
		return nil, err
	}
	if res.Applied {
		audit.LogTarget(ctx, audit.ActionComment, u.Username, int64(postID), "comment added")
	}
	return &res, nil
}

// Trending returns the top tags with their post counts.
func (s *feedService) Trending(ctx context.Context, sessionID string) ([]domain.TagCount, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.TagCounts(feed.TrendingLimit), nil
}

// Notifications returns the viewer's notifications, most recent first.
func (s *feedService) Notifications(ctx context.Context, sessionID string) (*domain.NotificationsResponse, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationsResponse{
		Notifications: sess.NotificationsFor(u.ID),
		UnreadCount:   sess.UnreadCount(u.ID),
	}, nil
}

// MarkNotificationRead flags one of the viewer's notifications as read and
// reports whether it existed.
func (s *feedService) MarkNotificationRead(ctx context.Context, sessionID string, id domain.NotificationID) (bool, error) {
	sess, u, err := s.viewer(sessionID)
	if err != nil {
		return false, err
	}

	applied := sess.MarkNotificationRead(u.ID, id)
	if applied {
		audit.LogTarget(ctx, audit.ActionNotificationRead, u.Username, int64(id), "notification read")
	}
	return applied, nil
}

func (s *feedService) viewer(sessionID string) (*session.Session, domain.User, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, domain.User{}, err
	}
	u, ok := sess.Viewer()
	if !ok {
		return nil, domain.User{}, ErrNotLoggedIn
	}
	return sess, u, nil
}

func renderPost(p *domain.Post, viewer domain.UserID, now time.Time) domain.PostResponse {
	comments := make([]domain.CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, domain.CommentResponse{
			Comment: c,
			Age:     feed.FormatSince(c.CreatedAt, now),
		})
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.PostResponse{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
		Age:           feed.FormatSince(p.CreatedAt, now),
		Likes:         p.Likes.Sorted(),
		LikesCount:    p.Likes.Len(),
		Liked:         viewer != 0 && p.Likes.Has(viewer),
		Comments:      comments,
		CommentsCount: len(p.Comments),
		Tags:          tags,
	}
}
