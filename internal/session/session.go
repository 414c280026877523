// Package session owns the per-session world: the social graph, the content
// store, the notification log and the logged-in viewer. Every exported method
// takes the session lock, so one event runs to completion before the next.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/feed"
	"github.com/weiawesome/wes-io-live/feed-service/internal/idgen"
	"github.com/weiawesome/wes-io-live/feed-service/internal/store"
)

// SuggestedLimit is how many follow suggestions are offered.
const SuggestedLimit = 3

// Session is the interaction mutator over one in-memory world.
// Operations that reference an unknown user or post are no-ops and report
// Applied=false; they never return an error.
type Session struct {
	mu sync.Mutex

	graph         *store.Graph
	content       *store.Content
	notifications *store.NotificationLog

	commentIDs      *idgen.Sequence
	notificationIDs *idgen.Sequence

	now    func() time.Time
	viewer domain.UserID
}

// New creates an empty session. now defaults to time.Now.
func New(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		graph:           store.NewGraph(),
		content:         store.NewContent(),
		notifications:   store.NewNotificationLog(),
		commentIDs:      idgen.NewSequence(0),
		notificationIDs: idgen.NewSequence(0),
		now:             now,
	}
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// ImportUser registers a seeded user. Follow sets on u are ignored; use
// ImportFollow so both sides stay symmetric.
func (s *Session) ImportUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.graph.Add(u); err != nil {
		return fmt.Errorf("import user: %w", err)
	}
	return nil
}

// ImportFollow records a seeded follow without emitting a notification.
func (s *Session) ImportFollow(actor, target domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Follow(actor, target)
}

// ImportPost places a seeded post at the head of the feed. Comment ids are
// reserved so later comments never reuse them.
func (s *Session) ImportPost(p domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graph.Get(p.AuthorID); !ok {
		return fmt.Errorf("import post %d: author %d: %w", p.ID, p.AuthorID, ErrUserNotFound)
	}
	p.Tags = normalizeTags(p.Tags)
	if _, err := s.content.Prepend(p); err != nil {
		return fmt.Errorf("import post: %w", err)
	}
	for _, c := range p.Comments {
		s.commentIDs.Observe(int64(c.ID))
	}
	return nil
}

// Login makes the user with username the session viewer.
func (s *Session) Login(username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrUsernameRequired
	}
	u, ok := s.graph.ByUsername(username)
	if !ok {
		return domain.User{}, fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	s.viewer = u.ID
	return u.Clone(), nil
}

// Logout clears the viewer.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = 0
}

// SignUp creates an account with the next sequential id and logs it in.
// Username, name and bio are all required.
func (s *Session) SignUp(p domain.Profile) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Username = strings.TrimSpace(p.Username)
	p.Name = strings.TrimSpace(p.Name)
	p.Bio = strings.TrimSpace(p.Bio)

	for _, f := range []struct{ name, value string }{
		{"username", p.Username},
		{"name", p.Name},
		{"bio", p.Bio},
	} {
		if f.value == "" {
			return domain.User{}, fmt.Errorf("%s: %w", f.name, ErrMissingProfileField)
		}
	}
	if _, ok := s.graph.ByUsername(p.Username); ok {
		return domain.User{}, fmt.Errorf("%q: %w", p.Username, ErrUsernameTaken)
	}

	now := s.now()
	u, err := s.graph.Add(domain.User{
		ID:       s.graph.NextID(),
		Username: p.Username,
		Name:     p.Name,
		Bio:      p.Bio,
		Avatar:   domain.DefaultAvatar,
		JoinDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("sign up: %w", err)
	}
	s.viewer = u.ID
	return u.Clone(), nil
}

// Viewer returns the logged-in user.
func (s *Session) Viewer() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.graph.Get(s.viewer)
	if !ok {
		return domain.User{}, false
	}
	return u.Clone(), true
}

// User returns a copy of the user with id.
func (s *Session) User(id domain.UserID) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.graph.Get(id)
	if !ok {
		return domain.User{}, false
	}
	return u.Clone(), true
}

// Users returns copies of all users in id order.
func (s *Session) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, 0, s.graph.Len())
	for _, u := range s.graph.All() {
		out = append(out, u.Clone())
	}
	return out
}

// Follow makes actor follow target and notifies target.
func (s *Session) Follow(actor, target domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow(actor, target)
}

// Unfollow removes actor -> target. No notification is emitted.
func (s *Session) Unfollow(actor, target domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Unfollow(actor, target)
}

// ToggleFollow follows target if actor does not follow it yet, otherwise unfollows.
func (s *Session) ToggleFollow(actor, target domain.UserID) domain.FollowResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph.IsFollowing(actor, target) {
		if !s.graph.Unfollow(actor, target) {
			return domain.FollowResult{}
		}
		return domain.FollowResult{Applied: true, Following: false}
	}
	if !s.follow(actor, target) {
		return domain.FollowResult{}
	}
	return domain.FollowResult{Applied: true, Following: true}
}

func (s *Session) follow(actor, target domain.UserID) bool {
	if !s.graph.Follow(actor, target) {
		return false
	}
	a, _ := s.graph.Get(actor)
	s.notify(target, domain.NotificationFollow, a.Username, nil)
	return true
}

// SuggestedUsers returns up to n users the viewer does not follow yet.
func (s *Session) SuggestedUsers(viewer domain.UserID, n int) []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.graph.Suggested(viewer, n)
	out := make([]domain.User, 0, len(found))
	for _, u := range found {
		out = append(out, u.Clone())
	}
	return out
}

// CreatePost prepends a new post by author. Tags are trimmed, blank ones
// dropped and duplicates removed. applied is false when author is unknown.
func (s *Session) CreatePost(author domain.UserID, content string, tags []string, image *string) (post domain.Post, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, false, ErrEmptyContent
	}
	if _, ok := s.graph.Get(author); !ok {
		return domain.Post{}, false, nil
	}

	var img *string
	if image != nil {
		if v := strings.TrimSpace(*image); v != "" {
			img = &v
		}
	}

	p, err := s.content.Prepend(domain.Post{
		ID:        s.content.NextID(),
		AuthorID:  author,
		Content:   content,
		Image:     img,
		CreatedAt: s.now(),
		Tags:      normalizeTags(tags),
	})
	if err != nil {
		return domain.Post{}, false, fmt.Errorf("create post: %w", err)
	}
	return p.Clone(), true, nil
}

// ToggleLike flips user's like on post. Liking someone else's post notifies
// its author; unliking and self-likes never notify.
func (s *Session) ToggleLike(postID domain.PostID, user domain.UserID) domain.LikeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	liker, ok := s.graph.Get(user)
	if !ok {
		return domain.LikeResult{}
	}
	liked, ok := s.content.ToggleLike(postID, user)
	if !ok {
		return domain.LikeResult{}
	}

	p, _ := s.content.Get(postID)
	if liked && p.AuthorID != user {
		id := postID
		s.notify(p.AuthorID, domain.NotificationLike, liker.Username, &id)
	}
	return domain.LikeResult{Applied: true, Liked: liked, LikesCount: p.Likes.Len()}
}

// AddComment appends a comment to post. Commenting on someone else's post
// notifies its author.
func (s *Session) AddComment(postID domain.PostID, user domain.UserID, content string) (domain.CommentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.CommentResult{}, ErrEmptyContent
	}
	author, ok := s.graph.Get(user)
	if !ok {
		return domain.CommentResult{}, nil
	}
	p, ok := s.content.Get(postID)
	if !ok {
		return domain.CommentResult{}, nil
	}

	c := domain.Comment{
		ID:        domain.CommentID(s.commentIDs.Next()),
		AuthorID:  user,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.content.AppendComment(postID, c)

	if p.AuthorID != user {
		id := postID
		s.notify(p.AuthorID, domain.NotificationComment, author.Username, &id)
	}
	return domain.CommentResult{Applied: true, Comment: &c}, nil
}

// Post returns a copy of the post with id.
func (s *Session) Post(id domain.PostID) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.content.Get(id)
	if !ok {
		return domain.Post{}, false
	}
	return p.Clone(), true
}

// QueryFeed returns copies of the posts visible to viewer under view and
// search, in canonical order. A zero or unknown viewer disables author
// filtering.
func (s *Session) QueryFeed(viewer domain.UserID, view domain.View, search string) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := domain.FeedQuery{View: view, Search: search}
	if u, ok := s.graph.Get(viewer); ok {
		q.Viewer = u
	}

	visible := feed.Filter(s.content.All(), q)
	out := make([]domain.Post, 0, len(visible))
	for _, p := range visible {
		out = append(out, p.Clone())
	}
	return out
}

// TrendingTags returns the top tags across every post.
func (s *Session) TrendingTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.TrendingTags(s.content.All())
}

// TagCounts returns at most limit tags with their post counts.
func (s *Session) TagCounts(limit int) []domain.TagCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.Trending(s.content.All(), limit)
}

// NotificationsFor returns user's notifications, most recent first.
func (s *Session) NotificationsFor(user domain.UserID) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications.For(user)
}

// UnreadCount returns how many of user's notifications are unread.
func (s *Session) UnreadCount(user domain.UserID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications.UnreadCount(user)
}

// MarkNotificationRead flags one of user's notifications as read.
func (s *Session) MarkNotificationRead(user domain.UserID, id domain.NotificationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications.MarkRead(user, id)
}

// notify must be called with s.mu held.
func (s *Session) notify(recipient domain.UserID, kind domain.NotificationKind, from string, postID *domain.PostID) {
	s.notifications.Append(domain.Notification{
		ID:           domain.NotificationID(s.notificationIDs.Next()),
		RecipientID:  recipient,
		Kind:         kind,
		FromUsername: from,
		PostID:       postID,
		CreatedAt:    s.now(),
	})
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
