package store

import (
	"fmt"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

// Content is the post store. Posts are kept most-recent-first, which is the
// canonical feed order; nothing downstream re-sorts.
type Content struct {
	posts  []*domain.Post
	byID   map[domain.PostID]*domain.Post
	lastID domain.PostID
}

// NewContent creates an empty content store.
func NewContent() *Content {
	return &Content{byID: make(map[domain.PostID]*domain.Post)}
}

// NextID returns the id the next created post receives.
func (c *Content) NextID() domain.PostID {
	return c.lastID + 1
}

// Prepend places p at the head of the post sequence.
func (c *Content) Prepend(p domain.Post) (*domain.Post, error) {
	if _, ok := c.byID[p.ID]; ok {
		return nil, fmt.Errorf("post %d: %w", p.ID, ErrDuplicateID)
	}

	stored := p
	if stored.Likes == nil {
		stored.Likes = domain.NewUserSet()
	}
	if stored.Comments == nil {
		stored.Comments = []domain.Comment{}
	}
	if stored.Tags == nil {
		stored.Tags = []string{}
	}

	c.posts = append([]*domain.Post{&stored}, c.posts...)
	c.byID[stored.ID] = &stored
	if stored.ID > c.lastID {
		c.lastID = stored.ID
	}
	return &stored, nil
}

// Get looks a post up by id.
func (c *Content) Get(id domain.PostID) (*domain.Post, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns posts in canonical order.
func (c *Content) All() []*domain.Post {
	return c.posts
}

// Len returns the number of posts.
func (c *Content) Len() int { return len(c.posts) }

// ToggleLike flips userID's membership in the post's like set and returns the
// new state. ok is false when the post does not exist.
func (c *Content) ToggleLike(postID domain.PostID, userID domain.UserID) (liked bool, ok bool) {
	p, ok := c.byID[postID]
	if !ok {
		return false, false
	}
	if p.Likes.Remove(userID) {
		return false, true
	}
	p.Likes.Add(userID)
	return true, true
}

// AppendComment adds cm at the end of the post's comments.
func (c *Content) AppendComment(postID domain.PostID, cm domain.Comment) bool {
	p, ok := c.byID[postID]
	if !ok {
		return false
	}
	p.Comments = append(p.Comments, cm)
	return true
}
