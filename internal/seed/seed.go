// Package seed loads the demo world every new session starts from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
	"github.com/weiawesome/wes-io-live/feed-service/internal/session"
)

//go:embed demo.yaml
var demoYAML []byte

var ErrInvalidSeed = errors.New("invalid seed")

// World is the decoded seed document.
type World struct {
	Users []UserSeed `yaml:"users"`
	Posts []PostSeed `yaml:"posts"`
}

type UserSeed struct {
	ID        int64   `yaml:"id"`
	Username  string  `yaml:"username"`
	Name      string  `yaml:"name"`
	Bio       string  `yaml:"bio"`
	Avatar    string  `yaml:"avatar"`
	JoinDate  string  `yaml:"join_date"`
	Following []int64 `yaml:"following"`
}

type PostSeed struct {
	ID        int64         `yaml:"id"`
	UserID    int64         `yaml:"user_id"`
	Content   string        `yaml:"content"`
	Image     *string       `yaml:"image"`
	Timestamp string        `yaml:"timestamp"`
	Likes     []int64       `yaml:"likes"`
	Tags      []string      `yaml:"tags"`
	Comments  []CommentSeed `yaml:"comments"`
}

type CommentSeed struct {
	ID        int64  `yaml:"id"`
	UserID    int64  `yaml:"user_id"`
	Content   string `yaml:"content"`
	Timestamp string `yaml:"timestamp"`
}

// Demo returns the embedded demo world.
func Demo() (*World, error) {
	return Parse(demoYAML)
}

// LoadFile reads a seed document from path.
func LoadFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Load returns the world at path, or the embedded demo when path is empty.
func Load(path string) (*World, error) {
	if path == "" {
		return Demo()
	}
	return LoadFile(path)
}

// Parse decodes a seed document.
func Parse(data []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return &w, nil
}

// Apply loads the world into s. Posts are inserted oldest first so the
// document order ends up as the feed order.
//
// User ids must run 1..n in document order, since sign-up assigns n+1.
// Every like and comment must reference a seeded user.
func (w *World) Apply(s *session.Session) error {
	known := make(map[int64]struct{}, len(w.Users))
	for i, u := range w.Users {
		if u.ID != int64(i+1) {
			return fmt.Errorf("%w: user %q has id %d, want %d", ErrInvalidSeed, u.Username, u.ID, i+1)
		}
		known[u.ID] = struct{}{}

		joined, err := time.Parse(time.DateOnly, u.JoinDate)
		if err != nil {
			return fmt.Errorf("%w: user %d join_date: %v", ErrInvalidSeed, u.ID, err)
		}
		if err := s.ImportUser(domain.User{
			ID:       domain.UserID(u.ID),
			Username: u.Username,
			Name:     u.Name,
			Bio:      u.Bio,
			Avatar:   u.Avatar,
			JoinDate: joined,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}

	for _, u := range w.Users {
		for _, target := range u.Following {
			if !s.ImportFollow(domain.UserID(u.ID), domain.UserID(target)) {
				return fmt.Errorf("%w: user %d cannot follow %d", ErrInvalidSeed, u.ID, target)
			}
		}
	}

	for _, p := range w.Posts {
		if err := p.checkUsers(known); err != nil {
			return err
		}
	}

	for i := len(w.Posts) - 1; i >= 0; i-- {
		p, err := w.Posts[i].toDomain()
		if err != nil {
			return err
		}
		if err := s.ImportPost(p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}
	return nil
}

// Factory returns a session.Factory that builds sessions pre-loaded with w.
func (w *World) Factory(now func() time.Time) session.Factory {
	return func() (*session.Session, error) {
		s := session.New(now)
		if err := w.Apply(s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

func (p PostSeed) checkUsers(known map[int64]struct{}) error {
	for _, id := range p.Likes {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: post %d liked by unknown user %d", ErrInvalidSeed, p.ID, id)
		}
	}
	for _, c := range p.Comments {
		if _, ok := known[c.UserID]; !ok {
			return fmt.Errorf("%w: comment %d by unknown user %d", ErrInvalidSeed, c.ID, c.UserID)
		}
	}
	return nil
}

func (p PostSeed) toDomain() (domain.Post, error) {
	created, err := time.Parse(time.RFC3339, p.Timestamp)
	if err != nil {
		return domain.Post{}, fmt.Errorf("%w: post %d timestamp: %v", ErrInvalidSeed, p.ID, err)
	}

	likes := domain.NewUserSet()
	for _, id := range p.Likes {
		likes.Add(domain.UserID(id))
	}

	comments := make([]domain.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		at, err := time.Parse(time.RFC3339, c.Timestamp)
		if err != nil {
			return domain.Post{}, fmt.Errorf("%w: comment %d timestamp: %v", ErrInvalidSeed, c.ID, err)
		}
		comments = append(comments, domain.Comment{
			ID:        domain.CommentID(c.ID),
			AuthorID:  domain.UserID(c.UserID),
			Content:   c.Content,
			CreatedAt: at,
		})
	}

	return domain.Post{
		ID:        domain.PostID(p.ID),
		AuthorID:  domain.UserID(p.UserID),
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: created,
		Likes:     likes,
		Comments:  comments,
		Tags:      p.Tags,
	}, nil
}
