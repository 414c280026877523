package store

import (
	"fmt"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

// Graph is the social graph store: users plus their mutual follow sets.
type Graph struct {
	users      []*domain.User
	byID       map[domain.UserID]*domain.User
	byUsername map[string]*domain.User
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byID:       make(map[domain.UserID]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

// NextID returns the id the next signed-up user receives (count+1).
func (g *Graph) NextID() domain.UserID {
	return domain.UserID(len(g.users) + 1)
}

// Add registers a user. Follow sets on u are ignored; relations are created
// through Follow so both sides stay symmetric.
func (g *Graph) Add(u domain.User) (*domain.User, error) {
	if _, ok := g.byID[u.ID]; ok {
		return nil, fmt.Errorf("user %d: %w", u.ID, ErrDuplicateID)
	}
	if _, ok := g.byUsername[u.Username]; ok {
		return nil, fmt.Errorf("user %q: %w", u.Username, ErrUsernameTaken)
	}

	stored := u
	stored.Followers = domain.NewUserSet()
	stored.Following = domain.NewUserSet()

	g.users = append(g.users, &stored)
	g.byID[stored.ID] = &stored
	g.byUsername[stored.Username] = &stored
	return &stored, nil
}

// Get looks a user up by id.
func (g *Graph) Get(id domain.UserID) (*domain.User, bool) {
	u, ok := g.byID[id]
	return u, ok
}

// ByUsername looks a user up by exact username.
func (g *Graph) ByUsername(username string) (*domain.User, bool) {
	u, ok := g.byUsername[username]
	return u, ok
}

// All returns users in registration order.
func (g *Graph) All() []*domain.User {
	return g.users
}

// Len returns the number of users.
func (g *Graph) Len() int { return len(g.users) }

// IsFollowing reports whether actor follows target.
func (g *Graph) IsFollowing(actor, target domain.UserID) bool {
	u, ok := g.byID[actor]
	return ok && u.Following.Has(target)
}

// Follow records actor -> target on both sides. It returns false without
// mutating anything when actor == target, either id is unknown, or the
// relation already exists.
func (g *Graph) Follow(actor, target domain.UserID) bool {
	a, t, ok := g.pair(actor, target)
	if !ok || a.Following.Has(target) {
		return false
	}
	a.Following.Add(target)
	t.Followers.Add(actor)
	return true
}

// Unfollow removes actor -> target on both sides. Same no-op rules as Follow.
func (g *Graph) Unfollow(actor, target domain.UserID) bool {
	a, t, ok := g.pair(actor, target)
	if !ok || !a.Following.Has(target) {
		return false
	}
	a.Following.Remove(target)
	t.Followers.Remove(actor)
	return true
}

// Suggested returns up to n users, in registration order, that are neither
// the viewer nor already followed by the viewer.
func (g *Graph) Suggested(viewer domain.UserID, n int) []*domain.User {
	v, ok := g.byID[viewer]
	if !ok || n <= 0 {
		return nil
	}

	var out []*domain.User
	for _, u := range g.users {
		if u.ID == viewer || v.Following.Has(u.ID) {
			continue
		}
		out = append(out, u)
		if len(out) == n {
			break
		}
	}
	return out
}

func (g *Graph) pair(actor, target domain.UserID) (*domain.User, *domain.User, bool) {
	if actor == target {
		return nil, nil, false
	}
	a, ok := g.byID[actor]
	if !ok {
		return nil, nil, false
	}
	t, ok := g.byID[target]
	if !ok {
		return nil, nil, false
	}
	return a, t, true
}
