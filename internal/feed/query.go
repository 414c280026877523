// Package feed derives read-only views over a session's posts.
package feed

import (
	"strings"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

// Filter returns the posts visible under q, preserving the input order.
// It never mutates posts.
func Filter(posts []*domain.Post, q domain.FeedQuery) []*domain.Post {
	out := make([]*domain.Post, 0, len(posts))
	needle := strings.ToLower(q.Search)

	for _, p := range posts {
		if !visibleIn(p, q) {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func visibleIn(p *domain.Post, q domain.FeedQuery) bool {
	if q.Viewer == nil {
		return true
	}
	switch q.View {
	case domain.ViewProfile:
		return p.AuthorID == q.Viewer.ID
	case domain.ViewHome:
		return p.AuthorID == q.Viewer.ID || q.Viewer.Following.Has(p.AuthorID)
	default:
		return true
	}
}

// matches expects needle already lower-cased.
func matches(p *domain.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
