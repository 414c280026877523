package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

func TestContent_PrependKeepsMostRecentFirst(t *testing.T) {
	c := NewContent()
	for i := 0; i < 3; i++ {
		_, err := c.Prepend(domain.Post{ID: c.NextID(), AuthorID: 1})
		require.NoError(t, err)
	}

	var ids []domain.PostID
	for _, p := range c.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []domain.PostID{3, 2, 1}, ids)
	assert.Equal(t, domain.PostID(4), c.NextID())

	_, err := c.Prepend(domain.Post{ID: 2})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestContent_ToggleLikeTwiceRestores(t *testing.T) {
	c := NewContent()
	_, err := c.Prepend(domain.Post{ID: 1, AuthorID: 1, Likes: domain.NewUserSet(3)})
	require.NoError(t, err)

	liked, ok := c.ToggleLike(1, 2)
	require.True(t, ok)
	assert.True(t, liked)

	liked, ok = c.ToggleLike(1, 2)
	require.True(t, ok)
	assert.False(t, liked)

	p, _ := c.Get(1)
	assert.Equal(t, []domain.UserID{3}, p.Likes.Sorted())

	_, ok = c.ToggleLike(99, 2)
	assert.False(t, ok)
}

func TestContent_AppendCommentKeepsOrder(t *testing.T) {
	c := NewContent()
	_, err := c.Prepend(domain.Post{ID: 1, AuthorID: 1})
	require.NoError(t, err)

	for _, id := range []domain.CommentID{5, 2, 9} {
		require.True(t, c.AppendComment(1, domain.Comment{ID: id}))
	}
	assert.False(t, c.AppendComment(2, domain.Comment{ID: 1}))

	p, _ := c.Get(1)
	require.Len(t, p.Comments, 3)
	assert.Equal(t, domain.CommentID(5), p.Comments[0].ID)
	assert.Equal(t, domain.CommentID(2), p.Comments[1].ID)
	assert.Equal(t, domain.CommentID(9), p.Comments[2].ID)
}
