package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

func TestTrending_CountsAndOrder(t *testing.T) {
	// Tags a,a,b,a,c,b spread across posts.
	posts := []*domain.Post{
		{ID: 4, Tags: []string{"a", "b"}},
		{ID: 3, Tags: []string{"a"}},
		{ID: 2, Tags: []string{"c", "b"}},
		{ID: 1, Tags: []string{"a"}},
	}

	got := Trending(posts, TrendingLimit)
	assert.Equal(t, []domain.TagCount{
		{Tag: "a", Count: 3},
		{Tag: "b", Count: 2},
		{Tag: "c", Count: 1},
	}, got)
	assert.Equal(t, []string{"a", "b", "c"}, TrendingTags(posts))
}

func TestTrending_CappedAtFive(t *testing.T) {
	posts := []*domain.Post{
		{ID: 1, Tags: []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}},
	}
	assert.Len(t, TrendingTags(posts), 5)
	assert.Len(t, CountTags(posts), 7)
}

func TestTrending_TiesKeepFirstSeenOrder(t *testing.T) {
	posts := []*domain.Post{
		{ID: 3, Tags: []string{"zeta", "alpha"}},
		{ID: 2, Tags: []string{"mid"}},
		{ID: 1, Tags: []string{"alpha", "zeta", "mid"}},
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, TrendingTags(posts))
}

func TestTrending_Empty(t *testing.T) {
	assert.Empty(t, TrendingTags(nil))
}
