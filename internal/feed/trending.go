package feed

import (
	"sort"

	"github.com/weiawesome/wes-io-live/feed-service/internal/domain"
)

// TrendingLimit is how many tags the trending panel shows.
const TrendingLimit = 5

// CountTags counts tag occurrences across all posts, highest count first.
// Equal counts keep first-seen order, walking posts in canonical order and
// each post's tags in order.
func CountTags(posts []*domain.Post) []domain.TagCount {
	index := make(map[string]int)
	var counts []domain.TagCount

	for _, p := range posts {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, domain.TagCount{Tag: tag, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Trending returns at most limit tag counts.
func Trending(posts []*domain.Post, limit int) []domain.TagCount {
	counts := CountTags(posts)
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// TrendingTags returns the names of the top TrendingLimit tags.
func TrendingTags(posts []*domain.Post) []string {
	top := Trending(posts, TrendingLimit)
	tags := make([]string, len(top))
	for i, tc := range top {
		tags[i] = tc.Tag
	}
	return tags
}
