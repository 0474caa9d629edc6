package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belajar/internal/domain/content"
)

func taggedPost(t *testing.T, slug string, tags ...string) content.BlogPost {
	t.Helper()
	return makePost(t, slug, tags, "", "", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestCalculateTagCounts_RawSpellingsCountSeparately(t *testing.T) {
	posts := []content.BlogPost{
		taggedPost(t, "p1", "Machine Learning"),
		taggedPost(t, "p2", "machine-learning"),
		taggedPost(t, "p3", "Machine Learning"),
	}

	counts := CalculateTagCounts(posts, TagCountOptions{})
	require.Len(t, counts, 2)

	// 原拼写分开计数，slug 归一方便调用方自行归并
	assert.Equal(t, "Machine Learning", counts[0].Name)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, "machine-learning", counts[0].Slug)
	assert.Equal(t, "machine-learning", counts[1].Name)
	assert.Equal(t, 1, counts[1].Count)
	assert.Equal(t, "machine-learning", counts[1].Slug)
}

func TestCalculateTagCounts_MinCount(t *testing.T) {
	posts := []content.BlogPost{
		taggedPost(t, "p1", "go", "python"),
		taggedPost(t, "p2", "go"),
	}

	counts := CalculateTagCounts(posts, TagCountOptions{MinCount: 2})
	require.Len(t, counts, 1)
	assert.Equal(t, "go", counts[0].Name)
}

func TestCalculateTagCounts_SortModes(t *testing.T) {
	posts := []content.BlogPost{
		taggedPost(t, "p1", "go", "python"),
		taggedPost(t, "p2", "go", "docker"),
		taggedPost(t, "p3", "go"),
	}

	names := func(cs []content.TagCount) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	assert.Equal(t, []string{"go", "docker", "python"},
		names(CalculateTagCounts(posts, TagCountOptions{SortBy: TagSortCountDesc})))
	assert.Equal(t, []string{"docker", "python", "go"},
		names(CalculateTagCounts(posts, TagCountOptions{SortBy: TagSortCountAsc})))
	assert.Equal(t, []string{"docker", "go", "python"},
		names(CalculateTagCounts(posts, TagCountOptions{SortBy: TagSortNameAsc})))
	assert.Equal(t, []string{"python", "go", "docker"},
		names(CalculateTagCounts(posts, TagCountOptions{SortBy: TagSortNameDesc})))
}

func TestCalculateTagCounts_Limit(t *testing.T) {
	posts := []content.BlogPost{
		taggedPost(t, "p1", "a", "b", "c"),
	}
	assert.Len(t, CalculateTagCounts(posts, TagCountOptions{Limit: 2}), 2)
	assert.Len(t, CalculateTagCounts(posts, TagCountOptions{}), 3)
}

func TestCalculateTagCounts_Empty(t *testing.T) {
	assert.Empty(t, CalculateTagCounts(nil, TagCountOptions{}))
}
