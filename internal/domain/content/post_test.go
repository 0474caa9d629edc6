package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "belajar/internal/domain/errors"
)

func validRecord() Record {
	return Record{
		ID:         "intro-to-ml.md",
		Slug:       "intro-to-ml",
		Collection: "blog-en",
		Data: RecordData{
			Title:       "Intro to Machine Learning",
			Description: "First steps",
			PubDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Tags:        []string{"machine-learning", "Python"},
			Category:    "computer-science",
			Difficulty:  "beginner",
			Author:      "Ani",
		},
	}
}

func TestNewBlogPost_Valid(t *testing.T) {
	p, err := NewBlogPost(validRecord())
	require.NoError(t, err)
	assert.Equal(t, "intro-to-ml", p.Slug)
	assert.Equal(t, "en", p.Language)
	assert.Equal(t, CategoryComputerScience, p.Category)
	assert.True(t, p.IsPublished())
	assert.Equal(t, []string{"machine-learning", "python"}, p.TagSlugs())
}

func TestNewBlogPost_EmptyTitle(t *testing.T) {
	rec := validRecord()
	rec.Data.Title = "   "
	_, err := NewBlogPost(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerr.ErrInvalid)
}

func TestNewBlogPost_MissingIDAndPubDate(t *testing.T) {
	rec := validRecord()
	rec.ID = ""
	rec.Data.PubDate = time.Time{}
	_, err := NewBlogPost(rec)
	require.Error(t, err)

	var ve domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestNewBlogPost_UnknownCategory(t *testing.T) {
	rec := validRecord()
	rec.Data.Category = "astrology"
	_, err := NewBlogPost(rec)
	assert.Error(t, err)
}

func TestNewBlogPost_EmptyCategoryFallsBackToGeneral(t *testing.T) {
	rec := validRecord()
	rec.Data.Category = ""
	p, err := NewBlogPost(rec)
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, p.Category)
}

func TestBlogPost_Draft(t *testing.T) {
	rec := validRecord()
	rec.Data.Draft = true
	p, err := NewBlogPost(rec)
	require.NoError(t, err)
	assert.False(t, p.IsPublished())
}

func TestBlogPost_HasTag(t *testing.T) {
	p, err := NewBlogPost(validRecord())
	require.NoError(t, err)

	// 大小写和分隔符都不敏感
	assert.True(t, p.HasTag("Machine Learning"))
	assert.True(t, p.HasTag("machine-learning"))
	assert.True(t, p.HasTag("python"))
	assert.False(t, p.HasTag("rust"))
	assert.False(t, p.HasTag(""))
}

func TestBlogPost_LanguageFromCollection(t *testing.T) {
	rec := validRecord()
	rec.Collection = "blog-id"
	p, err := NewBlogPost(rec)
	require.NoError(t, err)
	assert.Equal(t, "id", p.Language)

	rec.Data.Language = "en" // 显式字段优先
	p, err = NewBlogPost(rec)
	require.NoError(t, err)
	assert.Equal(t, "en", p.Language)
}
