package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "belajar/internal/domain/errors"
)

func validSlide(n int) Slide {
	return Slide{
		Number:  n,
		Title:   "Slide",
		Time:    "01:00",
		Content: "<p>hi</p>",
	}
}

func validPresentationParams() PresentationParams {
	return PresentationParams{
		Slug:          "intro-git",
		Language:      "en",
		Title:         "Intro to Git",
		Description:   "Version control basics",
		PubDate:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Category:      "tools",
		Tags:          []string{"git"},
		Difficulty:    "beginner",
		EstimatedTime: 20,
		TotalSlides:   10,
		Slides:        []Slide{validSlide(1), validSlide(2)},
	}
}

func TestNewPresentation_Valid(t *testing.T) {
	p, err := NewPresentation(validPresentationParams())
	require.NoError(t, err)
	assert.Equal(t, CategoryTools, p.Category)
	assert.Equal(t, DifficultyBeginner, p.Difficulty)
	assert.True(t, p.HasTag("Git"))
}

func TestNewPresentation_SlideCountMismatchNotFatal(t *testing.T) {
	// 声明 10 页实际 2 页：构造成功，只标记不一致
	p, err := NewPresentation(validPresentationParams())
	require.NoError(t, err)
	assert.Equal(t, 2, p.SlideCount())
	assert.Equal(t, 10, p.TotalSlides)
	assert.True(t, p.SlideCountMismatch())
}

func TestNewPresentation_ValidationErrors(t *testing.T) {
	params := validPresentationParams()
	params.Title = ""
	params.TotalSlides = 0
	params.EstimatedTime = -5
	params.Difficulty = "wizard"

	_, err := NewPresentation(params)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerr.ErrInvalid)

	var ve domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 4)
}

func TestNewSlide(t *testing.T) {
	_, err := NewSlide(validSlide(1))
	assert.NoError(t, err)

	_, err = NewSlide(Slide{Number: 1, Time: "01:00"})
	assert.ErrorIs(t, err, domainerr.ErrInvalid)
}

func TestSlide_DurationSeconds(t *testing.T) {
	cases := []struct {
		time string
		want int
	}{
		{"02:30", 150},
		{"01:02:30", 3750},
		{"00:45", 45},
		{"invalid", 0},
		{"1:2:3:4", 0},
		{"-1:30", 0},
		{"", 0},
	}
	for _, c := range cases {
		s := Slide{Time: c.time}
		assert.Equal(t, c.want, s.DurationSeconds(), "time=%q", c.time)
	}
}

func TestPresentation_TotalDurationSeconds(t *testing.T) {
	p := Presentation{Slides: []Slide{
		{Time: "01:00"},
		{Time: "02:30"},
		{Time: "bogus"}, // 解析失败按 0 计
	}}
	assert.Equal(t, 210, p.TotalDurationSeconds())
}
