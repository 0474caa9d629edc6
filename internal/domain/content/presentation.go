package content

import (
	"strconv"
	"strings"
	"time"

	domainerr "belajar/internal/domain/errors"
)

// Slide 是演示文稿里的一页，构造后不变
type Slide struct {
	Number     int
	Title      string
	Time       string // "MM:SS" 或 "HH:MM:SS"
	Content    string // HTML，头部注释已剥掉
	Notes      string
	Transition string
	Background string
	Fragments  bool
}

func NewSlide(s Slide) (Slide, error) {
	var ve domainerr.ValidationError
	if strings.TrimSpace(s.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if strings.TrimSpace(s.Time) == "" {
		ve.Add("time", "must not be empty")
	}
	if strings.TrimSpace(s.Content) == "" {
		ve.Add("content", "must not be empty")
	}
	if ve.HasAny() {
		return Slide{}, ve
	}
	return s, nil
}

// DurationSeconds 解析时长。格式不认识就返回 0，不报错。
func (s Slide) DurationSeconds() int {
	parts := strings.Split(strings.TrimSpace(s.Time), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		nums[i] = n
	}
	if len(nums) == 2 {
		return nums[0]*60 + nums[1]
	}
	return nums[0]*3600 + nums[1]*60 + nums[2]
}

// Presentation 聚合根，按序持有自己的 Slide
type Presentation struct {
	Slug            string
	Language        string
	Title           string
	Description     string
	PubDate         time.Time
	Author          string
	Category        Category
	Difficulty      Difficulty
	EstimatedTime   int // 分钟
	TotalSlides     int // metadata 声明值，可能和实际页数不一致
	RelatedBlogPost string

	Tags    []Tag
	RawTags []string
	Slides  []Slide
}

type PresentationParams struct {
	Slug            string
	Language        string
	Title           string
	Description     string
	PubDate         time.Time
	Author          string
	Category        string
	Tags            []string
	Difficulty      string
	EstimatedTime   int
	TotalSlides     int
	RelatedBlogPost string
	Slides          []Slide
}

func NewPresentation(p PresentationParams) (Presentation, error) {
	var ve domainerr.ValidationError

	if strings.TrimSpace(p.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		ve.Add("description", "must not be empty")
	}
	if p.PubDate.IsZero() {
		ve.Add("pubDate", "must be present")
	}
	if p.TotalSlides <= 0 {
		ve.Add("totalSlides", "must be positive")
	}
	if p.EstimatedTime <= 0 {
		ve.Add("estimatedTime", "must be positive")
	}

	diff, err := NewDifficulty(p.Difficulty)
	if err != nil {
		ve.Addf("difficulty", "must be one of beginner/intermediate/advanced, got %q", p.Difficulty)
	}

	cat := CategoryGeneral
	if c := strings.TrimSpace(p.Category); c != "" {
		parsed, err := NewCategory(c)
		if err != nil {
			ve.Addf("category", "unknown category %q", c)
		} else {
			cat = parsed
		}
	}

	if ve.HasAny() {
		return Presentation{}, ve
	}

	raw := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			raw = append(raw, t)
		}
	}

	return Presentation{
		Slug:            strings.TrimSpace(p.Slug),
		Language:        strings.TrimSpace(p.Language),
		Title:           strings.TrimSpace(p.Title),
		Description:     strings.TrimSpace(p.Description),
		PubDate:         p.PubDate,
		Author:          strings.TrimSpace(p.Author),
		Category:        cat,
		Difficulty:      diff,
		EstimatedTime:   p.EstimatedTime,
		TotalSlides:     p.TotalSlides,
		RelatedBlogPost: strings.TrimSpace(p.RelatedBlogPost),
		Tags:            MakeTags(p.Tags),
		RawTags:         raw,
		Slides:          p.Slides,
	}, nil
}

func (p Presentation) SlideCount() int { return len(p.Slides) }

// SlideCountMismatch 声明页数和实际页数不一致。非致命，调用方负责记 warning。
func (p Presentation) SlideCountMismatch() bool {
	return p.TotalSlides != len(p.Slides)
}

func (p Presentation) TagSlugs() []string {
	out := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		out[i] = t.Slug
	}
	return out
}

func (p Presentation) HasTag(name string) bool {
	slug := Slugify(name)
	if slug == "" {
		return false
	}
	for _, t := range p.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

func (p Presentation) TotalDurationSeconds() int {
	sum := 0
	for _, s := range p.Slides {
		sum += s.DurationSeconds()
	}
	return sum
}
