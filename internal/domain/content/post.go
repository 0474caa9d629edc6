package content

import (
	"strings"
	"time"

	domainerr "belajar/internal/domain/errors"
)

// BlogPost 是校验过的博文域对象，构造后不再改动；
// 源数据变了就重新构造一个。
type BlogPost struct {
	ID          string
	Slug        string
	Title       string
	Description string
	PubDate     time.Time
	Updated     time.Time
	Author      string
	Category    Category
	Difficulty  Difficulty
	Draft       bool
	Featured    bool
	Language    string
	WordCount   int
	ReadMinutes int

	Tags []Tag
	// RawTags 保留 front matter 原始拼写，标签统计按原拼写计数
	RawTags []string
}

func NewBlogPost(rec Record) (BlogPost, error) {
	var ve domainerr.ValidationError

	title := strings.TrimSpace(rec.Data.Title)
	if title == "" {
		ve.Add("title", "must not be empty")
	}
	if strings.TrimSpace(rec.ID) == "" {
		ve.Add("id", "must not be empty")
	}
	if rec.Data.PubDate.IsZero() {
		ve.Add("pubDate", "must be present")
	}

	cat := CategoryGeneral
	if c := strings.TrimSpace(rec.Data.Category); c != "" {
		parsed, err := NewCategory(c)
		if err != nil {
			ve.Addf("category", "unknown category %q", c)
		} else {
			cat = parsed
		}
	}

	var diff Difficulty
	if d := strings.TrimSpace(rec.Data.Difficulty); d != "" {
		parsed, err := NewDifficulty(d)
		if err != nil {
			ve.Addf("difficulty", "unknown difficulty %q", d)
		} else {
			diff = parsed
		}
	}

	if ve.HasAny() {
		return BlogPost{}, ve
	}

	slug := strings.TrimSpace(rec.Slug)
	if slug == "" {
		slug = rec.ID
	}

	raw := make([]string, 0, len(rec.Data.Tags))
	for _, t := range rec.Data.Tags {
		if t = strings.TrimSpace(t); t != "" {
			raw = append(raw, t)
		}
	}

	return BlogPost{
		ID:          rec.ID,
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(rec.Data.Description),
		PubDate:     rec.Data.PubDate,
		Updated:     rec.Data.Updated,
		Author:      strings.TrimSpace(rec.Data.Author),
		Category:    cat,
		Difficulty:  diff,
		Draft:       rec.Data.Draft,
		Featured:    rec.Data.Featured,
		Language:    rec.Language(),
		WordCount:   rec.Data.WordCount,
		ReadMinutes: rec.Data.ReadMinutes,
		Tags:        MakeTags(rec.Data.Tags),
		RawTags:     raw,
	}, nil
}

func (p BlogPost) IsPublished() bool { return !p.Draft }

// HasTag 大小写与分隔符不敏感："Machine Learning" 命中 "machine-learning"
func (p BlogPost) HasTag(name string) bool {
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

func (p BlogPost) TagSlugs() []string {
	out := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		out[i] = t.Slug
	}
	return out
}

// SameCategory 两边都非空且完全相等才算
func (p BlogPost) SameCategory(o BlogPost) bool {
	return p.Category != "" && p.Category == o.Category
}

func (p BlogPost) SameDifficulty(o BlogPost) bool {
	return p.Difficulty != "" && p.Difficulty == o.Difficulty
}
