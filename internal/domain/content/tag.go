package content

import (
	"fmt"

	domainerr "belajar/internal/domain/errors"
)

// Tag 以规范化 slug 为身份；没有注册元数据的标签照样成立，
// 展示名从 slug 推导，分类落到 general。
type Tag struct {
	Name string
	Slug string
	Meta *TagMeta
}

func NewTag(raw string) (Tag, error) {
	slug := Slugify(raw)
	if slug == "" {
		return Tag{}, fmt.Errorf("tag %q: %w", raw, domainerr.ErrInvalid)
	}
	t := Tag{Slug: slug}
	if meta, ok := LookupTagMeta(slug); ok {
		t.Meta = &meta
		t.Name = meta.Name
	} else {
		t.Name = titleFromSlug(slug)
	}
	return t, nil
}

// MakeTags 逐个构造，非法条目跳过不报错
func MakeTags(raws []string) []Tag {
	out := make([]Tag, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		t, err := NewTag(raw)
		if err != nil {
			continue
		}
		if _, ok := seen[t.Slug]; ok {
			continue
		}
		seen[t.Slug] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (t Tag) Equal(o Tag) bool { return t.Slug == o.Slug }

func (t Tag) Category() Category {
	if t.Meta != nil {
		return t.Meta.Category
	}
	return CategoryGeneral
}

func (t Tag) Icon() string {
	if t.Meta != nil {
		return t.Meta.Icon
	}
	return ""
}

func (t Tag) RelatedSlugs() []string {
	if t.Meta != nil {
		return t.Meta.RelatedTags
	}
	return nil
}

// TagCount 是聚合结果，只读
type TagCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
