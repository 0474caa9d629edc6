package service

import (
	"sort"

	"belajar/internal/domain/content"
)

// NormalizeSlug 标签规范化规则收敛在 domain 一处
func NormalizeSlug(name string) string {
	return content.Slugify(name)
}

type TagSort string

const (
	TagSortCountDesc TagSort = "count-desc"
	TagSortCountAsc  TagSort = "count-asc"
	TagSortNameAsc   TagSort = "name-asc"
	TagSortNameDesc  TagSort = "name-desc"
)

type TagCountOptions struct {
	MinCount int     // 低于此出现次数的标签不出；默认 1
	SortBy   TagSort // 默认 count-desc
	Limit    int     // 0 不截断
}

// CalculateTagCounts 按 front matter 原始拼写计数——两种拼写的
// 同一个概念分开算。这一点和 HasTag 的规范化匹配刻意不一致，
// 输出里每条带上规范化 slug 方便调用方自己归并。
func CalculateTagCounts(posts []content.BlogPost, opt TagCountOptions) []content.TagCount {
	if opt.MinCount < 1 {
		opt.MinCount = 1
	}
	if opt.SortBy == "" {
		opt.SortBy = TagSortCountDesc
	}

	counts := make(map[string]int)
	for _, p := range posts {
		for _, raw := range p.RawTags {
			counts[raw]++
		}
	}

	out := make([]content.TagCount, 0, len(counts))
	for name, c := range counts {
		if c < opt.MinCount {
			continue
		}
		out = append(out, content.TagCount{
			Name:  name,
			Slug:  content.Slugify(name),
			Count: c,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch opt.SortBy {
		case TagSortCountAsc:
			if a.Count != b.Count {
				return a.Count < b.Count
			}
			return a.Name < b.Name
		case TagSortNameAsc:
			return a.Name < b.Name
		case TagSortNameDesc:
			return a.Name > b.Name
		default: // count-desc，数量相同按名字
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Name < b.Name
		}
	})

	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out
}
