package service

import (
	"fmt"
	"sort"
)

// Signals 信号抽取器。同一套打分逻辑同时服务博文和演示文稿，
// 只是各自换一组抽取函数。
type Signals[T any] struct {
	Slug       func(T) string
	Tags       func(T) []string // 规范化 slug
	Category   func(T) string
	Difficulty func(T) string
	// TieBreak 分数相同时的确定性排序，nil 就保持候选原序
	TieBreak func(a, b T) bool
}

type Weights struct {
	SharedTag      int
	SameCategory   int
	SameDifficulty int
}

// DefaultWeights 共享标签 > 同类目 > 同难度
var DefaultWeights = Weights{
	SharedTag:      3,
	SameCategory:   2,
	SameDifficulty: 1,
}

type Scored[T any] struct {
	Item    T
	Score   int
	Reasons []string
}

// rankBySignals 全集减去 reference（按 slug 匹配）逐个打分：
//
//	score += 共享标签数 × SharedTag
//	score += SameCategory   （两边类目非空且完全相等）
//	score += SameDifficulty （难度完全相等）
//
// 低于 minScore 的丢掉，降序截断到 maxResults。
func rankBySignals[T any](ref T, candidates []T, sig Signals[T], w Weights, minScore, maxResults int) []Scored[T] {
	refSlug := sig.Slug(ref)
	refTags := make(map[string]struct{})
	for _, t := range sig.Tags(ref) {
		refTags[t] = struct{}{}
	}
	refCat := sig.Category(ref)
	refDiff := sig.Difficulty(ref)

	var scored []Scored[T]
	for _, c := range candidates {
		if sig.Slug(c) == refSlug {
			continue
		}

		score := 0
		var reasons []string

		shared := 0
		for _, t := range sig.Tags(c) {
			if _, ok := refTags[t]; ok {
				shared++
			}
		}
		if shared > 0 {
			score += shared * w.SharedTag
			if w.SharedTag > 0 {
				reasons = append(reasons, fmt.Sprintf("%d shared tag(s)", shared))
			}
		}
		if w.SameCategory > 0 && refCat != "" && sig.Category(c) == refCat {
			score += w.SameCategory
			reasons = append(reasons, "same category")
		}
		if w.SameDifficulty > 0 && refDiff != "" && sig.Difficulty(c) == refDiff {
			score += w.SameDifficulty
			reasons = append(reasons, "same difficulty")
		}

		if score < minScore {
			continue
		}
		scored = append(scored, Scored[T]{Item: c, Score: score, Reasons: reasons})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if sig.TieBreak != nil {
			return sig.TieBreak(scored[i].Item, scored[j].Item)
		}
		return false
	})
	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
