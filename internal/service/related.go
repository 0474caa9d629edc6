package service

import (
	"belajar/internal/domain/content"
)

// RelatedPostsService 给定一篇参考博文，在语料里按
// 共享标签/同类目/同难度三个信号打分找相关文章。
type RelatedPostsService struct {
	weights    Weights
	minScore   int
	maxResults int
}

// NewRelatedPostsService 权重全零就落回默认；minScore 最低 1——
// 零分的候选永远算不上"相关"。
func NewRelatedPostsService(w Weights, minScore, maxResults int) *RelatedPostsService {
	if w == (Weights{}) {
		w = DefaultWeights
	}
	if minScore < 1 {
		minScore = 1
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	return &RelatedPostsService{
		weights:    w,
		minScore:   minScore,
		maxResults: maxResults,
	}
}

var postSignals = Signals[content.BlogPost]{
	Slug:       func(p content.BlogPost) string { return p.Slug },
	Tags:       func(p content.BlogPost) []string { return p.TagSlugs() },
	Category:   func(p content.BlogPost) string { return p.Category.String() },
	Difficulty: func(p content.BlogPost) string { return p.Difficulty.String() },
	TieBreak: func(a, b content.BlogPost) bool {
		// 同分：新的在前，再按 slug 定序
		if !a.PubDate.Equal(b.PubDate) {
			return a.PubDate.After(b.PubDate)
		}
		return a.Slug < b.Slug
	},
}

func (s *RelatedPostsService) FindRelated(ref content.BlogPost, corpus []content.BlogPost) []content.BlogPost {
	scored := rankBySignals(ref, corpus, postSignals, s.weights, s.minScore, s.maxResults)
	out := make([]content.BlogPost, len(scored))
	for i, sc := range scored {
		out[i] = sc.Item
	}
	return out
}

type ScoredPost = Scored[content.BlogPost]

// FindRelatedWithScores 带分数和人类可读的理由，诊断用
func (s *RelatedPostsService) FindRelatedWithScores(ref content.BlogPost, corpus []content.BlogPost) []ScoredPost {
	return rankBySignals(ref, corpus, postSignals, s.weights, s.minScore, s.maxResults)
}
