package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"belajar/internal/domain/content"
	"belajar/internal/repository"
)

type PresentationListItem struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PubDate       time.Time `json:"pubDate"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	EstimatedTime int       `json:"estimatedTime"`
	SlideCount    int       `json:"slideCount"`
	Tags          []TagView `json:"tags"`
	Languages     []string  `json:"languages,omitempty"`
}

type SlideView struct {
	Number          int    `json:"number"`
	Title           string `json:"title"`
	Time            string `json:"time"`
	DurationSeconds int    `json:"durationSeconds"`
	Content         string `json:"content"`
	Notes           string `json:"notes,omitempty"`
	Transition      string `json:"transition,omitempty"`
	Background      string `json:"background,omitempty"`
	Fragments       bool   `json:"fragments,omitempty"`
}

type PresentationDetail struct {
	PresentationListItem
	Author               string      `json:"author,omitempty"`
	Language             string      `json:"language"`
	RelatedBlogPost      string      `json:"relatedBlogPost,omitempty"`
	TotalDurationSeconds int         `json:"totalDurationSeconds"`
	Slides               []SlideView `json:"slides"`
}

type PresentationService struct {
	repo *repository.FileSystemPresentationRepository
	log  logrus.FieldLogger
}

func NewPresentationService(repo *repository.FileSystemPresentationRepository, log logrus.FieldLogger) *PresentationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PresentationService{
		repo: repo,
		log:  log.WithField("component", "presentation-service"),
	}
}

func toPresentationItem(p content.Presentation, langs []string) PresentationListItem {
	tags := make([]TagView, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = TagView{Name: t.Name, Slug: t.Slug, Icon: t.Icon()}
	}
	return PresentationListItem{
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		PubDate:       p.PubDate,
		Category:      p.Category.String(),
		Difficulty:    p.Difficulty.String(),
		EstimatedTime: p.EstimatedTime,
		SlideCount:    p.SlideCount(),
		Tags:          tags,
		Languages:     langs,
	}
}

// List 跨语言合并列表，带每个 slug 的可用语言
func (s *PresentationService) List(ctx context.Context) ([]PresentationListItem, error) {
	all, err := s.repo.FindAllWithLanguages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PresentationListItem, len(all))
	for i, lp := range all {
		out[i] = toPresentationItem(lp.Presentation, lp.Languages)
	}
	return out, nil
}

func (s *PresentationService) ListByLanguage(ctx context.Context, lang string) ([]PresentationListItem, error) {
	all, err := s.repo.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	out := make([]PresentationListItem, len(all))
	for i, p := range all {
		out[i] = toPresentationItem(p, nil)
	}
	return out, nil
}

// Get 找不到返回 nil
func (s *PresentationService) Get(ctx context.Context, slug, lang string) (*PresentationDetail, error) {
	p, err := s.repo.FindBySlug(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	slides := make([]SlideView, len(p.Slides))
	for i, sl := range p.Slides {
		slides[i] = SlideView{
			Number:          sl.Number,
			Title:           sl.Title,
			Time:            sl.Time,
			DurationSeconds: sl.DurationSeconds(),
			Content:         sl.Content,
			Notes:           sl.Notes,
			Transition:      sl.Transition,
			Background:      sl.Background,
			Fragments:       sl.Fragments,
		}
	}
	return &PresentationDetail{
		PresentationListItem: toPresentationItem(*p, nil),
		Author:               p.Author,
		Language:             p.Language,
		RelatedBlogPost:      p.RelatedBlogPost,
		TotalDurationSeconds: p.TotalDurationSeconds(),
		Slides:               slides,
	}, nil
}

var presentationSignals = Signals[content.Presentation]{
	Slug:       func(p content.Presentation) string { return p.Slug },
	Tags:       func(p content.Presentation) []string { return p.TagSlugs() },
	Category:   func(p content.Presentation) string { return p.Category.String() },
	Difficulty: func(p content.Presentation) string { return p.Difficulty.String() },
	TieBreak: func(a, b content.Presentation) bool {
		if !a.PubDate.Equal(b.PubDate) {
			return a.PubDate.After(b.PubDate)
		}
		return a.Slug < b.Slug
	},
}

// GetSimilar 只看共享标签数这一个信号，复用同一个打分器
func (s *PresentationService) GetSimilar(ctx context.Context, slug, lang string, maxResults int) ([]PresentationListItem, error) {
	ref, err := s.repo.FindBySlug(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	corpus, err := s.repo.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = 3
	}
	scored := rankBySignals(*ref, corpus, presentationSignals, Weights{SharedTag: 1}, 1, maxResults)
	out := make([]PresentationListItem, len(scored))
	for i, sc := range scored {
		out[i] = toPresentationItem(sc.Item, nil)
	}
	return out, nil
}

// ForBlogPost relatedBlogPost 关联的演示文稿
func (s *PresentationService) ForBlogPost(ctx context.Context, blogSlug, lang string) ([]PresentationListItem, error) {
	lps, err := s.repo.FindByRelatedBlogPost(ctx, blogSlug, lang)
	if err != nil {
		return nil, err
	}
	out := make([]PresentationListItem, len(lps))
	for i, lp := range lps {
		out[i] = toPresentationItem(lp.Presentation, lp.Languages)
	}
	return out, nil
}
