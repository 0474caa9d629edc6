package service

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"belajar/internal/domain/content"
	"belajar/internal/repository"
)

// 页面模板/接口吃的扁平视图模型，和域对象分开
type TagView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon,omitempty"`
}

type PostListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PubDate     time.Time `json:"pubDate"`
	Author      string    `json:"author,omitempty"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Featured    bool      `json:"featured"`
	ReadMinutes int       `json:"readMinutes,omitempty"`
	Tags        []TagView `json:"tags"`
}

type PostDetail struct {
	PostListItem
	Language  string         `json:"language"`
	WordCount int            `json:"wordCount,omitempty"`
	Related   []PostListItem `json:"related"`
}

type BlogPostService struct {
	repo    *repository.BlogPostRepository
	related *RelatedPostsService
	log     logrus.FieldLogger
}

func NewBlogPostService(repo *repository.BlogPostRepository, related *RelatedPostsService, log logrus.FieldLogger) *BlogPostService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BlogPostService{
		repo:    repo,
		related: related,
		log:     log.WithField("component", "blog-service"),
	}
}

func toListItem(p content.BlogPost) PostListItem {
	tags := make([]TagView, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = TagView{Name: t.Name, Slug: t.Slug, Icon: t.Icon()}
	}
	return PostListItem{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		PubDate:     p.PubDate,
		Author:      p.Author,
		Category:    p.Category.String(),
		Difficulty:  p.Difficulty.String(),
		Featured:    p.Featured,
		ReadMinutes: p.ReadMinutes,
		Tags:        tags,
	}
}

func sortByPubDateDesc(posts []content.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}

func ToPostListItems(posts []content.BlogPost) []PostListItem {
	out := make([]PostListItem, len(posts))
	for i, p := range posts {
		out[i] = toListItem(p)
	}
	return out
}

// ListPublished 已发布文章，发布时间倒序
func (s *BlogPostService) ListPublished(ctx context.Context, lang string) ([]PostListItem, error) {
	posts, err := s.repo.FindPublished(ctx, lang)
	if err != nil {
		return nil, err
	}
	sortByPubDateDesc(posts)
	return ToPostListItems(posts), nil
}

func (s *BlogPostService) ListFeatured(ctx context.Context, lang string) ([]PostListItem, error) {
	posts, err := s.repo.FindFeatured(ctx, lang)
	if err != nil {
		return nil, err
	}
	sortByPubDateDesc(posts)
	return ToPostListItems(posts), nil
}

func (s *BlogPostService) ListByCategory(ctx context.Context, lang string, cat content.Category) ([]PostListItem, error) {
	posts, err := s.repo.FindByCategory(ctx, lang, cat)
	if err != nil {
		return nil, err
	}
	published := posts[:0]
	for _, p := range posts {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	sortByPubDateDesc(published)
	return ToPostListItems(published), nil
}

func (s *BlogPostService) ListByTag(ctx context.Context, lang, tag string) ([]PostListItem, error) {
	posts, err := s.repo.FindByTags(ctx, lang, []string{tag})
	if err != nil {
		return nil, err
	}
	published := posts[:0]
	for _, p := range posts {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	sortByPubDateDesc(published)
	return ToPostListItems(published), nil
}

// Get 找不到返回 nil。相关文章在已发布语料里找。
func (s *BlogPostService) Get(ctx context.Context, slug, lang string) (*PostDetail, error) {
	post, err := s.repo.FindBySlug(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	corpus, err := s.repo.FindPublished(ctx, lang)
	if err != nil {
		return nil, err
	}
	related := s.related.FindRelated(*post, corpus)

	d := &PostDetail{
		PostListItem: toListItem(*post),
		Language:     post.Language,
		WordCount:    post.WordCount,
		Related:      ToPostListItems(related),
	}
	return d, nil
}

// RelatedWithScores 诊断接口：分数 + 理由
func (s *BlogPostService) RelatedWithScores(ctx context.Context, slug, lang string) ([]ScoredPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	corpus, err := s.repo.FindPublished(ctx, lang)
	if err != nil {
		return nil, err
	}
	scored := s.related.FindRelatedWithScores(*post, corpus)
	if scored == nil {
		// 文章在但没有相关项：空切片区别于"文章不存在"的 nil
		scored = []ScoredPost{}
	}
	return scored, nil
}

// TagCounts 标签聚合基于已发布文章
func (s *BlogPostService) TagCounts(ctx context.Context, lang string, opt TagCountOptions) ([]content.TagCount, error) {
	posts, err := s.repo.FindPublished(ctx, lang)
	if err != nil {
		return nil, err
	}
	return CalculateTagCounts(posts, opt), nil
}
