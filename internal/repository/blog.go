package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"belajar/internal/cache"
	"belajar/internal/domain/content"
)

// CollectionSource 内容集合抽象：按集合名给出原始条目
type CollectionSource interface {
	Records(ctx context.Context, collection string) ([]content.Record, error)
}

// PartitionKey 博文集合在构建缓存里的 key，接缓存分区配置用
func PartitionKey(lang string) string {
	return "collection:blog-" + lang
}

// BlogPostRepository 把内容集合翻译成校验过的 BlogPost。
// 原始条目走构建缓存；域对象每次读都重新构造。
// 批量加载坏一条跳一条记日志，单条查找才把错误往上抛。
type BlogPostRepository struct {
	source CollectionSource
	cache  *cache.Cache
	log    logrus.FieldLogger
}

func NewBlogPostRepository(source CollectionSource, c *cache.Cache, log logrus.FieldLogger) *BlogPostRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BlogPostRepository{
		source: source,
		cache:  c,
		log:    log.WithField("component", "blog-repository"),
	}
}

func (r *BlogPostRepository) FindAll(ctx context.Context, lang string) ([]content.BlogPost, error) {
	collection := "blog-" + lang
	recs, err := cache.GetOrSet(ctx, r.cache, PartitionKey(lang), func(ctx context.Context) ([]content.Record, error) {
		return r.source.Records(ctx, collection)
	})
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", collection, err)
	}

	posts := make([]content.BlogPost, 0, len(recs))
	for _, rec := range recs {
		p, err := content.NewBlogPost(rec)
		if err != nil {
			r.log.WithError(err).WithFields(logrus.Fields{
				"collection": collection,
				"id":         rec.ID,
			}).Warn("record failed validation, skipping")
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// FindBySlug 找不到返回 nil，不算错误
func (r *BlogPostRepository) FindBySlug(ctx context.Context, slug, lang string) (*content.BlogPost, error) {
	posts, err := r.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, nil
}

func (r *BlogPostRepository) FindByCategory(ctx context.Context, lang string, cat content.Category) ([]content.BlogPost, error) {
	posts, err := r.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindByTags 任意一个标签命中就算
func (r *BlogPostRepository) FindByTags(ctx context.Context, lang string, tags []string) ([]content.BlogPost, error) {
	posts, err := r.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		for _, t := range tags {
			if p.HasTag(t) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *BlogPostRepository) FindPublished(ctx context.Context, lang string) ([]content.BlogPost, error) {
	posts, err := r.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *BlogPostRepository) FindFeatured(ctx context.Context, lang string) ([]content.BlogPost, error) {
	posts, err := r.FindAll(ctx, lang)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if p.Featured && p.IsPublished() {
			out = append(out, p)
		}
	}
	return out, nil
}
