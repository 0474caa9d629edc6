package app

import (
	"context"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"belajar/internal/cache"
	"belajar/internal/domain/config"
	"belajar/internal/domain/content"
	"belajar/internal/ingest"
	"belajar/internal/metrics"
	"belajar/internal/repository"
	"belajar/internal/service"
)

// App 把各层按构造注入接起来，build 和 serve 共用一套装配
type App struct {
	Cfg      config.Config
	Log      logrus.FieldLogger
	Registry *prometheus.Registry

	Cache    *cache.Cache
	Loader   *ingest.Loader
	BlogRepo *repository.BlogPostRepository
	PresRepo *repository.FileSystemPresentationRepository

	Posts         *service.BlogPostService
	Presentations *service.PresentationService
}

func New(cfg config.Config, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	// 博文集合走构建缓存，每个语言一个分区
	partitions := make(map[string]string, len(cfg.Content.Languages))
	for _, lang := range cfg.Content.Languages {
		partitions[repository.PartitionKey(lang)] = filepath.Join(cfg.Content.Dir, "blog-"+lang)
	}

	c := cache.New(cache.Options{
		Path:       filepath.Join(cfg.Cache.Dir, "build-cache.json"),
		Partitions: partitions,
		Log:        log,
		Metrics:    metrics.NewCacheMetrics(reg),
	})

	loader := ingest.NewLoader(cfg.Content.Dir, log)
	blogRepo := repository.NewBlogPostRepository(loader, c, log)
	presRepo := repository.NewFileSystemPresentationRepository(cfg.Content.Dir, cfg.Content.Languages, log)

	related := service.NewRelatedPostsService(service.Weights{
		SharedTag:      cfg.Related.SharedTagWeight,
		SameCategory:   cfg.Related.SameCategoryWeight,
		SameDifficulty: cfg.Related.SameDifficultyWeight,
	}, cfg.Related.MinScore, cfg.Related.MaxResults)

	return &App{
		Cfg:           cfg,
		Log:           log,
		Registry:      reg,
		Cache:         c,
		Loader:        loader,
		BlogRepo:      blogRepo,
		PresRepo:      presRepo,
		Posts:         service.NewBlogPostService(blogRepo, related, log),
		Presentations: service.NewPresentationService(presRepo, log),
	}
}

// LoadAllPosts 全语言拉一遍，顺带把构建缓存焐热
func (a *App) LoadAllPosts(ctx context.Context) ([]content.BlogPost, error) {
	var all []content.BlogPost
	for _, lang := range a.Cfg.Content.Languages {
		posts, err := a.BlogRepo.FindAll(ctx, lang)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
	}
	return all, nil
}

// InvalidateContent 内容目录变了：构建缓存按分区失效，
// 演示文稿的进程内缓存整个清掉
func (a *App) InvalidateContent() {
	for _, lang := range a.Cfg.Content.Languages {
		a.Cache.Invalidate(repository.PartitionKey(lang))
	}
	a.PresRepo.ClearCache()
}
