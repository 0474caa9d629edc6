package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"belajar/internal/domain/content"
	"belajar/internal/ingest"
)

// 目录契约：
//
//	presentations-{lang}/{slug}/metadata.json        单个对象
//	presentations-{lang}/{slug}/slide-metadata.json  有序数组
//	presentations-{lang}/{slug}/{fileName}           HTML，带 "<!-- ... -->\n" 头
type presentationMetadata struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PubDate         string   `json:"pubDate"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Difficulty      string   `json:"difficulty"`
	Language        string   `json:"language"`
	EstimatedTime   int      `json:"estimatedTime"`
	TotalSlides     int      `json:"totalSlides"`
	Author          string   `json:"author"`
	RelatedBlogPost string   `json:"relatedBlogPost,omitempty"`
}

type slideMetadata struct {
	SlideNumber int    `json:"slideNumber"`
	Title       string `json:"title"`
	Time        string `json:"time"`
	FileName    string `json:"fileName"`
	Notes       string `json:"notes,omitempty"`
	Transition  string `json:"transition,omitempty"`
	Background  string `json:"background,omitempty"`
	Fragments   bool   `json:"fragments,omitempty"`
}

// LocalizedPresentation 跨语言合并的结果：规范元数据取首个见到的语言
type LocalizedPresentation struct {
	Presentation content.Presentation
	Languages    []string
}

// FileSystemPresentationRepository 从目录树加载演示文稿。
// 进程内缓存按 {lang}:{slug}，没有哈希校验，只有显式 ClearCache——
// 长驻进程里内容改了得自己清。
type FileSystemPresentationRepository struct {
	root      string
	languages []string
	log       logrus.FieldLogger

	mu    sync.RWMutex
	cache map[string]content.Presentation
}

func NewFileSystemPresentationRepository(root string, languages []string, log logrus.FieldLogger) *FileSystemPresentationRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileSystemPresentationRepository{
		root:      root,
		languages: languages,
		log:       log.WithField("component", "presentation-repository"),
		cache:     make(map[string]content.Presentation),
	}
}

func (r *FileSystemPresentationRepository) langDir(lang string) string {
	return filepath.Join(r.root, "presentations-"+lang)
}

// FindBySlug metadata.json 不在就返回 nil。单条查找的错误（包括
// slide 加载失败）一律上抛，跳过策略只用于批量加载。
func (r *FileSystemPresentationRepository) FindBySlug(ctx context.Context, slug, lang string) (*content.Presentation, error) {
	key := lang + ":" + slug
	r.mu.RLock()
	if p, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return &p, nil
	}
	r.mu.RUnlock()

	dir := filepath.Join(r.langDir(lang), slug)
	metaRaw, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata %s/%s: %w", lang, slug, err)
	}

	var meta presentationMetadata
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s/%s: %w", lang, slug, err)
	}

	slides, err := r.loadSlides(dir)
	if err != nil {
		return nil, fmt.Errorf("load slides %s/%s: %w", lang, slug, err)
	}

	language := meta.Language
	if language == "" {
		language = lang
	}
	p, err := content.NewPresentation(content.PresentationParams{
		Slug:            slug,
		Language:        language,
		Title:           meta.Title,
		Description:     meta.Description,
		PubDate:         ingest.ParseTime(meta.PubDate),
		Author:          meta.Author,
		Category:        meta.Category,
		Tags:            meta.Tags,
		Difficulty:      meta.Difficulty,
		EstimatedTime:   meta.EstimatedTime,
		TotalSlides:     meta.TotalSlides,
		RelatedBlogPost: meta.RelatedBlogPost,
		Slides:          slides,
	})
	if err != nil {
		return nil, fmt.Errorf("presentation %s/%s: %w", lang, slug, err)
	}

	// 声明页数和实际不一致只告警，不拦构造
	if p.SlideCountMismatch() {
		r.log.WithFields(logrus.Fields{
			"slug":     slug,
			"lang":     lang,
			"declared": p.TotalSlides,
			"actual":   p.SlideCount(),
		}).Warn("slide count mismatch between metadata and slide files")
	}

	r.mu.Lock()
	r.cache[key] = p
	r.mu.Unlock()
	return &p, nil
}

func (r *FileSystemPresentationRepository) loadSlides(dir string) ([]content.Slide, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "slide-metadata.json"))
	if err != nil {
		return nil, err
	}
	var metas []slideMetadata
	if err := json.Unmarshal(raw, &metas); err != nil {
		return nil, err
	}

	slides := make([]content.Slide, 0, len(metas))
	for _, m := range metas {
		body, err := os.ReadFile(filepath.Join(dir, m.FileName))
		if err != nil {
			return nil, err
		}
		s, err := content.NewSlide(content.Slide{
			Number:     m.SlideNumber,
			Title:      m.Title,
			Time:       m.Time,
			Content:    stripSlideHeader(body),
			Notes:      m.Notes,
			Transition: m.Transition,
			Background: m.Background,
			Fragments:  m.Fragments,
		})
		if err != nil {
			return nil, fmt.Errorf("slide %d (%s): %w", m.SlideNumber, m.FileName, err)
		}
		slides = append(slides, s)
	}
	return slides, nil
}

// stripSlideHeader 去掉文件头部的 HTML 注释
func stripSlideHeader(b []byte) string {
	s := string(b)
	if strings.HasPrefix(s, "<!--") {
		if i := strings.Index(s, "-->"); i >= 0 {
			s = strings.TrimPrefix(s[i+len("-->"):], "\n")
		}
	}
	return s
}

// FindAll 列出语言目录下全部 slug，坏的跳过记日志，按发布时间倒序
func (r *FileSystemPresentationRepository) FindAll(ctx context.Context, lang string) ([]content.Presentation, error) {
	entries, err := os.ReadDir(r.langDir(lang))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list presentations-%s: %w", lang, err)
	}

	var out []content.Presentation
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := r.FindBySlug(ctx, e.Name(), lang)
		if err != nil {
			r.log.WithError(err).WithFields(logrus.Fields{"slug": e.Name(), "lang": lang}).
				Warn("presentation failed to load, skipping")
			continue
		}
		if p == nil {
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PubDate.After(out[j].PubDate)
	})
	return out, nil
}

// FindAllWithLanguages 跨语言合并：slug 首次出现的语言提供规范元数据，
// 再探一遍其他语言目录攒出可用语言列表
func (r *FileSystemPresentationRepository) FindAllWithLanguages(ctx context.Context) ([]LocalizedPresentation, error) {
	seen := make(map[string]struct{})
	var out []LocalizedPresentation

	for _, lang := range r.languages {
		entries, err := os.ReadDir(r.langDir(lang))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("list presentations-%s: %w", lang, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			slug := e.Name()
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}

			p, err := r.FindBySlug(ctx, slug, lang)
			if err != nil {
				r.log.WithError(err).WithFields(logrus.Fields{"slug": slug, "lang": lang}).
					Warn("presentation failed to load, skipping")
				continue
			}
			if p == nil {
				continue
			}

			var langs []string
			for _, probe := range r.languages {
				metaPath := filepath.Join(r.langDir(probe), slug, "metadata.json")
				if _, err := os.Stat(metaPath); err == nil {
					langs = append(langs, probe)
				}
			}
			out = append(out, LocalizedPresentation{Presentation: *p, Languages: langs})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Presentation.PubDate.After(out[j].Presentation.PubDate)
	})
	return out, nil
}

// FindByRelatedBlogPost relatedBlogPost 精确匹配，再按语言可用性过滤
func (r *FileSystemPresentationRepository) FindByRelatedBlogPost(ctx context.Context, blogSlug, lang string) ([]LocalizedPresentation, error) {
	all, err := r.FindAllWithLanguages(ctx)
	if err != nil {
		return nil, err
	}
	var out []LocalizedPresentation
	for _, lp := range all {
		if lp.Presentation.RelatedBlogPost != blogSlug {
			continue
		}
		for _, l := range lp.Languages {
			if l == lang {
				out = append(out, lp)
				break
			}
		}
	}
	return out, nil
}

// ClearCache 进程内缓存唯一的失效手段
func (r *FileSystemPresentationRepository) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string]content.Presentation)
	r.mu.Unlock()
}
