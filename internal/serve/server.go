package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"belajar/internal/app"
	"belajar/internal/domain/content"
	"belajar/internal/index"
	"belajar/internal/service"
)

// Server 开发服务器：JSON API + 内容目录监听。
// 列表查询走 bbolt 索引，详情和相关推荐走服务层。
type Server struct {
	app *app.App
	log logrus.FieldLogger

	idxPath string
	idx     *index.Store

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(a *app.App, indexPath string) (*Server, error) {
	st, err := index.Open(index.OpenOptions{Path: indexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: open index: %w", err)
	}
	return &Server{
		app:     a,
		log:     a.Log.WithField("component", "serve"),
		idxPath: indexPath,
		idx:     st,
	}, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.app.Registry, promhttp.HandlerOpts{}))

	r.Get("/api/presentations", s.handleAllPresentations)
	r.Route("/api/{lang}", func(r chi.Router) {
		r.Use(s.langCtx)
		r.Get("/posts", s.handlePosts)
		r.Get("/posts/{slug}", s.handlePost)
		r.Get("/posts/{slug}/related", s.handleRelated)
		r.Get("/tags", s.handleTags)
		r.Get("/presentations", s.handlePresentations)
		r.Get("/presentations/{slug}", s.handlePresentation)
		r.Get("/presentations/{slug}/similar", s.handleSimilar)
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// rebuild 拉全部博文重建索引，顺带焐热构建缓存
func (s *Server) rebuild(ctx context.Context) error {
	posts, err := s.app.LoadAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	if err := s.idx.Rebuild(posts, index.RebuildOptions{
		IncludeDraft: s.app.Cfg.Content.IncludeDraft,
	}); err != nil {
		return fmt.Errorf("index rebuild: %w", err)
	}
	s.log.WithField("posts", len(posts)).Info("index rebuilt")
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		go s.watchLoop(ctx)

		err = filepath.Walk(s.app.Cfg.Content.Dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.Add(path)
			}
			return nil
		})
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for content changes")
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				// 新目录也要加进监听
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = s.watcher.Add(ev.Name)
					}
				}
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.WithError(err).Warn("watch error")
		case <-debounce.C:
			debounce.Stop()
			s.app.InvalidateContent()
			if err := s.rebuild(ctx); err != nil {
				s.log.WithError(err).Error("rebuild after content change failed")
			}
		}
	}
}

// ===== handlers =====

type langKey struct{}

// langCtx 校验路径里的语言段
func (s *Server) langCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")
		for _, known := range s.app.Cfg.Content.Languages {
			if lang == known {
				ctx := context.WithValue(r.Context(), langKey{}, lang)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown language %q", lang))
	})
}

func lang(r *http.Request) string {
	l, _ := r.Context().Value(langKey{}).(string)
	return l
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opt := index.ListOptions{
		IncludeDraft: s.app.Cfg.Content.IncludeDraft,
	}
	opt.Page, _ = strconv.Atoi(q.Get("page"))
	opt.Size, _ = strconv.Atoi(q.Get("size"))

	if q.Get("featured") == "true" {
		items, err := s.app.Posts.ListFeatured(r.Context(), lang(r))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, items)
		return
	}

	var posts []content.BlogPost
	var err error
	switch {
	case q.Get("tag") != "":
		posts, err = s.idx.ListByTag(lang(r), q.Get("tag"), opt)
	case q.Get("category") != "":
		posts, err = s.idx.ListByCategory(lang(r), q.Get("category"), opt)
	default:
		posts, err = s.idx.List(lang(r), opt)
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, service.ToPostListItems(posts))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	d, err := s.app.Posts.Get(r.Context(), chi.URLParam(r, "slug"), lang(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if d == nil {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	scored, err := s.app.Posts.RelatedWithScores(r.Context(), chi.URLParam(r, "slug"), lang(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scored == nil {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}

	type scoredView struct {
		Post    service.PostListItem `json:"post"`
		Score   int                  `json:"score"`
		Reasons []string             `json:"reasons"`
	}
	out := make([]scoredView, len(scored))
	for i, sc := range scored {
		out[i] = scoredView{
			Post:    service.ToPostListItems([]content.BlogPost{sc.Item})[0],
			Score:   sc.Score,
			Reasons: sc.Reasons,
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	opt := service.TagCountOptions{}
	q := r.URL.Query()
	opt.MinCount, _ = strconv.Atoi(q.Get("min"))
	opt.Limit, _ = strconv.Atoi(q.Get("limit"))
	if sb := q.Get("sort"); sb != "" {
		opt.SortBy = service.TagSort(sb)
	}

	counts, err := s.app.Posts.TagCounts(r.Context(), lang(r), opt)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleAllPresentations(w http.ResponseWriter, r *http.Request) {
	items, err := s.app.Presentations.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handlePresentations(w http.ResponseWriter, r *http.Request) {
	if blogSlug := r.URL.Query().Get("relatedBlogPost"); blogSlug != "" {
		items, err := s.app.Presentations.ForBlogPost(r.Context(), blogSlug, lang(r))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, items)
		return
	}
	items, err := s.app.Presentations.ListByLanguage(r.Context(), lang(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	d, err := s.app.Presentations.Get(r.Context(), chi.URLParam(r, "slug"), lang(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if d == nil {
		s.writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))
	items, err := s.app.Presentations.GetSimilar(r.Context(), chi.URLParam(r, "slug"), lang(r), max)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []service.PresentationListItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}
