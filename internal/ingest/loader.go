package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"belajar/internal/domain/content"
)

// Loader 把 blog-{lang} 目录下的 markdown 变成原始内容条目。
// 它就是仓库层消费的"内容集合"：批量加载坏一条跳一条，只记日志。
type Loader struct {
	root string
	log  logrus.FieldLogger
}

func NewLoader(root string, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{
		root: root,
		log:  log.WithField("component", "ingest"),
	}
}

type result struct {
	record content.Record
	skip   bool
	err    error
}

// Records 加载一个集合（如 "blog-en"）的全部条目，按 ID 排序返回
func (l *Loader) Records(ctx context.Context, collection string) ([]content.Record, error) {
	dir := filepath.Join(l.root, collection)
	files, err := DiscoverSource(dir)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", collection, err)
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				results <- l.loadOne(collection, sf)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var out []content.Record
	for r := range results {
		if r.err != nil {
			// IO 层面的错误终止整批
			return nil, r.err
		}
		if r.skip {
			continue
		}
		out = append(out, r.record)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// worker 乱序产出，排稳
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	// slug 冲突留先到的
	seen := make(map[string]struct{}, len(out))
	filtered := out[:0]
	for _, rec := range out {
		if _, ok := seen[rec.Slug]; ok {
			l.log.WithFields(logrus.Fields{"collection": collection, "slug": rec.Slug}).
				Warn("duplicate slug, skipping")
			continue
		}
		seen[rec.Slug] = struct{}{}
		filtered = append(filtered, rec)
	}
	return filtered, nil
}

func (l *Loader) loadOne(collection string, sf SourceFile) result {
	st, err := os.Stat(sf.Path)
	if err != nil {
		return result{err: err}
	}
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return result{err: err}
	}

	fm, body, fmErr := ParseFrontMatter(raw)
	if fmErr != nil {
		l.log.WithError(fmErr).WithField("path", sf.Path).Warn("front matter did not parse, skipping")
		return result{skip: true}
	}

	id := filepath.Base(sf.Path)
	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = content.Slugify(fm.Title)
	}
	if slug == "" {
		slug = content.Slugify(strings.TrimSuffix(id, filepath.Ext(id)))
	}
	if slug == "" {
		l.log.WithField("path", sf.Path).Warn("empty slug, skipping")
		return result{skip: true}
	}

	pub := ParseTime(fm.PubDate)
	if pub.IsZero() {
		// 没写 pubDate 就退回文件修改时间
		pub = st.ModTime().In(time.Local)
		l.log.WithField("path", sf.Path).Warn("using file modification time for pubDate")
	}
	updated := ParseTime(fm.Updated)

	words := CountWords(body)

	return result{record: content.Record{
		ID:         id,
		Slug:       slug,
		Collection: collection,
		Data: content.RecordData{
			Title:       fm.Title,
			Description: fm.Description,
			PubDate:     pub,
			Updated:     updated,
			Author:      fm.Author,
			Tags:        fm.Tags,
			Category:    fm.Category,
			Difficulty:  fm.Difficulty,
			Draft:       fm.Draft,
			Featured:    fm.Featured,
			Language:    fm.Language,
			WordCount:   words,
			ReadMinutes: ReadMinutes(words),
			SourcePath:  sf.Path,
		},
	}}
}
