package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"belajar/internal/metrics"
)

// Cache 在多个构建进程之间通过磁盘文件共享的 key -> JSON 值备忘录。
// 磁盘只是尽力而为：读写失败一律记日志吞掉，内存才是本进程的事实来源。
type Cache struct {
	path       string
	partitions map[string]string
	log        logrus.FieldLogger
	metrics    *metrics.CacheMetrics

	mu            sync.Mutex
	entries       map[string]Entry
	hits          uint64
	misses        uint64
	invalidations uint64

	group singleflight.Group
}

type Entry struct {
	Value       json.RawMessage `json:"value"`
	Timestamp   time.Time       `json:"timestamp"`
	ContentHash string          `json:"contentHash"`
}

type Stats struct {
	Size          int     `json:"size"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	HitRate       float64 `json:"hitRate"`
	Invalidations uint64  `json:"invalidations"`
}

type Options struct {
	// Path 持久化文件，如 .belajar/cache/build-cache.json
	Path string
	// Partitions 内容分区 key -> 源目录。这些 key 的指纹取目录的
	// mtime+size；其余 key 的指纹取当前时间戳，等于下次永不新鲜。
	Partitions map[string]string
	Log        logrus.FieldLogger
	Metrics    *metrics.CacheMetrics
}

func New(opt Options) *Cache {
	log := opt.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Cache{
		path:       opt.Path,
		partitions: opt.Partitions,
		log:        log.WithField("component", "build-cache"),
		metrics:    opt.Metrics,
		entries:    make(map[string]Entry),
	}
	c.load()
	return c
}

// GetOrSet 新鲜就取缓存，否则跑 factory、存下来再返回。
// factory 出错不缓存，下次调用会重试。同 key 并发调用通过
// singleflight 合并成一次 factory 执行。
func GetOrSet[T any](ctx context.Context, c *Cache, key string, factory func(context.Context) (T, error)) (T, error) {
	var zero T

	hash := c.contentHash(key)
	if raw, ok := c.lookup(key, hash); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		// 反序列化不了的旧条目当 stale 丢掉
		c.discard(key)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// 合并窗口里可能已有人算完存好了
		hash := c.contentHash(key)
		if raw, ok := c.lookup(key, hash); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
			c.discard(key)
		}

		val, err := factory(ctx)
		if err != nil {
			return zero, err
		}
		raw, err := json.Marshal(val)
		if err != nil {
			// 存不进去就只退化成不缓存，值照常返回
			c.log.WithError(err).WithField("key", key).Warn("cache: value not serializable, skipping store")
			return val, nil
		}
		c.store(key, raw, hash)
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// lookup 命中返回存的值；哈希不一致按 stale 丢弃并落到 miss
func (c *Cache) lookup(key, hash string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.ContentHash != hash {
		delete(c.entries, key)
		c.invalidations++
		c.metrics.Invalidation()
		return nil, false
	}
	c.hits++
	c.metrics.Hit()
	// 每 10 次命中落一次盘，把统计带出去
	if c.hits%10 == 0 {
		c.persistLocked()
	}
	return e.Value, true
}

func (c *Cache) store(key string, raw json.RawMessage, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	c.metrics.Miss()
	c.entries[key] = Entry{
		Value:       raw,
		Timestamp:   time.Now(),
		ContentHash: hash,
	}
	c.persistLocked()
}

func (c *Cache) discard(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.invalidations++
		c.metrics.Invalidation()
	}
}

// Invalidate 显式移除一个 key，立即落盘
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.invalidations++
	c.metrics.Invalidation()
	c.persistLocked()
}

// Clear 清空条目并重置计数器，立即落盘
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	c.hits = 0
	c.misses = 0
	c.invalidations = 0
	c.persistLocked()
}

func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		Size:          len(c.entries),
		Hits:          c.hits,
		Misses:        c.misses,
		Invalidations: c.invalidations,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Persist 手动落盘（进程收尾用）
func (c *Cache) Persist() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.persistLocked()
}
