package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// 磁盘格式：{ entries, stats, lastUpdated }，旁边维护一个 .bak，
// 只写不读——恢复不靠它，每次写之前把旧文件挪过去而已。
type fileFormat struct {
	Entries     map[string]Entry `json:"entries"`
	Stats       fileStats        `json:"stats"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

type fileStats struct {
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Invalidations uint64 `json:"invalidations"`
}

// load 构造时读一次。文件缺失或解析失败都从空开始，不报错。
func (c *Cache) load() {
	if c.path == "" {
		return
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.WithError(err).Warn("cache: load failed, starting empty")
		}
		return
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.WithError(err).Warn("cache: persisted file did not parse, starting empty")
		return
	}
	if f.Entries != nil {
		c.entries = f.Entries
	}
	c.hits = f.Stats.Hits
	c.misses = f.Stats.Misses
	c.invalidations = f.Stats.Invalidations
}

// persistLocked 写临时文件再 rename。失败只记日志，永不上抛。
// 跨进程没有锁：谁的 rename 后到谁赢，丢一条缓存顶多多算一次。
func (c *Cache) persistLocked() {
	if c.path == "" {
		return
	}
	f := fileFormat{
		Entries: c.entries,
		Stats: fileStats{
			Hits:          c.hits,
			Misses:        c.misses,
			Invalidations: c.invalidations,
		},
		LastUpdated: time.Now(),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		c.log.WithError(err).Warn("cache: marshal failed, skipping persist")
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		c.log.WithError(err).Warn("cache: mkdir failed, skipping persist")
		return
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		c.log.WithError(err).Warn("cache: write failed, skipping persist")
		return
	}

	bak := c.path + ".bak"
	if _, err := os.Stat(c.path); err == nil {
		_ = os.Remove(bak)
		if err := os.Rename(c.path, bak); err != nil {
			c.log.WithError(err).Warn("cache: backup rotate failed")
		}
	}
	if err := os.Rename(tmp, c.path); err != nil {
		c.log.WithError(err).Warn("cache: rename failed, cache file may be stale")
	}
}
