package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"time"
)

// contentHash 算 key 的新鲜度指纹。内容分区 key 用源目录的
// mtime+size；其余 key 用当前时间戳——下次查询必然不相等，
// 等于这类 key 设计上就不可缓存。
func (c *Cache) contentHash(key string) string {
	dir, ok := c.partitions[key]
	if !ok {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	fp, err := dirFingerprint(dir)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache: fingerprint failed, treating as uncacheable")
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return fp
}

// dirFingerprint 目录指纹：总字节数 + 最新 mtime，sha256 成十六进制。
// 便宜，够用——内容变了这两个数几乎必变。
func dirFingerprint(dir string) (string, error) {
	var totalSize int64
	var latest int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		totalSize += info.Size()
		if mt := info.ModTime().UnixNano(); mt > latest {
			latest = mt
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	h := sha256.New()
	fmt.Fprintf(h, "%d|%d", totalSize, latest)
	return hex.EncodeToString(h.Sum(nil)), nil
}
