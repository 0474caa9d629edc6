package index

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store 是发布内容的查询索引，开发服务器的读路径走这里。
// 构建时整体重建，查询只读。
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. ".belajar/index.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("index: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var (
	bPosts  = []byte("posts")   // lang 子桶: slug -> post JSON
	bIdxPub = []byte("idx_pub") // lang 子桶: invTime+0x00+slug
	bIdxTag = []byte("idx_tag") // lang\x00tagSlug 子桶
	bIdxCat = []byte("idx_cat") // lang\x00category 子桶
)

// 子桶名：lang 和维度值用 0x00 隔开
func subName(lang, value string) []byte {
	buf := make([]byte, 0, len(lang)+1+len(value))
	buf = append(buf, lang...)
	buf = append(buf, 0x00)
	buf = append(buf, value...)
	return buf
}
