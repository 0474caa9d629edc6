package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"belajar/internal/domain/content"
	domainerr "belajar/internal/domain/errors"
)

type ListOptions struct {
	Page         int
	Size         int
	IncludeDraft bool
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func (s *Store) GetBySlug(lang, slug string) (content.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.BlogPost{}, domainerr.ErrNotFound
	}
	var p content.BlogPost
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(bPosts)
		if parent == nil {
			return domainerr.ErrNotFound
		}
		b := parent.Bucket([]byte(lang))
		if b == nil {
			return domainerr.ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return domainerr.ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

// List 发布时间倒序翻页
func (s *Store) List(lang string, opt ListOptions) ([]content.BlogPost, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.BlogPost
	err := s.db.View(func(tx *bolt.Tx) error {
		idxParent := tx.Bucket(bIdxPub)
		postsParent := tx.Bucket(bPosts)
		if idxParent == nil || postsParent == nil {
			return nil
		}
		idx := idxParent.Bucket([]byte(lang))
		metaB := postsParent.Bucket([]byte(lang))
		if idx == nil || metaB == nil {
			return nil
		}
		out = collect(idx, metaB, opt)
		return nil
	})
	return out, err
}

func (s *Store) ListByTag(lang, tag string, opt ListOptions) ([]content.BlogPost, error) {
	tag = content.Slugify(tag)
	if tag == "" {
		return nil, nil
	}
	return s.listBySub(bIdxTag, lang, tag, opt)
}

func (s *Store) ListByCategory(lang, cat string, opt ListOptions) ([]content.BlogPost, error) {
	cat = strings.TrimSpace(cat)
	if cat == "" {
		return nil, nil
	}
	return s.listBySub(bIdxCat, lang, cat, opt)
}

func (s *Store) listBySub(parentName []byte, lang, value string, opt ListOptions) ([]content.BlogPost, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.BlogPost
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(parentName)
		postsParent := tx.Bucket(bPosts)
		if parent == nil || postsParent == nil {
			return nil
		}
		sb := parent.Bucket(subName(lang, value))
		metaB := postsParent.Bucket([]byte(lang))
		if sb == nil || metaB == nil {
			return nil
		}
		out = collect(sb, metaB, opt)
		return nil
	})
	return out, err
}

// collect 游标正序扫（key 里时间已取反），翻页靠 skip
func collect(idx, metaB *bolt.Bucket, opt ListOptions) []content.BlogPost {
	var out []content.BlogPost
	skip := (opt.Page - 1) * opt.Size

	cur := idx.Cursor()
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		slug := slugFromPubKey(k)
		if slug == "" {
			continue
		}
		v := metaB.Get([]byte(slug))
		if v == nil {
			continue
		}
		var p content.BlogPost
		if err := json.Unmarshal(v, &p); err != nil {
			continue
		}
		if p.Draft && !opt.IncludeDraft {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, p)
		if len(out) >= opt.Size {
			break
		}
	}
	return out
}
