package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"belajar/internal/domain/content"
)

type RebuildOptions struct {
	IncludeDraft bool
}

// Rebuild 一个事务里整体重建：先删桶再灌。posts 可以混多语言，
// 按 post.Language 分流。
func (s *Store) Rebuild(posts []content.BlogPost, opt RebuildOptions) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bPosts)
		_ = tx.DeleteBucket(bIdxPub)
		_ = tx.DeleteBucket(bIdxTag)
		_ = tx.DeleteBucket(bIdxCat)

		postsB, _ := tx.CreateBucket(bPosts)
		idxPubB, _ := tx.CreateBucket(bIdxPub)
		idxTagB, _ := tx.CreateBucket(bIdxTag)
		idxCatB, _ := tx.CreateBucket(bIdxCat)

		for _, p := range posts {
			if p.Draft && !opt.IncludeDraft {
				continue
			}
			lang := strings.TrimSpace(p.Language)
			slug := strings.TrimSpace(p.Slug)
			if lang == "" || slug == "" {
				continue
			}

			raw, err := json.Marshal(p)
			if err != nil {
				return err
			}
			langB, err := postsB.CreateBucketIfNotExists([]byte(lang))
			if err != nil {
				return err
			}
			if err := langB.Put([]byte(slug), raw); err != nil {
				return err
			}

			key := makePubKey(p.PubDate.UnixNano(), slug)
			pubB, err := idxPubB.CreateBucketIfNotExists([]byte(lang))
			if err != nil {
				return err
			}
			if err := pubB.Put(key, []byte{1}); err != nil {
				return err
			}

			for _, t := range p.Tags {
				sb, err := idxTagB.CreateBucketIfNotExists(subName(lang, t.Slug))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			if cat := p.Category.String(); cat != "" {
				sb, err := idxCatB.CreateBucketIfNotExists(subName(lang, cat))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
