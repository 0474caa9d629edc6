package content

import (
	"strings"
	"time"
)

// Record 是内容加载层产出的原始条目，对本层只读。
// JSON tag 是给构建缓存持久化用的。
type Record struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Collection string     `json:"collection"` // blog-en / blog-id
	Data       RecordData `json:"data"`
}

type RecordData struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PubDate     time.Time `json:"pubDate"`
	Updated     time.Time `json:"updated,omitempty"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Draft       bool      `json:"draft"`
	Featured    bool      `json:"featured"`
	Language    string    `json:"language"`
	WordCount   int       `json:"wordCount"`
	ReadMinutes int       `json:"readMinutes"`
	SourcePath  string    `json:"sourcePath"`
}

// Language 从 collection 分区推导（blog-en -> en），data 里显式写了则优先
func (r Record) Language() string {
	if l := strings.TrimSpace(r.Data.Language); l != "" {
		return l
	}
	if i := strings.LastIndexByte(r.Collection, '-'); i >= 0 {
		return r.Collection[i+1:]
	}
	return ""
}
