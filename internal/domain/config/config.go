package config

import (
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domainerr "belajar/internal/domain/errors"
)

type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Cache   CacheConfig   `yaml:"cache"`
	Serve   ServeConfig   `yaml:"serve"`
	Related RelatedConfig `yaml:"related"`
}

type SiteConfig struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	Author          string `yaml:"author"`
	SiteURL         string `yaml:"site_url"`
	DefaultLanguage string `yaml:"default_language"`
}

type ContentConfig struct {
	Dir          string   `yaml:"dir"`
	Languages    []string `yaml:"languages"`
	IncludeDraft bool     `yaml:"include_draft"`
}

type CacheConfig struct {
	Dir string `yaml:"dir"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// RelatedConfig 相关内容打分权重
type RelatedConfig struct {
	SharedTagWeight      int `yaml:"shared_tag_weight"`
	SameCategoryWeight   int `yaml:"same_category_weight"`
	SameDifficultyWeight int `yaml:"same_difficulty_weight"`
	MinScore             int `yaml:"min_score"`
	MaxResults           int `yaml:"max_results"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:           "Belajar",
			DefaultLanguage: "id",
		},
		Content: ContentConfig{
			Dir:       "content",
			Languages: []string{"en", "id"},
		},
		Cache: CacheConfig{
			Dir: ".belajar/cache",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
		Related: RelatedConfig{
			SharedTagWeight:      3,
			SameCategoryWeight:   2,
			SameDifficultyWeight: 1,
			MinScore:             1,
			MaxResults:           3,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if u := strings.TrimSpace(c.Site.SiteURL); u != "" && !isValidAbsURL(u) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Content.Dir) == "" {
		ve.Add("content.dir", "must not be empty")
	}
	if len(c.Content.Languages) == 0 {
		ve.Add("content.languages", "must list at least one language")
	}
	seen := make(map[string]struct{}, len(c.Content.Languages))
	for _, lang := range c.Content.Languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			ve.Add("content.languages", "must not contain empty entries")
			continue
		}
		if _, ok := seen[lang]; ok {
			ve.Addf("content.languages", "duplicate language %q", lang)
		}
		seen[lang] = struct{}{}
	}
	if dl := strings.TrimSpace(c.Site.DefaultLanguage); dl != "" {
		if _, ok := seen[dl]; !ok && len(seen) > 0 {
			ve.Addf("site.default_language", "%q is not in content.languages", dl)
		}
	}

	if strings.TrimSpace(c.Cache.Dir) == "" {
		ve.Add("cache.dir", "must not be empty")
	}
	if strings.TrimSpace(c.Serve.Addr) == "" {
		ve.Add("serve.addr", "must not be empty")
	}

	if c.Related.SharedTagWeight < 0 || c.Related.SameCategoryWeight < 0 || c.Related.SameDifficultyWeight < 0 {
		ve.Add("related", "weights must not be negative")
	}
	if c.Related.MaxResults <= 0 {
		ve.Add("related.max_results", "must be positive")
	}

	return ve.ErrOrNil()
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Load 读文件、覆盖默认值、校验。文件里写到的字段覆盖 Default，其余保留。
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault 文件不存在时退回默认配置
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}
