package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "belajar/internal/domain/errors"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty title", func(c *Config) { c.Site.Title = " " }, "site.title"},
		{"bad site url", func(c *Config) { c.Site.SiteURL = "not-a-url" }, "site.site_url"},
		{"relative site url", func(c *Config) { c.Site.SiteURL = "/blog" }, "site.site_url"},
		{"no languages", func(c *Config) { c.Content.Languages = nil }, "content.languages"},
		{"duplicate language", func(c *Config) { c.Content.Languages = []string{"en", "en"} }, "content.languages"},
		{"empty language entry", func(c *Config) { c.Content.Languages = []string{"en", ""} }, "content.languages"},
		{"default language missing", func(c *Config) { c.Site.DefaultLanguage = "fr" }, "site.default_language"},
		{"negative weight", func(c *Config) { c.Related.SharedTagWeight = -1 }, "related"},
		{"zero max results", func(c *Config) { c.Related.MaxResults = 0 }, "related.max_results"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerr.ErrInvalid)

			var ve domainerr.ValidationError
			require.ErrorAs(t, err, &ve)
			found := false
			for _, f := range ve.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "expected a %s field error, got %v", tc.field, ve.Fields)
		})
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  title: Belajar Bersama
  site_url: https://belajar.example.com
serve:
  addr: ":9090"
related:
  max_results: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Belajar Bersama", cfg.Site.Title)
	assert.Equal(t, ":9090", cfg.Serve.Addr)
	assert.Equal(t, 5, cfg.Related.MaxResults)
	// 没写到的字段保留默认
	assert.Equal(t, []string{"en", "id"}, cfg.Content.Languages)
	assert.Equal(t, 3, cfg.Related.SharedTagWeight)
}

func TestLoad_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: \"\"\n"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, domainerr.ErrInvalid)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
