package ingest

import (
	"bytes"
	"errors"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errNoFrontMatter      = errors.New("no front matter found")
	errInvalidFrontMatter = errors.New("invalid front matter")
)

// FrontMatter 博文头部的 YAML 字段
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	Updated     string   `yaml:"updated"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	Difficulty  string   `yaml:"difficulty"`
	Draft       bool     `yaml:"draft"`
	Featured    bool     `yaml:"featured"`
	Language    string   `yaml:"language"`
	Slug        string   `yaml:"slug"`
}

// ParseFrontMatter 剥掉 "---" 包住的 YAML 头，返回头部和正文
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return FrontMatter{}, raw, errNoFrontMatter
	}

	// 统一换行符
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return FrontMatter{}, raw, errNoFrontMatter
	}
	rest := norm[len(sepLine):]

	var yamlPart, bodyPart []byte
	if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		yamlPart = parts[0]
		bodyPart = parts[1]
	} else if bytes.HasSuffix(rest, []byte("\n"+sep)) {
		// 结尾是 "---" 且没有正文
		yamlPart = rest[:len(rest)-len("\n"+sep)]
	} else if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
		// "---\n---"：空头部，无正文
	} else {
		return FrontMatter{}, raw, errInvalidFrontMatter
	}

	yamlPart = bytes.TrimSpace(yamlPart)
	bodyPart = bytes.TrimSpace(bodyPart)

	var fm FrontMatter
	if len(yamlPart) > 0 {
		if err := yaml.Unmarshal(yamlPart, &fm); err != nil {
			return FrontMatter{}, raw, err
		}
	}
	return fm, bodyPart, nil
}

// ParseTime 按常见排版逐个试，都不行返回零值
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
