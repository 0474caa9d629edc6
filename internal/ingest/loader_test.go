package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeMarkdown(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Records(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog-en")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	writeMarkdown(t, dir, "b-post.md", `---
title: Second Post
pubDate: "2025-06-02"
tags: [go]
---
satu dua tiga`)
	writeMarkdown(t, dir, "a-post.md", `---
title: First Post
pubDate: "2025-06-01"
slug: custom-slug
---
body here`)
	writeMarkdown(t, dir, "notes.txt", "not markdown, ignored")

	l := NewLoader(root, testLogger())
	recs, err := l.Records(context.Background(), "blog-en")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// worker 乱序产出，结果按 ID 排稳
	assert.Equal(t, "a-post.md", recs[0].ID)
	assert.Equal(t, "custom-slug", recs[0].Slug)
	assert.Equal(t, "b-post.md", recs[1].ID)
	assert.Equal(t, "second-post", recs[1].Slug)
	assert.Equal(t, 3, recs[1].Data.WordCount)
	assert.Equal(t, 1, recs[1].Data.ReadMinutes)
	assert.Equal(t, "en", recs[1].Language())
}

func TestLoader_SkipsBadFrontMatter(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog-en")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	writeMarkdown(t, dir, "good.md", "---\ntitle: Good\npubDate: \"2025-06-01\"\n---\nbody")
	writeMarkdown(t, dir, "bad.md", "no front matter at all")

	l := NewLoader(root, testLogger())
	recs, err := l.Records(context.Background(), "blog-en")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "good.md", recs[0].ID)
}

func TestLoader_DuplicateSlugFirstWins(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog-en")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	writeMarkdown(t, dir, "a.md", "---\ntitle: Same Title\npubDate: \"2025-06-01\"\n---\nx")
	writeMarkdown(t, dir, "b.md", "---\ntitle: Same Title\npubDate: \"2025-06-02\"\n---\ny")

	l := NewLoader(root, testLogger())
	recs, err := l.Records(context.Background(), "blog-en")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.md", recs[0].ID)
}

func TestLoader_PubDateFallsBackToModTime(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "blog-en")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	writeMarkdown(t, dir, "nodate.md", "---\ntitle: No Date\n---\nbody")

	l := NewLoader(root, testLogger())
	recs, err := l.Records(context.Background(), "blog-en")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Data.PubDate.IsZero())
}

func TestLoader_MissingDir(t *testing.T) {
	l := NewLoader(t.TempDir(), testLogger())
	recs, err := l.Records(context.Background(), "blog-xx")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
