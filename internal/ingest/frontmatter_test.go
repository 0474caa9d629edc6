package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	raw := []byte(`---
title: Belajar Go
pubDate: "2025-06-01"
tags:
  - go
  - web
category: programming
draft: true
---

# Isi

Paragraf pertama.`)

	fm, body, err := ParseFrontMatter(raw)
	require.NoError(t, err)
	assert.Equal(t, "Belajar Go", fm.Title)
	assert.Equal(t, "2025-06-01", fm.PubDate)
	assert.Equal(t, []string{"go", "web"}, fm.Tags)
	assert.Equal(t, "programming", fm.Category)
	assert.True(t, fm.Draft)
	assert.Contains(t, string(body), "Paragraf pertama.")
	assert.NotContains(t, string(body), "---")
}

func TestParseFrontMatter_CRLF(t *testing.T) {
	raw := []byte("---\r\ntitle: Windows\r\n---\r\nbody")
	fm, body, err := ParseFrontMatter(raw)
	require.NoError(t, err)
	assert.Equal(t, "Windows", fm.Title)
	assert.Equal(t, "body", string(body))
}

func TestParseFrontMatter_NoHeader(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("# just markdown"))
	assert.ErrorIs(t, err, errNoFrontMatter)

	_, _, err = ParseFrontMatter(nil)
	assert.ErrorIs(t, err, errNoFrontMatter)
}

func TestParseFrontMatter_Unclosed(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: Broken\nbody without closing"))
	assert.ErrorIs(t, err, errInvalidFrontMatter)
}

func TestParseFrontMatter_NoBody(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("---\ntitle: Header Only\n---"))
	require.NoError(t, err)
	assert.Equal(t, "Header Only", fm.Title)
	assert.Empty(t, body)

	fm, body, err = ParseFrontMatter([]byte("---\n---"))
	require.NoError(t, err)
	assert.Zero(t, fm)
	assert.Empty(t, body)
}

func TestParseTime(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		ParseTime("2025-06-01"))
	assert.Equal(t,
		time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local),
		ParseTime("2025-06-01 09:30"))
	assert.True(t, ParseTime("not a date").IsZero())
	assert.True(t, ParseTime("").IsZero())

	rfc := ParseTime("2025-06-01T12:00:00Z")
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rfc.UTC())
}
