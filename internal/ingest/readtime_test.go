package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords_SkipsCodeBlocks(t *testing.T) {
	body := []byte("# Judul\n\nsatu dua tiga\n\n```go\nfmt.Println(\"not counted here\")\n```\n\nempat lima")
	// Judul + satu dua tiga + empat lima = 6
	assert.Equal(t, 6, CountWords(body))
}

func TestCountWords_Empty(t *testing.T) {
	assert.Equal(t, 0, CountWords(nil))
	assert.Equal(t, 0, CountWords([]byte("```\nonly code\n```")))
}

func TestReadMinutes(t *testing.T) {
	assert.Equal(t, 0, ReadMinutes(0))
	assert.Equal(t, 1, ReadMinutes(1))
	assert.Equal(t, 1, ReadMinutes(200))
	assert.Equal(t, 2, ReadMinutes(201))
}

func TestCountWords_LongBody(t *testing.T) {
	body := []byte(strings.Repeat("kata ", 450))
	words := CountWords(body)
	assert.Equal(t, 450, words)
	assert.Equal(t, 3, ReadMinutes(words))
}
