package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// 阅读速度：教学向文章按 200 词/分钟估
const wordsPerMinute = 200

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// CountWords 走 goldmark AST 只数正文文本，代码块和标记符号不算进字数
func CountWords(body []byte) int {
	reader := text.NewReader(body)
	doc := mdParser.Parser().Parse(reader)

	words := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			words += len(strings.Fields(string(t.Segment.Value(body))))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return words
}

// ReadMinutes 向上取整，非空正文至少 1 分钟
func ReadMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
