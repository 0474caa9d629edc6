package content

import (
	"strings"
	"unicode"
)

// Slugify 把任意标签/标题规范成 slug：小写、空白转连字符、
// 丢弃其余符号、折叠连字符。"C++" 特例成 "cpp"。
// 对自身幂等：Slugify(Slugify(x)) == Slugify(x)。
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "++", "pp")

	var out []rune
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			out = append(out, r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-':
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		default:
			// 其余符号直接丢弃，不转连字符
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// titleFromSlug 给没有元数据的标签生成展示名："linear-algebra" -> "Linear Algebra"
func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
