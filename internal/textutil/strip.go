package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags убирает HTML-теги и оставляет только текст (entity раскрываются).
// Используется только при выводе, в базе описание хранится как есть.
func StripTags(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); isRaw(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRaw(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// содержимое script/style текстом не считаем
func isRaw(tag []byte) bool {
	t := string(tag)
	return t == "script" || t == "style"
}
