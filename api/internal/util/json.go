package util

import (
	"regexp"
	"strings"
)

var (
	// Жадный вариант: от первой '{' до последней '}'.
	reJSONObject = regexp.MustCompile(`\{[\s\S]*\}`)
	// Ленивый вариант: останавливается на первой '}', терпит хвостовой мусор.
	reJSONObjectLazy = regexp.MustCompile(`\{[\s\S]*?\}`)
)

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObject вытаскивает первый {...} из произвольного текста модели.
func ExtractJSONObject(s string) (string, bool) {
	m := reJSONObject.FindString(s)
	return m, m != ""
}

// ExtractJSONObjectLazy — то же, но для ответов с текстом после объекта.
func ExtractJSONObjectLazy(s string) (string, bool) {
	m := reJSONObjectLazy.FindString(s)
	return m, m != ""
}
