package util

import "strings"

// EnsureDataURL добавляет префикс data:image/jpeg;base64, если клиент прислал
// голую base64-строку. Готовый data:URI не трогаем.
func EnsureDataURL(b64 string) string {
	s := strings.TrimSpace(b64)
	if strings.HasPrefix(s, "data:") {
		return s
	}
	return "data:image/jpeg;base64," + s
}
