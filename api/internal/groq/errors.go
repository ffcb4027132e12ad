package groq

import (
	"errors"
	"fmt"
)

// ErrNotConfigured — отсутствует GROQ_API_KEY. Фатально для вызова, но сервис
// остаётся жив: /api/learn/health должен уметь сообщить groq_configured=false.
var ErrNotConfigured = errors.New("GROQ_API_KEY not configured")

// UpstreamError — не-2xx от Groq, не классифицированный как вывод модели из
// эксплуатации: неверный ключ, квота, 5xx. Такие ошибки общие для эндпоинта,
// перебор других имён моделей им не поможет.
type UpstreamError struct {
	StatusCode int
	Model      string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("groq api error (%s): %d: %s", e.Model, e.StatusCode, e.Body)
}

// ModelUnavailableError — провайдер снял модель с эксплуатации. Внутренний
// сигнал фоллбэка, наружу не отдаётся.
type ModelUnavailableError struct {
	Model string
	Body  string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s decommissioned or not found: %s", e.Model, e.Body)
}

// AllModelsFailedError — исчерпан весь список кандидатов.
type AllModelsFailedError struct {
	Last error // последняя зафиксированная причина
}

func (e *AllModelsFailedError) Error() string {
	return fmt.Sprintf("all vision models failed, last error: %v", e.Last)
}

func (e *AllModelsFailedError) Unwrap() error { return e.Last }
