package learn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"design-mentor/api/internal/groq"
	"design-mentor/api/internal/util"
)

// VisionAnalyzer — контракт vision-вызова с фоллбэком (groq.Client).
type VisionAnalyzer interface {
	Vision(ctx context.Context, system, user, imageB64 string) (string, error)
}

// Verifier спрашивает vision-модель, выполнен ли шаг, по скриншоту экрана.
type Verifier struct {
	vision VisionAnalyzer
}

func NewVerifier(vision VisionAnalyzer) *Verifier {
	return &Verifier{vision: vision}
}

// Verify никогда не отдаёт ошибку наружу: проверка живёт в тесном
// интерактивном цикле, и прерывание хуже неуверенного ответа. Любой сбой
// деградирует в completed=false с объяснением.
func (v *Verifier) Verify(ctx context.Context, step LessonStep, screenshotB64 string) VerificationResult {
	user := fmt.Sprintf(verifierUserPrompt, step.Instruction, step.SuccessCriteria)

	text, err := v.vision.Vision(ctx, visionVerifierSystemPrompt, user, screenshotB64)
	if err != nil {
		return degrade(err)
	}

	var out struct {
		Completed  *bool    `json:"completed"`
		Feedback   string   `json:"feedback"`
		Confidence *float64 `json:"confidence"`
	}
	if err := decodeVerifierJSON(text, &out); err != nil {
		return VerificationResult{
			Completed:  false,
			Feedback:   "Unable to analyze the screen (JSON parse error). Please try again.",
			Confidence: 0,
		}
	}

	res := VerificationResult{Feedback: "Keep going!", Confidence: 0.5}
	if out.Completed != nil {
		res.Completed = *out.Completed
	}
	if out.Feedback != "" {
		res.Feedback = out.Feedback
	}
	if out.Confidence != nil {
		res.Confidence = *out.Confidence
	}
	return res
}

// decodeVerifierJSON — как у планировщика, но восстановление ленивое:
// модели любят дописывать текст после JSON-объекта.
func decodeVerifierJSON(text string, v any) error {
	s := util.StripCodeFences(text)
	strictErr := json.Unmarshal([]byte(s), v)
	if strictErr == nil {
		return nil
	}
	obj, ok := util.ExtractJSONObjectLazy(s)
	if !ok {
		return &ParseError{Err: strictErr}
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// degrade переводит типизированные ошибки groq в рендерящийся результат.
// Перечисление явное: новая разновидность сбоя — осознанное решение здесь,
// а не поведение, унаследованное от catch-all.
func degrade(err error) VerificationResult {
	var (
		upstream    *groq.UpstreamError
		allFailed   *groq.AllModelsFailedError
		unavailable *groq.ModelUnavailableError
	)

	var feedback string
	switch {
	case errors.Is(err, groq.ErrNotConfigured):
		feedback = "Vision analysis is not configured on the server (missing API key)."
	case errors.As(err, &upstream):
		feedback = fmt.Sprintf("API Error: %s", upstream.Error())
	case errors.As(err, &allFailed):
		feedback = fmt.Sprintf("Vision analysis unavailable: %s", allFailed.Error())
	case errors.As(err, &unavailable):
		// Сюда попадать не должно: этот тип гасится внутри фоллбэка.
		feedback = fmt.Sprintf("Vision analysis unavailable: %s", unavailable.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		feedback = "Vision analysis timed out. Please try again."
	default:
		feedback = fmt.Sprintf("Vision analysis unavailable. (%s)", truncate(err.Error(), 50))
	}
	return VerificationResult{Completed: false, Feedback: feedback, Confidence: 0}
}

// truncate режет по границе руны: фидбек уходит в JSON как есть,
// битый UTF-8 недопустим.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
