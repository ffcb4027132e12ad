package learn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"design-mentor/api/internal/util"
)

// Обрезаем исходник до разумного префикса, чтобы не раздувать запрос.
const maxSourceChars = 8000

const DefaultFramework = "tailwind"

// ErrNoSteps — модель вернула валидный JSON, но без единого шага.
var ErrNoSteps = errors.New("no steps generated in lesson plan")

// ParseError — ответ модели не удалось привести к JSON даже через
// восстановление первого {...} из текста.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse lesson plan response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TextGenerator — минимальный контракт текстовой генерации (groq.Client).
type TextGenerator interface {
	Text(ctx context.Context, system, user string) (string, error)
}

// Planner превращает блок разметки в упорядоченный план атомарных
// Figma-шагов.
type Planner struct {
	gen TextGenerator
}

func NewPlanner(gen TextGenerator) *Planner {
	return &Planner{gen: gen}
}

// Plan генерирует план урока по исходному коду. Ошибки генерации и разбора
// отдаются наружу жёстко: клиент покажет "попробуйте ещё раз".
func (p *Planner) Plan(ctx context.Context, htmlCode, framework string) (LessonPlan, error) {
	if framework == "" {
		framework = DefaultFramework
	}
	if len(htmlCode) > maxSourceChars {
		htmlCode = htmlCode[:maxSourceChars]
	}
	user := fmt.Sprintf(lessonPlannerUserPrompt, framework, htmlCode)

	text, err := p.gen.Text(ctx, lessonPlannerSystemPrompt, user)
	if err != nil {
		return LessonPlan{}, err
	}

	var out struct {
		Steps                []LessonStep `json:"steps"`
		EstimatedTimeMinutes int          `json:"estimated_time_minutes"`
	}
	if err := decodePlannerJSON(text, &out); err != nil {
		return LessonPlan{}, err
	}
	if len(out.Steps) == 0 {
		return LessonPlan{}, ErrNoSteps
	}

	est := out.EstimatedTimeMinutes
	if est <= 0 {
		// Грубая эвристика: минута на шаг.
		est = len(out.Steps)
	}
	return LessonPlan{
		Steps:                out.Steps,
		TotalSteps:           len(out.Steps),
		EstimatedTimeMinutes: est,
	}, nil
}

// decodePlannerJSON: строгий разбор, затем жадное восстановление первого
// {...} из текста ответа.
func decodePlannerJSON(text string, v any) error {
	s := util.StripCodeFences(text)
	strictErr := json.Unmarshal([]byte(s), v)
	if strictErr == nil {
		return nil
	}
	obj, ok := util.ExtractJSONObject(s)
	if !ok {
		return &ParseError{Err: strictErr}
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}
