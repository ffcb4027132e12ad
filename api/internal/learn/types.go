package learn

// LessonStep — один атомарный, проверяемый шаг реконструкции дизайна в Figma.
type LessonStep struct {
	ID              int    `json:"id"`
	Instruction     string `json:"instruction"`
	SuccessCriteria string `json:"success_criteria"`
}

// LessonPlan — упорядоченный план целиком; после генерации не мутирует.
type LessonPlan struct {
	Steps                []LessonStep `json:"steps"`
	TotalSteps           int          `json:"total_steps"`
	EstimatedTimeMinutes int          `json:"estimated_time_minutes"`
}

// VerificationResult — ответ vision-проверки одного шага. Всегда рендерится
// клиентом, поэтому это значение, а не ошибка.
type VerificationResult struct {
	Completed  bool    `json:"completed"`
	Feedback   string  `json:"feedback"`
	Confidence float64 `json:"confidence"` // 0..1
}
