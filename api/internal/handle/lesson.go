package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"design-mentor/api/internal/groq"
	"design-mentor/api/internal/learn"
)

type generateLessonRequest struct {
	HTMLCode  string `json:"html_code"`
	Framework string `json:"framework"` // tailwind, bootstrap, ...
}

// GenerateLessonPlan — жёсткая граница: любой сбой генерации отдаётся
// ошибкой, клиент показывает "попробуйте ещё раз".
func (h *Handle) GenerateLessonPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req generateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if req.HTMLCode == "" {
		writeError(w, http.StatusBadRequest, "html_code is required")
		return
	}

	plan, err := h.planner.Plan(r.Context(), req.HTMLCode, req.Framework)
	if err != nil {
		status, msg := lessonErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func lessonErrorStatus(err error) (int, string) {
	var upstream *groq.UpstreamError
	var parseErr *learn.ParseError
	switch {
	case errors.Is(err, groq.ErrNotConfigured):
		return http.StatusInternalServerError, "GROQ_API_KEY not configured. Add it to the server environment."
	case errors.As(err, &upstream):
		// Пробрасываем статус и тело провайдера как есть.
		return upstream.StatusCode, upstream.Error()
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, "failed to parse lesson plan response"
	case errors.Is(err, learn.ErrNoSteps):
		return http.StatusInternalServerError, "no steps generated in lesson plan"
	default:
		return http.StatusInternalServerError, "error generating lesson plan: " + err.Error()
	}
}
