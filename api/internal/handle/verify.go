package handle

import (
	"encoding/json"
	"net/http"

	"design-mentor/api/internal/learn"
)

type verifyProgressRequest struct {
	CurrentStep      learn.LessonStep `json:"current_step"`
	ScreenshotBase64 string           `json:"screenshot_base64"`
}

// VerifyProgress всегда отвечает 200 с рендерящимся результатом: сбой
// анализа — это completed=false с объяснением, не ошибка.
func (h *Handle) VerifyProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req verifyProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if req.ScreenshotBase64 == "" {
		writeError(w, http.StatusBadRequest, "screenshot_base64 is required")
		return
	}

	res := h.verifier.Verify(r.Context(), req.CurrentStep, req.ScreenshotBase64)
	writeJSON(w, http.StatusOK, res)
}
