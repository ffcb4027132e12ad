package handle

import "net/http"

// Health сообщает, какие провайдеры сконфигурированы, не трогая их API.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"groq_configured":   h.groqConfigured,
		"gemini_configured": h.geminiConfigured,
	})
}
