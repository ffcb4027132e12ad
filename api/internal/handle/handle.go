package handle

import (
	"encoding/json"
	"net/http"

	"design-mentor/api/internal/learn"
	"design-mentor/api/internal/store"
)

type Handle struct {
	store    *store.TransferStore
	planner  *learn.Planner
	verifier *learn.Verifier

	groqConfigured   bool
	geminiConfigured bool
}

func New(s *store.TransferStore, p *learn.Planner, v *learn.Verifier, groqConfigured, geminiConfigured bool) *Handle {
	return &Handle{
		store:            s,
		planner:          p,
		verifier:         v,
		groqConfigured:   groqConfigured,
		geminiConfigured: geminiConfigured,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
