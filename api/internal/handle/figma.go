package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"design-mentor/api/internal/store"
)

type uploadRequest struct {
	Layers json.RawMessage `json:"layers"`
	// Клиент может прислать свой transferId — сервер всегда выдаёт новый.
	TransferID string `json:"transferId,omitempty"`
}

// Upload принимает дерево слоёв от веб-клиента и отдаёт короткий id,
// по которому Figma-плагин заберёт его.
func (h *Handle) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if len(req.Layers) == 0 || string(req.Layers) == "null" {
		writeError(w, http.StatusBadRequest, "layers is required")
		return
	}

	id := h.store.Put(req.Layers)
	writeJSON(w, http.StatusOK, map[string]string{"transferId": id})
}

// Retrieve отдаёт слои по id. Промах — это не HTTP-ошибка, а типизированное
// тело: плагин опрашивает эндпоинт и различает "ещё нет" сам.
func (h *Handle) Retrieve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/figma/retrieve/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad transfer id")
		return
	}

	layers, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"error": "Design not found or expired"})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(layers)
}
