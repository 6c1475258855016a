package http

import (
	"encoding/json"
	"log"
	"net/http"

	"keyshop/internal/api/dto"
	"keyshop/internal/settings/repository"
)

type Handler struct {
	Repo *repository.PostgresSettingsRepository
}

func NewSettingsHandler(repo *repository.PostgresSettingsRepository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetMany(r.Context(), req.Settings); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	log.Printf("SettingsHandler: %d settings updated", len(req.Settings))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
