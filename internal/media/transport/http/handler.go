package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"keyshop/internal/api/dto"
	"keyshop/internal/media"
	"keyshop/internal/media/service"
)

type Handler struct {
	MediaService *service.Service
}

func NewMediaHandler(ms *service.Service) *Handler {
	return &Handler{MediaService: ms}
}

func (h *Handler) ListPurchaseImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.MediaService.ListPurchaseImages(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(images)
}

func (h *Handler) CreatePurchaseImage(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchaseImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := h.MediaService.CreatePurchaseImage(r.Context(), req.Name, req.PaymentURI)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}

func (h *Handler) DeletePurchaseImage(w http.ResponseWriter, r *http.Request) {
	if err := h.MediaService.DeletePurchaseImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, media.ErrImageInUse) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) ListWinningPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.MediaService.ListWinningPhotos(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(photos)
}

func (h *Handler) AddWinningPhoto(w http.ResponseWriter, r *http.Request) {
	var req dto.WinningPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.MediaService.AddWinningPhoto(r.Context(), req.ProductName, req.ImageURL, req.Description)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) DeleteWinningPhotos(w http.ResponseWriter, r *http.Request) {
	var req dto.DeletePhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.MediaService.DeleteWinningPhotos(r.Context(), req.IDs)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"deleted": n})
}

func (h *Handler) MoveWinningPhotos(w http.ResponseWriter, r *http.Request) {
	var req dto.MovePhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.MediaService.MoveWinningPhotos(r.Context(), req.IDs, req.ProductName)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"moved": n})
}
