package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"keyshop/internal/api/dto"
	"keyshop/internal/productkey"
	"keyshop/internal/productkey/service"
)

type Handler struct {
	KeyService *service.Service
}

func NewKeyHandler(ks *service.Service) *Handler {
	return &Handler{KeyService: ks}
}

// writeError переводит таксономию ошибок пула в HTTP статусы.
// Все ошибки показываются админу как есть - он сам решает, повторять ли.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, productkey.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, productkey.ErrNoKeysAvailable):
		status = http.StatusConflict
	case errors.Is(err, productkey.ErrIntentAlreadyFulfilled):
		status = http.StatusConflict
	case errors.Is(err, productkey.ErrKeyUsed):
		status = http.StatusConflict
	case errors.Is(err, productkey.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.KeyService.ListKeys(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(keys)
}

func (h *Handler) AddKeys(w http.ResponseWriter, r *http.Request) {
	var req dto.AddKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.KeyService.AddKeys(r.Context(), req.ProductID, req.Keys)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"added": added,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid key id", http.StatusBadRequest)
		return
	}

	if err := h.KeyService.DeleteKey(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) AvailableCount(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	count, err := h.KeyService.AvailableCount(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"product_id": productID,
		"available":  count,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
