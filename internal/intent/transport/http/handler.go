package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"keyshop/internal/api/dto"
	"keyshop/internal/intent"
	intentservice "keyshop/internal/intent/service"
	"keyshop/internal/productkey"
	keyservice "keyshop/internal/productkey/service"

	catalogservice "keyshop/internal/catalog/service"
)

type Handler struct {
	IntentService  *intentservice.Service
	KeyService     *keyservice.Service
	CatalogService *catalogservice.Service
}

func NewIntentHandler(is *intentservice.Service, ks *keyservice.Service, cs *catalogservice.Service) *Handler {
	return &Handler{
		IntentService:  is,
		KeyService:     ks,
		CatalogService: cs,
	}
}

// Submit - публичная форма со страницы оплаты
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.CatalogService.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		http.Error(w, "unknown product", http.StatusBadRequest)
		return
	}

	it := &intent.PurchaseIntent{
		ProductID:    p.ID,
		ProductTitle: p.Title,
		Email:        req.Email,
	}
	if req.PhoneNumber != "" {
		it.PhoneNumber = &req.PhoneNumber
	}
	if req.Country != "" {
		it.Country = &req.Country
	}
	if req.AnydeskID != "" {
		it.AnydeskID = &req.AnydeskID
	}

	created, err := h.IntentService.Submit(r.Context(), it)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// List возвращает заявки, уже разбитые на pending/completed
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classification, err := h.IntentService.Classified(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(classification)
}

// ClaimKey выдаёт ключ по заявке ("draw key" в админке). Email и продукт
// берутся из самой заявки, чтобы ключ нельзя было привязать к чужим данным.
func (h *Handler) ClaimKey(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "id")

	it, err := h.IntentService.Get(r.Context(), intentID)
	if err != nil {
		http.Error(w, "intent not found", http.StatusNotFound)
		return
	}

	keyValue, err := h.KeyService.Claim(r.Context(), it.ProductID, it.Email, it.ID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, productkey.ErrNoKeysAvailable),
			errors.Is(err, productkey.ErrIntentAlreadyFulfilled):
			status = http.StatusConflict
		case errors.Is(err, productkey.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, productkey.ErrStoreUnavailable):
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]string{
		"intent_id": it.ID,
		"key_value": keyValue,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteIntentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.IntentService.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	log.Printf("IntentHandler: %d intents deleted", n)
	resp := map[string]int{"deleted": n}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
