package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"keyshop/internal/api/dto"
	"keyshop/internal/catalog"
	"keyshop/internal/catalog/service"
)

type Handler struct {
	CatalogService *service.Service
}

func NewCatalogHandler(cs *service.Service) *Handler {
	return &Handler{CatalogService: cs}
}

func productFromRequest(req *dto.ProductRequest) *catalog.Product {
	p := &catalog.Product{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Features:    req.Features,
		Image:       req.Image,
		VideoLink:   req.VideoLink,
		CategoryID:  req.CategoryID,
		IsPopular:   req.IsPopular,
		IsHidden:    req.IsHidden,
	}
	if req.BuyLink != "" {
		p.BuyLink = &req.BuyLink
	}
	if req.PurchaseImageID != "" {
		p.PurchaseImageID = &req.PurchaseImageID
	}
	return p
}

// ListPublic - витрина, без скрытых товаров
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.CatalogService.ListProducts(r.Context(), false)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.CatalogService.ListProducts(r.Context(), true)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.CatalogService.CreateProduct(r.Context(), productFromRequest(&req))
	if err != nil {
		if errors.Is(err, service.ErrPurchaseMethod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := productFromRequest(&req)
	p.ID = chi.URLParam(r, "id")

	if err := h.CatalogService.UpdateProduct(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseMethod):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CatalogService.ListCategories(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.CatalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
