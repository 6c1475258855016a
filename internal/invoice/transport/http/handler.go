package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"keyshop/internal/api/dto"
	catalogservice "keyshop/internal/catalog/service"
	"keyshop/internal/intent"
	intentservice "keyshop/internal/intent/service"
	"keyshop/internal/invoice"
	"keyshop/internal/invoice/repository"
	"keyshop/internal/metrics"
	settingsrepository "keyshop/internal/settings/repository"
)

type Handler struct {
	Templates      *repository.PostgresTemplateRepository
	IntentService  *intentservice.Service
	CatalogService *catalogservice.Service
	Settings       *settingsrepository.PostgresSettingsRepository
}

func NewInvoiceHandler(
	templates *repository.PostgresTemplateRepository,
	is *intentservice.Service,
	cs *catalogservice.Service,
	settings *settingsrepository.PostgresSettingsRepository,
) *Handler {
	return &Handler{
		Templates:      templates,
		IntentService:  is,
		CatalogService: cs,
		Settings:       settings,
	}
}

// RenderForIntent собирает счёт по завершённой заявке. Сам рендер чистый:
// всё состояние читается здесь и передаётся в invoice.Render.
func (h *Handler) RenderForIntent(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "id")

	classification, err := h.IntentService.Classified(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	type renderSubject struct {
		Intent   *intent.PurchaseIntent
		KeyValue string
	}
	var it *renderSubject
	for _, c := range classification.Completed {
		if c.ID == intentID {
			it = &renderSubject{Intent: &c.PurchaseIntent, KeyValue: c.Key.KeyValue}
			break
		}
	}
	if it == nil {
		http.Error(w, "intent has no assigned key", http.StatusNotFound)
		return
	}

	price := 0.0
	if p, err := h.CatalogService.GetProduct(r.Context(), it.Intent.ProductID); err == nil {
		price = p.Price
	}

	siteSettings, err := h.Settings.GetAll(r.Context())
	if err != nil {
		siteSettings = map[string]string{}
	}

	// Шаблон может отсутствовать - рендер уйдёт в дефолтный брендинг
	brand := invoice.BrandForTitle(it.Intent.ProductTitle)
	tmpl, err := h.Templates.GetByBrand(r.Context(), brand)
	if err != nil {
		tmpl = nil
	}

	html, err := invoice.Render(it.Intent, it.KeyValue, siteSettings, price, tmpl)
	if err != nil {
		http.Error(w, "failed to render invoice", http.StatusInternalServerError)
		return
	}

	log.Printf("InvoiceHandler: invoice rendered for intent %s", intentID)
	metrics.InvoicesRenderedTotal.Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.GetAll(r.Context())
	if err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := &invoice.Template{
		BrandName:      req.BrandName,
		CompanyName:    req.CompanyName,
		LogoURL:        req.LogoURL,
		SupportEmail:   req.SupportEmail,
		TelegramHandle: req.TelegramHandle,
		FooterNote:     req.FooterNote,
		AccentColor:    req.AccentColor,
	}
	if err := h.Templates.Save(r.Context(), t); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}
