package dto

import "github.com/go-playground/validator/v10"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdatePasswordRequest struct {
	UserID      int64  `json:"user_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// SubmitIntentRequest - форма со страницы оплаты
type SubmitIntentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Country     string `json:"country" validate:"omitempty,max=64"`
	AnydeskID   string `json:"anydesk_id" validate:"omitempty,max=64"`
}

type AddKeysRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	Keys      []string `json:"keys" validate:"required,min=1"`
}

type DeleteIntentsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type ProductRequest struct {
	Title           string   `json:"title" validate:"required"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Image           string   `json:"image"`
	VideoLink       string   `json:"video_link"`
	BuyLink         string   `json:"buy_link" validate:"omitempty,url"`
	PurchaseImageID string   `json:"purchase_image_id"`
	CategoryID      string   `json:"category_id" validate:"required"`
	IsPopular       bool     `json:"is_popular"`
	IsHidden        bool     `json:"is_hidden"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type SettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}

// PurchaseImageRequest - платёжный QR: сохраняем URI и генерируем PNG
type PurchaseImageRequest struct {
	Name       string `json:"name" validate:"required,max=128"`
	PaymentURI string `json:"payment_uri" validate:"required"`
}

type WinningPhotoRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	Description string `json:"description"`
}

type DeletePhotosRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type MovePhotosRequest struct {
	IDs         []string `json:"ids" validate:"required,min=1"`
	ProductName string   `json:"product_name" validate:"required"`
}

type InvoiceTemplateRequest struct {
	BrandName      string `json:"brand_name" validate:"required,max=64"`
	CompanyName    string `json:"company_name"`
	LogoURL        string `json:"logo_url" validate:"omitempty,url"`
	SupportEmail   string `json:"support_email" validate:"omitempty,email"`
	TelegramHandle string `json:"telegram_handle"`
	FooterNote     string `json:"footer_note"`
	AccentColor    string `json:"accent_color"`
}

var Validate = validator.New()
