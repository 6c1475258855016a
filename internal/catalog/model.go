package catalog

import "time"

// Product - позиция каталога. Способ покупки - строго один из двух:
// внешняя ссылка (buy_link) или платёжный QR (purchase_image_id).
type Product struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Price           float64   `json:"price"`
	Description     string    `json:"description"`
	Features        []string  `json:"features"`
	Image           string    `json:"image"`
	VideoLink       string    `json:"video_link"`
	BuyLink         *string   `json:"buy_link,omitempty"`
	PurchaseImageID *string   `json:"purchase_image_id,omitempty"`
	CategoryID      string    `json:"category_id"`
	IsPopular       bool      `json:"is_popular"`
	IsHidden        bool      `json:"is_hidden"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
