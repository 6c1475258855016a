package invoice

import (
	"strings"
	"time"
)

// Template - брендинг счёта. Одна запись на бренд.
type Template struct {
	ID             int64     `json:"id"`
	BrandName      string    `json:"brand_name"`
	CompanyName    string    `json:"company_name"`
	LogoURL        string    `json:"logo_url"`
	SupportEmail   string    `json:"support_email"`
	TelegramHandle string    `json:"telegram_handle"`
	FooterNote     string    `json:"footer_note"`
	AccentColor    string    `json:"accent_color"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BrandForTitle выводит бренд из названия товара, как это делала админка.
func BrandForTitle(productTitle string) string {
	if strings.Contains(strings.ToLower(productTitle), "sinki") {
		return "sinki"
	}
	return "cheatloop"
}
