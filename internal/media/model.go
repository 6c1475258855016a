package media

import (
	"errors"
	"time"
)

// ErrImageInUse - QR привязан к товару, сначала надо поменять способ покупки
var ErrImageInUse = errors.New("purchase image is in use by a product")

// PurchaseImage - платёжный QR, который показывается на странице оплаты.
// PNG генерируется из payment_uri и раздаётся статикой из MediaDir.
type PurchaseImage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PaymentURI string    `json:"payment_uri"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// WinningPhoto - скриншот выигрыша для маркетинговой страницы
type WinningPhoto struct {
	ID          string    `json:"id"`
	ProductName string    `json:"product_name"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
