package intent

import "time"

// PurchaseIntent - заявка покупателя со страницы оплаты. После создания не
// меняется, только удаляется админом.
type PurchaseIntent struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	Country      *string   `json:"country,omitempty"`
	AnydeskID    *string   `json:"anydesk_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
