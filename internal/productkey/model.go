package productkey

import (
	"errors"
	"time"
)

// Ошибки операции выдачи ключа. Транспорт маппит их на HTTP статусы.
var (
	ErrNoKeysAvailable        = errors.New("no available keys for this product")
	ErrStoreUnavailable       = errors.New("key store unavailable")
	ErrIntentAlreadyFulfilled = errors.New("purchase intent already has a key assigned")
	ErrKeyUsed                = errors.New("used keys cannot be deleted")
	ErrValidation             = errors.New("validation failed")
)

type ProductKey struct {
	ID               int64      `json:"id"`
	ProductID        string     `json:"product_id"`
	KeyValue         string     `json:"key_value"`
	IsUsed           bool       `json:"is_used"`
	UsedByEmail      *string    `json:"used_by_email,omitempty"`
	UsedAt           *time.Time `json:"used_at,omitempty"`
	PurchaseIntentID *string    `json:"purchase_intent_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
