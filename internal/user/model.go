package user

import "time"

// User - админ панели. Публичной регистрации нет: первый пользователь
// создаётся через /auth/register, дальше - только из админки.
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Password   string     `json:"-"` // храним только хэш
	IsAdmin    bool       `json:"is_admin"`
	LastSignIn *time.Time `json:"last_sign_in,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
