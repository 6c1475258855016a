package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"keyshop/internal/intent"
)

type PostgresIntentRepository struct {
	db *sql.DB
}

func NewPostgresIntentRepository(db *sql.DB) *PostgresIntentRepository {
	return &PostgresIntentRepository{db: db}
}

func (r *PostgresIntentRepository) Create(ctx context.Context, it *intent.PurchaseIntent) error {
	query := `
        INSERT INTO purchase_intents (id, product_id, product_title, email, phone_number, country, anydesk_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		it.ID,
		it.ProductID,
		it.ProductTitle,
		it.Email,
		it.PhoneNumber,
		it.Country,
		it.AnydeskID,
	).Scan(&it.CreatedAt)
}

func (r *PostgresIntentRepository) GetAll(ctx context.Context) ([]*intent.PurchaseIntent, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, product_id, product_title, email, phone_number, country, anydesk_id, created_at
        FROM purchase_intents ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intents []*intent.PurchaseIntent
	for rows.Next() {
		it := &intent.PurchaseIntent{}
		err := rows.Scan(
			&it.ID,
			&it.ProductID,
			&it.ProductTitle,
			&it.Email,
			&it.PhoneNumber,
			&it.Country,
			&it.AnydeskID,
			&it.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		intents = append(intents, it)
	}

	return intents, rows.Err()
}

func (r *PostgresIntentRepository) GetByID(ctx context.Context, id string) (*intent.PurchaseIntent, error) {
	it := &intent.PurchaseIntent{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, product_id, product_title, email, phone_number, country, anydesk_id, created_at
        FROM purchase_intents WHERE id = $1`, id).Scan(
		&it.ID,
		&it.ProductID,
		&it.ProductTitle,
		&it.Email,
		&it.PhoneNumber,
		&it.Country,
		&it.AnydeskID,
		&it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteMany удаляет только сами заявки. Привязанные ключи остаются
// использованными - ключ считается потраченным независимо от судьбы заявки.
func (r *PostgresIntentRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM purchase_intents WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
