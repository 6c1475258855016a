package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"keyshop/internal/productkey"
)

type PostgresKeyRepository struct {
	db *sql.DB
}

func NewPostgresKeyRepository(db *sql.DB) *PostgresKeyRepository {
	return &PostgresKeyRepository{db: db}
}

// Claim - единственная критичная к гонкам операция во всём сервисе.
// Выбор и пометка ключа выполняются одним UPDATE, чтобы два параллельных
// вызова никогда не получили одну и ту же строку. Никакого read-then-write
// на уровне приложения.
func (r *PostgresKeyRepository) Claim(ctx context.Context, productID, email, intentID string) (string, error) {
	query := `
        UPDATE product_keys
        SET is_used = true, used_by_email = $2, used_at = NOW(), purchase_intent_id = $3
        WHERE id = (
            SELECT id FROM product_keys
            WHERE product_id = $1 AND is_used = false
            ORDER BY id
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING key_value`

	var keyValue string
	err := r.db.QueryRowContext(ctx, query, productID, email, intentID).Scan(&keyValue)
	if err == sql.ErrNoRows {
		return "", productkey.ErrNoKeysAvailable
	}
	if err != nil {
		// unique индекс на purchase_intent_id: повторная выдача для того же
		// намерения - это конфликт, а не недоступность базы
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return "", productkey.ErrIntentAlreadyFulfilled
		}
		return "", fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}

	return keyValue, nil
}

func (r *PostgresKeyRepository) AddKeys(ctx context.Context, productID string, keyValues []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	added := 0
	for _, kv := range keyValues {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO product_keys (product_id, key_value, is_used, created_at)
			 VALUES ($1, $2, false, NOW())
			 ON CONFLICT (key_value) DO NOTHING`,
			productID, kv)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}
	return added, nil
}

func (r *PostgresKeyRepository) GetAll(ctx context.Context) ([]*productkey.ProductKey, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, product_id, key_value, is_used, used_by_email, used_at, purchase_intent_id, created_at
        FROM product_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var keys []*productkey.ProductKey
	for rows.Next() {
		k := &productkey.ProductKey{}
		err := rows.Scan(
			&k.ID,
			&k.ProductID,
			&k.KeyValue,
			&k.IsUsed,
			&k.UsedByEmail,
			&k.UsedAt,
			&k.PurchaseIntentID,
			&k.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

func (r *PostgresKeyRepository) GetByID(ctx context.Context, id int64) (*productkey.ProductKey, error) {
	k := &productkey.ProductKey{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, product_id, key_value, is_used, used_by_email, used_at, purchase_intent_id, created_at
        FROM product_keys WHERE id = $1`, id).Scan(
		&k.ID,
		&k.ProductID,
		&k.KeyValue,
		&k.IsUsed,
		&k.UsedByEmail,
		&k.UsedAt,
		&k.PurchaseIntentID,
		&k.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// DeleteUnused удаляет ключ только если он не использован. Проверка и
// удаление - один guarded DELETE по той же причине, что и Claim.
func (r *PostgresKeyRepository) DeleteUnused(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product_keys WHERE id = $1 AND is_used = false`, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresKeyRepository) CountAvailable(ctx context.Context, productID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_keys WHERE product_id = $1 AND is_used = false`,
		productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", productkey.ErrStoreUnavailable, err)
	}
	return count, nil
}
