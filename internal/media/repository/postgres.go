package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"keyshop/internal/media"
)

type PostgresMediaRepository struct {
	db *sql.DB
}

func NewPostgresMediaRepository(db *sql.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

func (r *PostgresMediaRepository) CreatePurchaseImage(ctx context.Context, img *media.PurchaseImage) error {
	query := `
        INSERT INTO purchase_images (id, name, payment_uri, image_url, created_at)
        VALUES ($1, $2, $3, $4, NOW()) RETURNING created_at`

	return r.db.QueryRowContext(ctx, query, img.ID, img.Name, img.PaymentURI, img.ImageURL).Scan(&img.CreatedAt)
}

func (r *PostgresMediaRepository) GetAllPurchaseImages(ctx context.Context) ([]*media.PurchaseImage, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, payment_uri, image_url, created_at FROM purchase_images ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*media.PurchaseImage
	for rows.Next() {
		img := &media.PurchaseImage{}
		if err := rows.Scan(&img.ID, &img.Name, &img.PaymentURI, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *PostgresMediaRepository) GetPurchaseImage(ctx context.Context, id string) (*media.PurchaseImage, error) {
	img := &media.PurchaseImage{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, name, payment_uri, image_url, created_at FROM purchase_images WHERE id = $1`, id).Scan(
		&img.ID, &img.Name, &img.PaymentURI, &img.ImageURL, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *PostgresMediaRepository) DeletePurchaseImage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM purchase_images WHERE id = $1`, id)
	if err != nil {
		// ON DELETE SET NULL у товара упирается в check способа покупки:
		// у товара остался бы ни buy_link, ни purchase_image_id
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return media.ErrImageInUse
		}
		return err
	}
	return nil
}

func (r *PostgresMediaRepository) CreateWinningPhoto(ctx context.Context, p *media.WinningPhoto) error {
	query := `
        INSERT INTO winning_photos (id, product_name, image_url, description, created_at)
        VALUES ($1, $2, $3, $4, NOW()) RETURNING created_at`

	return r.db.QueryRowContext(ctx, query, p.ID, p.ProductName, p.ImageURL, p.Description).Scan(&p.CreatedAt)
}

func (r *PostgresMediaRepository) GetAllWinningPhotos(ctx context.Context) ([]*media.WinningPhoto, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, product_name, image_url, description, created_at FROM winning_photos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*media.WinningPhoto
	for rows.Next() {
		p := &media.WinningPhoto{}
		if err := rows.Scan(&p.ID, &p.ProductName, &p.ImageURL, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}

	return photos, rows.Err()
}

func (r *PostgresMediaRepository) DeleteWinningPhotos(ctx context.Context, ids []string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM winning_photos WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *PostgresMediaRepository) MoveWinningPhotos(ctx context.Context, ids []string, productName string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE winning_photos SET product_name = $1 WHERE id = ANY($2)`,
		productName, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
