package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"keyshop/internal/catalog"
)

type PostgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
        INSERT INTO products (id, title, price, description, features, image, video_link, buy_link,
                              purchase_image_id, category_id, is_popular, is_hidden, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
        RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Title,
		p.Price,
		p.Description,
		pq.Array(p.Features),
		p.Image,
		p.VideoLink,
		p.BuyLink,
		p.PurchaseImageID,
		p.CategoryID,
		p.IsPopular,
		p.IsHidden,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresCatalogRepository) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `UPDATE products SET
              title = $1,
              price = $2,
              description = $3,
              features = $4,
              image = $5,
              video_link = $6,
              buy_link = $7,
              purchase_image_id = $8,
              category_id = $9,
              is_popular = $10,
              is_hidden = $11,
              updated_at = NOW()
              WHERE id = $12`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.Price,
		p.Description,
		pq.Array(p.Features),
		p.Image,
		p.VideoLink,
		p.BuyLink,
		p.PurchaseImageID,
		p.CategoryID,
		p.IsPopular,
		p.IsHidden,
		p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p := &catalog.Product{}
	query := `
        SELECT id, title, price, description, features, image, video_link, buy_link,
               purchase_image_id, category_id, is_popular, is_hidden, created_at, updated_at
        FROM products WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Price,
		&p.Description,
		pq.Array(&p.Features),
		&p.Image,
		&p.VideoLink,
		&p.BuyLink,
		&p.PurchaseImageID,
		&p.CategoryID,
		&p.IsPopular,
		&p.IsHidden,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *PostgresCatalogRepository) GetAllProducts(ctx context.Context) ([]*catalog.Product, error) {
	return r.queryProducts(ctx, `
        SELECT id, title, price, description, features, image, video_link, buy_link,
               purchase_image_id, category_id, is_popular, is_hidden, created_at, updated_at
        FROM products ORDER BY created_at DESC`)
}

// GetVisibleProducts - витрина: скрытые товары не отдаём
func (r *PostgresCatalogRepository) GetVisibleProducts(ctx context.Context) ([]*catalog.Product, error) {
	return r.queryProducts(ctx, `
        SELECT id, title, price, description, features, image, video_link, buy_link,
               purchase_image_id, category_id, is_popular, is_hidden, created_at, updated_at
        FROM products WHERE is_hidden = false ORDER BY is_popular DESC, created_at DESC`)
}

func (r *PostgresCatalogRepository) queryProducts(ctx context.Context, query string) ([]*catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p := &catalog.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Price,
			&p.Description,
			pq.Array(&p.Features),
			&p.Image,
			&p.VideoLink,
			&p.BuyLink,
			&p.PurchaseImageID,
			&p.CategoryID,
			&p.IsPopular,
			&p.IsHidden,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *PostgresCatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *PostgresCatalogRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, NOW()) RETURNING created_at`
	return r.db.QueryRowContext(ctx, query, c.ID, c.Name).Scan(&c.CreatedAt)
}

func (r *PostgresCatalogRepository) GetAllCategories(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		c := &catalog.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PostgresCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
