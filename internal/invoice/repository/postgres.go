package repository

import (
	"context"
	"database/sql"

	"keyshop/internal/invoice"
)

type PostgresTemplateRepository struct {
	db *sql.DB
}

func NewPostgresTemplateRepository(db *sql.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{db: db}
}

func (r *PostgresTemplateRepository) GetAll(ctx context.Context) ([]*invoice.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, brand_name, company_name, logo_url, support_email, telegram_handle, footer_note, accent_color, updated_at
        FROM invoice_templates ORDER BY brand_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*invoice.Template
	for rows.Next() {
		t := &invoice.Template{}
		err := rows.Scan(
			&t.ID,
			&t.BrandName,
			&t.CompanyName,
			&t.LogoURL,
			&t.SupportEmail,
			&t.TelegramHandle,
			&t.FooterNote,
			&t.AccentColor,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (r *PostgresTemplateRepository) GetByBrand(ctx context.Context, brand string) (*invoice.Template, error) {
	t := &invoice.Template{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, brand_name, company_name, logo_url, support_email, telegram_handle, footer_note, accent_color, updated_at
        FROM invoice_templates WHERE brand_name = $1`, brand).Scan(
		&t.ID,
		&t.BrandName,
		&t.CompanyName,
		&t.LogoURL,
		&t.SupportEmail,
		&t.TelegramHandle,
		&t.FooterNote,
		&t.AccentColor,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Upsert: шаблон на бренд ровно один
func (r *PostgresTemplateRepository) Save(ctx context.Context, t *invoice.Template) error {
	query := `
        INSERT INTO invoice_templates (brand_name, company_name, logo_url, support_email, telegram_handle, footer_note, accent_color, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        ON CONFLICT (brand_name) DO UPDATE SET
            company_name = EXCLUDED.company_name,
            logo_url = EXCLUDED.logo_url,
            support_email = EXCLUDED.support_email,
            telegram_handle = EXCLUDED.telegram_handle,
            footer_note = EXCLUDED.footer_note,
            accent_color = EXCLUDED.accent_color,
            updated_at = NOW()
        RETURNING id, updated_at`

	return r.db.QueryRowContext(ctx, query,
		t.BrandName,
		t.CompanyName,
		t.LogoURL,
		t.SupportEmail,
		t.TelegramHandle,
		t.FooterNote,
		t.AccentColor,
	).Scan(&t.ID, &t.UpdatedAt)
}
