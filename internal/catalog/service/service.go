package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"

	"keyshop/internal/catalog"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPurchaseMethod  = errors.New("product must have either a buy link or a purchase image, not both")
)

type CatalogRepository interface {
	CreateProduct(ctx context.Context, p *catalog.Product) error
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	GetAllProducts(ctx context.Context) ([]*catalog.Product, error)
	GetVisibleProducts(ctx context.Context) ([]*catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, c *catalog.Category) error
	GetAllCategories(ctx context.Context) ([]*catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type Service struct {
	repo CatalogRepository
}

func NewService(repo CatalogRepository) *Service {
	return &Service{repo: repo}
}

// validatePurchaseMethod: buy_link и purchase_image_id взаимоисключающие.
// Хотя бы один должен быть, оба сразу - нельзя.
func validatePurchaseMethod(p *catalog.Product) error {
	hasLink := p.BuyLink != nil && *p.BuyLink != ""
	hasImage := p.PurchaseImageID != nil && *p.PurchaseImageID != ""
	if hasLink == hasImage {
		return ErrPurchaseMethod
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	if err := validatePurchaseMethod(p); err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	log.Printf("CatalogService: product %s (%s) created", p.Title, p.ID)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	if err := validatePurchaseMethod(p); err != nil {
		return err
	}

	err := s.repo.UpdateProduct(ctx, p)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, includeHidden bool) ([]*catalog.Product, error) {
	if includeHidden {
		return s.repo.GetAllProducts(ctx)
	}
	return s.repo.GetVisibleProducts(ctx)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	c := &catalog.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return s.repo.GetAllCategories(ctx)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
