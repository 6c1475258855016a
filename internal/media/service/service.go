package service

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"keyshop/internal/media"
)

type MediaRepository interface {
	CreatePurchaseImage(ctx context.Context, img *media.PurchaseImage) error
	GetAllPurchaseImages(ctx context.Context) ([]*media.PurchaseImage, error)
	GetPurchaseImage(ctx context.Context, id string) (*media.PurchaseImage, error)
	DeletePurchaseImage(ctx context.Context, id string) error
	CreateWinningPhoto(ctx context.Context, p *media.WinningPhoto) error
	GetAllWinningPhotos(ctx context.Context) ([]*media.WinningPhoto, error)
	DeleteWinningPhotos(ctx context.Context, ids []string) (int, error)
	MoveWinningPhotos(ctx context.Context, ids []string, productName string) (int, error)
}

type Service struct {
	repo     MediaRepository
	mediaDir string
}

func NewService(repo MediaRepository, mediaDir string) *Service {
	return &Service{repo: repo, mediaDir: mediaDir}
}

// CreatePurchaseImage генерирует QR из платёжной ссылки и сохраняет запись.
// Файл раздаётся статикой под /media/.
func (s *Service) CreatePurchaseImage(ctx context.Context, name, paymentURI string) (*media.PurchaseImage, error) {
	id := uuid.NewString()

	filename, err := media.GenerateQRPNG(s.mediaDir, id, paymentURI)
	if err != nil {
		return nil, err
	}

	img := &media.PurchaseImage{
		ID:         id,
		Name:       name,
		PaymentURI: paymentURI,
		ImageURL:   "/media/" + filename,
	}
	if err := s.repo.CreatePurchaseImage(ctx, img); err != nil {
		// запись не создалась - подчищаем сгенерированный файл
		_ = os.Remove(filepath.Join(s.mediaDir, filename))
		return nil, err
	}

	log.Printf("MediaService: purchase image %s (%s) created", img.Name, img.ID)
	return img, nil
}

func (s *Service) ListPurchaseImages(ctx context.Context) ([]*media.PurchaseImage, error) {
	return s.repo.GetAllPurchaseImages(ctx)
}

func (s *Service) DeletePurchaseImage(ctx context.Context, id string) error {
	img, err := s.repo.GetPurchaseImage(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePurchaseImage(ctx, id); err != nil {
		return err
	}

	_ = os.Remove(filepath.Join(s.mediaDir, filepath.Base(img.ImageURL)))
	return nil
}

func (s *Service) AddWinningPhoto(ctx context.Context, productName, imageURL, description string) (*media.WinningPhoto, error) {
	p := &media.WinningPhoto{
		ID:          uuid.NewString(),
		ProductName: productName,
		ImageURL:    imageURL,
		Description: description,
	}
	if err := s.repo.CreateWinningPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListWinningPhotos(ctx context.Context) ([]*media.WinningPhoto, error) {
	return s.repo.GetAllWinningPhotos(ctx)
}

func (s *Service) DeleteWinningPhotos(ctx context.Context, ids []string) (int, error) {
	return s.repo.DeleteWinningPhotos(ctx, ids)
}

func (s *Service) MoveWinningPhotos(ctx context.Context, ids []string, productName string) (int, error) {
	return s.repo.MoveWinningPhotos(ctx, ids, productName)
}
