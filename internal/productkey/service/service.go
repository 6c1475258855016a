package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"keyshop/internal/metrics"
	"keyshop/internal/productkey"
)

type KeyRepository interface {
	Claim(ctx context.Context, productID, email, intentID string) (string, error)
	AddKeys(ctx context.Context, productID string, keyValues []string) (int, error)
	GetAll(ctx context.Context) ([]*productkey.ProductKey, error)
	GetByID(ctx context.Context, id int64) (*productkey.ProductKey, error)
	DeleteUnused(ctx context.Context, id int64) (bool, error)
	CountAvailable(ctx context.Context, productID string) (int, error)
}

type Service struct {
	repo KeyRepository
}

func NewService(repo KeyRepository) *Service {
	return &Service{repo: repo}
}

// Claim выдаёт один свободный ключ продукта и привязывает его к намерению
// покупки. Вся атомарность - на стороне репозитория, сервис только валидирует
// вход. При ошибке пул остаётся нетронутым, повторный вызов делает админ.
func (s *Service) Claim(ctx context.Context, productID, email, intentID string) (string, error) {
	if productID == "" || email == "" || intentID == "" {
		return "", fmt.Errorf("%w: product_id, email and intent_id are required", productkey.ErrValidation)
	}
	// Кривой id - ошибка вызывающего, а не недоступность базы
	if _, err := uuid.Parse(productID); err != nil {
		return "", fmt.Errorf("%w: product_id must be a valid uuid", productkey.ErrValidation)
	}
	if _, err := uuid.Parse(intentID); err != nil {
		return "", fmt.Errorf("%w: intent_id must be a valid uuid", productkey.ErrValidation)
	}

	keyValue, err := s.repo.Claim(ctx, productID, email, intentID)
	if err != nil {
		log.Printf("KeyService: claim failed for product %s, intent %s: %v", productID, intentID, err)
		metrics.KeyClaimsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	log.Printf("KeyService: key assigned to intent %s (product %s)", intentID, productID)
	metrics.KeyClaimsTotal.WithLabelValues("ok").Inc()
	s.refreshAvailableGauge(ctx, productID)
	return keyValue, nil
}

// AddKeys принимает список ключей (по одному на строку в админке), чистит
// пустые и дубликаты и кладёт их в пул как свободные.
func (s *Service) AddKeys(ctx context.Context, productID string, keyValues []string) (int, error) {
	if productID == "" {
		return 0, fmt.Errorf("%w: product_id is required", productkey.ErrValidation)
	}
	if _, err := uuid.Parse(productID); err != nil {
		return 0, fmt.Errorf("%w: product_id must be a valid uuid", productkey.ErrValidation)
	}

	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(keyValues))
	for _, kv := range keyValues {
		kv = strings.TrimSpace(kv)
		if kv == "" || seen[kv] {
			continue
		}
		seen[kv] = true
		cleaned = append(cleaned, kv)
	}
	if len(cleaned) == 0 {
		return 0, fmt.Errorf("%w: at least one non-empty key is required", productkey.ErrValidation)
	}

	added, err := s.repo.AddKeys(ctx, productID, cleaned)
	if err != nil {
		return 0, err
	}

	log.Printf("KeyService: added %d keys for product %s", added, productID)
	s.refreshAvailableGauge(ctx, productID)
	return added, nil
}

func (s *Service) ListKeys(ctx context.Context) ([]*productkey.ProductKey, error) {
	return s.repo.GetAll(ctx)
}

// DeleteKey удаляет только неиспользованный ключ. Использованный ключ
// неизменяем - так же, как в админке.
func (s *Service) DeleteKey(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteUnused(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		k, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: key not found", productkey.ErrValidation)
		}
		if k.IsUsed {
			return productkey.ErrKeyUsed
		}
		return fmt.Errorf("%w: key not found", productkey.ErrValidation)
	}
	return nil
}

func (s *Service) AvailableCount(ctx context.Context, productID string) (int, error) {
	n, err := s.repo.CountAvailable(ctx, productID)
	if err != nil {
		return 0, err
	}
	metrics.KeysAvailable.WithLabelValues(productID).Set(float64(n))
	return n, nil
}

// Метрика обновляется по возможности, ошибка подсчёта не влияет на основную операцию.
func (s *Service) refreshAvailableGauge(ctx context.Context, productID string) {
	n, err := s.repo.CountAvailable(ctx, productID)
	if err != nil {
		return
	}
	metrics.KeysAvailable.WithLabelValues(productID).Set(float64(n))
}
