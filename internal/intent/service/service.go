package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"keyshop/internal/intent"
	"keyshop/internal/metrics"
	"keyshop/internal/productkey"
)

var ErrIntentNotFound = errors.New("purchase intent not found")

type IntentRepository interface {
	Create(ctx context.Context, it *intent.PurchaseIntent) error
	GetAll(ctx context.Context) ([]*intent.PurchaseIntent, error)
	GetByID(ctx context.Context, id string) (*intent.PurchaseIntent, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type KeyLister interface {
	GetAll(ctx context.Context) ([]*productkey.ProductKey, error)
}

type Service struct {
	repo IntentRepository
	keys KeyLister
}

func NewService(repo IntentRepository, keys KeyLister) *Service {
	return &Service{repo: repo, keys: keys}
}

// Submit создаёт заявку покупателя. ID генерируем на сервере, чтобы заявка
// была адресуемой сразу после вставки.
func (s *Service) Submit(ctx context.Context, it *intent.PurchaseIntent) (*intent.PurchaseIntent, error) {
	it.ID = uuid.NewString()

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	log.Printf("IntentService: intent %s submitted for product %s", it.ID, it.ProductID)
	metrics.IntentsSubmittedTotal.Inc()
	return it, nil
}

func (s *Service) List(ctx context.Context) ([]*intent.PurchaseIntent, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*intent.PurchaseIntent, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrIntentNotFound
	}
	return it, nil
}

// Classified возвращает заявки, разделённые по факту привязки ключа.
// Оба снапшота читаются целиком при каждом запросе - объёмы заказов
// небольшие, и так не бывает рассинхрона между коллекциями.
func (s *Service) Classified(ctx context.Context) (intent.Classification, error) {
	intents, err := s.repo.GetAll(ctx)
	if err != nil {
		return intent.Classification{}, err
	}
	keys, err := s.keys.GetAll(ctx)
	if err != nil {
		return intent.Classification{}, err
	}

	return intent.Classify(intents, keys), nil
}

func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	log.Printf("IntentService: deleted %d of %d requested intents", n, len(ids))
	return n, nil
}
