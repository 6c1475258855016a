package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop/internal/intent"
	"keyshop/internal/productkey"
)

type fakeIntentRepo struct {
	intents map[string]*intent.PurchaseIntent
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: make(map[string]*intent.PurchaseIntent)}
}

func (r *fakeIntentRepo) Create(ctx context.Context, it *intent.PurchaseIntent) error {
	it.CreatedAt = time.Now()
	r.intents[it.ID] = it
	return nil
}

func (r *fakeIntentRepo) GetAll(ctx context.Context) ([]*intent.PurchaseIntent, error) {
	out := make([]*intent.PurchaseIntent, 0, len(r.intents))
	for _, it := range r.intents {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeIntentRepo) GetByID(ctx context.Context, id string) (*intent.PurchaseIntent, error) {
	it, ok := r.intents[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return it, nil
}

func (r *fakeIntentRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := r.intents[id]; ok {
			delete(r.intents, id)
			n++
		}
	}
	return n, nil
}

type fakeKeyLister struct {
	keys []*productkey.ProductKey
}

func (l *fakeKeyLister) GetAll(ctx context.Context) ([]*productkey.ProductKey, error) {
	return l.keys, nil
}

func TestSubmitAssignsID(t *testing.T) {
	repo := newFakeIntentRepo()
	svc := NewService(repo, &fakeKeyLister{})

	created, err := svc.Submit(context.Background(), &intent.PurchaseIntent{
		ProductID:    "p1",
		ProductTitle: "Cheatloop PUBG",
		Email:        "a@x.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestClassifiedReflectsKeyBindings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeIntentRepo()
	keys := &fakeKeyLister{}
	svc := NewService(repo, keys)

	done, err := svc.Submit(ctx, &intent.PurchaseIntent{ProductID: "p1", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, &intent.PurchaseIntent{ProductID: "p1", Email: "b@x.com"})
	require.NoError(t, err)

	keys.keys = []*productkey.ProductKey{
		{ID: 1, ProductID: "p1", KeyValue: "K1", IsUsed: true, PurchaseIntentID: &done.ID},
	}

	c, err := svc.Classified(ctx)
	require.NoError(t, err)
	require.Len(t, c.Completed, 1)
	require.Len(t, c.Pending, 1)
	assert.Equal(t, done.ID, c.Completed[0].ID)
}

// Удаление завершённой заявки не возвращает ключ в пул: ключ считается
// потраченным независимо от судьбы заявки. Поведение намеренное.
func TestDeleteFulfilledIntentKeepsKeySpent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeIntentRepo()
	keys := &fakeKeyLister{}
	svc := NewService(repo, keys)

	done, err := svc.Submit(ctx, &intent.PurchaseIntent{ProductID: "p1", Email: "a@x.com"})
	require.NoError(t, err)

	keys.keys = []*productkey.ProductKey{
		{ID: 1, ProductID: "p1", KeyValue: "K1", IsUsed: true, PurchaseIntentID: &done.ID},
	}

	n, err := svc.DeleteMany(ctx, []string{done.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// заявки нет, ключ остался использованным
	_, err = svc.Get(ctx, done.ID)
	assert.ErrorIs(t, err, ErrIntentNotFound)

	remaining, err := keys.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].IsUsed)
	assert.NotNil(t, remaining[0].PurchaseIntentID)
}

func TestDeleteManyEmptyIsNoop(t *testing.T) {
	svc := NewService(newFakeIntentRepo(), &fakeKeyLister{})

	n, err := svc.DeleteMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
