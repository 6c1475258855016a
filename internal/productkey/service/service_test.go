package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop/internal/productkey"
)

// fakeKeyRepo повторяет контракт хранилища: выбор и пометка ключа - одна
// атомарная операция под мьютексом, как guarded UPDATE в Postgres.
type fakeKeyRepo struct {
	mu      sync.Mutex
	keys    []*productkey.ProductKey
	nextID  int64
	failing bool
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{nextID: 1}
}

func (r *fakeKeyRepo) Claim(ctx context.Context, productID, email, intentID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failing {
		return "", fmt.Errorf("%w: connection refused", productkey.ErrStoreUnavailable)
	}

	for _, k := range r.keys {
		if k.PurchaseIntentID != nil && *k.PurchaseIntentID == intentID {
			return "", productkey.ErrIntentAlreadyFulfilled
		}
	}

	for _, k := range r.keys {
		if k.ProductID == productID && !k.IsUsed {
			now := time.Now()
			k.IsUsed = true
			k.UsedByEmail = &email
			k.UsedAt = &now
			k.PurchaseIntentID = &intentID
			return k.KeyValue, nil
		}
	}

	return "", productkey.ErrNoKeysAvailable
}

func (r *fakeKeyRepo) AddKeys(ctx context.Context, productID string, keyValues []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, kv := range keyValues {
		exists := false
		for _, k := range r.keys {
			if k.KeyValue == kv {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.keys = append(r.keys, &productkey.ProductKey{
			ID:        r.nextID,
			ProductID: productID,
			KeyValue:  kv,
			CreatedAt: time.Now(),
		})
		r.nextID++
		added++
	}
	return added, nil
}

func (r *fakeKeyRepo) GetAll(ctx context.Context) ([]*productkey.ProductKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*productkey.ProductKey, len(r.keys))
	copy(out, r.keys)
	return out, nil
}

func (r *fakeKeyRepo) GetByID(ctx context.Context, id int64) (*productkey.ProductKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.ID == id {
			return k, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeKeyRepo) DeleteUnused(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, k := range r.keys {
		if k.ID == id && !k.IsUsed {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeKeyRepo) CountAvailable(ctx context.Context, productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, k := range r.keys {
		if k.ProductID == productID && !k.IsUsed {
			count++
		}
	}
	return count, nil
}

func (r *fakeKeyRepo) snapshot() []productkey.ProductKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]productkey.ProductKey, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, *k)
	}
	return out
}

func TestClaimExhaustsPoolExactly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()

	const n = 5
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, fmt.Sprintf("KEY-%04d", i))
	}
	added, err := svc.AddKeys(ctx, productID, keys)
	require.NoError(t, err)
	require.Equal(t, n, added)

	// N свободных ключей дают ровно N успешных выдач
	issued := make(map[string]bool)
	for i := 0; i < n; i++ {
		kv, err := svc.Claim(ctx, productID, fmt.Sprintf("u%d@x.com", i), uuid.NewString())
		require.NoError(t, err)
		assert.False(t, issued[kv], "key %s issued twice", kv)
		issued[kv] = true
	}

	// (N+1)-я выдача - отказ
	_, err = svc.Claim(ctx, productID, "late@x.com", uuid.NewString())
	assert.ErrorIs(t, err, productkey.ErrNoKeysAvailable)
}

func TestClaimConcurrentSingleKey(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()

	_, err := svc.AddKeys(ctx, productID, []string{"ONLY-KEY"})
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Claim(ctx, productID, fmt.Sprintf("u%d@x.com", i), uuid.NewString())
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, productkey.ErrNoKeysAvailable)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent claim must win")
}

func TestClaimFailureLeavesPoolUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()

	_, err := svc.AddKeys(ctx, productID, []string{"K1", "K2"})
	require.NoError(t, err)

	before := repo.snapshot()

	repo.failing = true
	_, err = svc.Claim(ctx, productID, "a@x.com", uuid.NewString())
	require.ErrorIs(t, err, productkey.ErrStoreUnavailable)
	repo.failing = false

	assert.Equal(t, before, repo.snapshot(), "failed claim must not mutate the pool")
}

func TestClaimSecondKeyForSameIntentRejected(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()
	intentID := uuid.NewString()

	_, err := svc.AddKeys(ctx, productID, []string{"K1", "K2"})
	require.NoError(t, err)

	_, err = svc.Claim(ctx, productID, "a@x.com", intentID)
	require.NoError(t, err)

	_, err = svc.Claim(ctx, productID, "a@x.com", intentID)
	assert.ErrorIs(t, err, productkey.ErrIntentAlreadyFulfilled)
}

func TestClaimValidatesInput(t *testing.T) {
	svc := NewService(newFakeKeyRepo())
	productID := uuid.NewString()
	intentID := uuid.NewString()

	_, err := svc.Claim(context.Background(), "", "a@x.com", intentID)
	assert.ErrorIs(t, err, productkey.ErrValidation)

	_, err = svc.Claim(context.Background(), productID, "", intentID)
	assert.ErrorIs(t, err, productkey.ErrValidation)

	_, err = svc.Claim(context.Background(), productID, "a@x.com", "")
	assert.ErrorIs(t, err, productkey.ErrValidation)
}

// Синтаксически кривой id - ошибка вызывающего (400), а не базы (503).
// До репозитория такой запрос доходить не должен.
func TestClaimRejectsMalformedIDs(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()
	intentID := uuid.NewString()

	_, err := svc.AddKeys(ctx, productID, []string{"K1"})
	require.NoError(t, err)

	_, err = svc.Claim(ctx, "not-a-uuid", "a@x.com", intentID)
	assert.ErrorIs(t, err, productkey.ErrValidation)
	assert.NotErrorIs(t, err, productkey.ErrStoreUnavailable)

	_, err = svc.Claim(ctx, productID, "a@x.com", "not-a-uuid")
	assert.ErrorIs(t, err, productkey.ErrValidation)

	_, err = svc.AddKeys(ctx, "not-a-uuid", []string{"K2"})
	assert.ErrorIs(t, err, productkey.ErrValidation)

	// пул не тронут
	count, err := svc.AvailableCount(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddKeysCleansInput(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()

	added, err := svc.AddKeys(ctx, productID, []string{" K1 ", "", "K1", "K2", "\t"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	_, err = svc.AddKeys(ctx, productID, []string{"", "   "})
	assert.ErrorIs(t, err, productkey.ErrValidation)
}

func TestDeleteKeyRefusesUsedKeys(t *testing.T) {
	ctx := context.Background()
	repo := newFakeKeyRepo()
	svc := NewService(repo)
	productID := uuid.NewString()

	_, err := svc.AddKeys(ctx, productID, []string{"K1"})
	require.NoError(t, err)
	_, err = svc.Claim(ctx, productID, "a@x.com", uuid.NewString())
	require.NoError(t, err)

	err = svc.DeleteKey(ctx, 1)
	assert.ErrorIs(t, err, productkey.ErrKeyUsed)

	// ключ остался на месте
	keys, err := svc.ListKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.True(t, keys[0].IsUsed)
}
