package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop/internal/media"
)

type fakeMediaRepo struct {
	images map[string]*media.PurchaseImage
	inUse  map[string]bool
	photos map[string]*media.WinningPhoto
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{
		images: make(map[string]*media.PurchaseImage),
		inUse:  make(map[string]bool),
		photos: make(map[string]*media.WinningPhoto),
	}
}

func (r *fakeMediaRepo) CreatePurchaseImage(ctx context.Context, img *media.PurchaseImage) error {
	r.images[img.ID] = img
	return nil
}

func (r *fakeMediaRepo) GetAllPurchaseImages(ctx context.Context) ([]*media.PurchaseImage, error) {
	out := make([]*media.PurchaseImage, 0, len(r.images))
	for _, img := range r.images {
		out = append(out, img)
	}
	return out, nil
}

func (r *fakeMediaRepo) GetPurchaseImage(ctx context.Context, id string) (*media.PurchaseImage, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

func (r *fakeMediaRepo) DeletePurchaseImage(ctx context.Context, id string) error {
	if r.inUse[id] {
		return media.ErrImageInUse
	}
	delete(r.images, id)
	return nil
}

func (r *fakeMediaRepo) CreateWinningPhoto(ctx context.Context, p *media.WinningPhoto) error {
	r.photos[p.ID] = p
	return nil
}

func (r *fakeMediaRepo) GetAllWinningPhotos(ctx context.Context) ([]*media.WinningPhoto, error) {
	out := make([]*media.WinningPhoto, 0, len(r.photos))
	for _, p := range r.photos {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeMediaRepo) DeleteWinningPhotos(ctx context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := r.photos[id]; ok {
			delete(r.photos, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeMediaRepo) MoveWinningPhotos(ctx context.Context, ids []string, productName string) (int, error) {
	n := 0
	for _, id := range ids {
		if p, ok := r.photos[id]; ok {
			p.ProductName = productName
			n++
		}
	}
	return n, nil
}

func TestCreatePurchaseImageWritesPNG(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMediaRepo()
	dir := t.TempDir()
	svc := NewService(repo, dir)

	img, err := svc.CreatePurchaseImage(ctx, "USDT TRC20", "tron:TXYZ?amount=10.000000")
	require.NoError(t, err)
	assert.Equal(t, "/media/"+img.ID+".png", img.ImageURL)

	_, err = os.Stat(filepath.Join(dir, img.ID+".png"))
	require.NoError(t, err)
}

// QR, на который ссылается товар, удалить нельзя: запись и файл остаются
func TestDeletePurchaseImageInUseKeepsFile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMediaRepo()
	dir := t.TempDir()
	svc := NewService(repo, dir)

	img, err := svc.CreatePurchaseImage(ctx, "USDT TRC20", "tron:TXYZ?amount=10.000000")
	require.NoError(t, err)

	repo.inUse[img.ID] = true
	err = svc.DeletePurchaseImage(ctx, img.ID)
	require.ErrorIs(t, err, media.ErrImageInUse)

	_, err = repo.GetPurchaseImage(ctx, img.ID)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, img.ID+".png"))
	assert.NoError(t, err)
}

func TestDeletePurchaseImageRemovesFile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMediaRepo()
	dir := t.TempDir()
	svc := NewService(repo, dir)

	img, err := svc.CreatePurchaseImage(ctx, "USDT TRC20", "tron:TXYZ?amount=10.000000")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchaseImage(ctx, img.ID))

	_, err = repo.GetPurchaseImage(ctx, img.ID)
	assert.Error(t, err)
	_, err = os.Stat(filepath.Join(dir, img.ID+".png"))
	assert.True(t, os.IsNotExist(err))
}
