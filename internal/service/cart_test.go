package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/memory"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

func TestCartService_AddItem_DistinctAndTotal(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2, 2)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "sess-1", 10, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, view.Total.Equal(price("179.97")), view.Total.String())
	require.Len(t, view.Notices, 1)
	assert.Equal(t, domain.NoticeAdded, view.Notices[0].Kind)
}

func TestCartService_AddItem_SameProductMerges(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2, 300)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "sess-1", 2, 500)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, 800, view.Lines[0].Quantity)
	assert.Equal(t, 1, view.ItemCount)
	require.Len(t, view.Notices, 1)
	assert.Equal(t, domain.NoticeUpdated, view.Notices[0].Kind)
}

func TestCartService_AddItem_UnknownAndOutOfStock(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 99, 300)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddItem(ctx, "sess-1", 7, 300)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "out of stock")
}

func TestCartService_RequiresSession(t *testing.T) {
	svc, _ := newTestCartService()

	_, err := svc.View(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2, 300)
	require.NoError(t, err)

	other, err := svc.View(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
	assert.Equal(t, 0, other.ItemCount)
}

func TestCartService_UpdateItem(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2, 300)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 10, 300)
	require.NoError(t, err)

	view, err := svc.UpdateItem(ctx, "sess-1", 2, 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200, view.Lines[0].Quantity)
	assert.Equal(t, 2, view.Lines[0].Product.ID)

	for _, qty := range []int{0, -1} {
		view, err = svc.UpdateItem(ctx, "sess-1", 10, qty)
		require.NoError(t, err)
	}
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Product.ID)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2, 300)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 10, 300)
	require.NoError(t, err)

	view, err := svc.RemoveItem(ctx, "sess-1", 2)
	require.NoError(t, err)
	require.Len(t, view.Notices, 1)
	assert.Equal(t, "Sweet Avalanche Rose has been removed from your cart.", view.Notices[0].Message)

	view, err = svc.RemoveItem(ctx, "sess-1", 2)
	require.NoError(t, err)
	assert.Empty(t, view.Notices)

	view, err = svc.Clear(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
	require.Len(t, view.Notices, 1)
	assert.Equal(t, domain.NoticeCleared, view.Notices[0].Kind)
}

func TestCartService_PublishFailureDoesNotFailMutation(t *testing.T) {
	events := &mockEvents{}
	events.On("PublishCartUpdated", mock.Anything, "sess-1", mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()
	svc := NewCartService(memory.NewCartStorage(time.Hour), testCatalog(), events, newTestLogger())

	view, err := svc.AddItem(context.Background(), "sess-1", 2, 300)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ItemCount)
	events.AssertExpectations(t)
}

func TestCartService_MalformedStorageIsEmptyCart(t *testing.T) {
	storage := memory.NewCartStorage(time.Hour)
	require.NoError(t, storage.SetItem(context.Background(), CartKey("sess-1"), "{not json"))
	svc := NewCartService(storage, testCatalog(), &mockEvents{}, newTestLogger())

	view, err := svc.View(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:abc", CartKey("abc"))
}
