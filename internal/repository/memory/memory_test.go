package memory

import (
	"context"
	"testing"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepo_NameUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepo()

	fantasy := domain.NewCategory("Fantasy", "Magic", nil)
	require.NoError(t, repo.Insert(ctx, fantasy))

	err := repo.Insert(ctx, domain.NewCategory("Fantasy", "Again", nil))
	assert.ErrorIs(t, err, e.ErrNameTaken)

	animes := domain.NewCategory("Animes", "Japan", nil)
	require.NoError(t, repo.Insert(ctx, animes))

	animes.Name = "Fantasy"
	assert.ErrorIs(t, repo.Replace(ctx, animes), e.ErrNameTaken)

	fantasy.Description = "More magic"
	assert.NoError(t, repo.Replace(ctx, fantasy))
}

func TestCategoryRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepo()

	c := domain.NewCategory("Fantasy", "Magic", domain.NewImage("categories/a.png", "image/png", 3))
	require.NoError(t, repo.Insert(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	found.Name = "Changed"
	found.Image.Key = "changed"

	again, err := repo.FindByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, "categories/a.png", again.Image.Key)
}

func TestCategoryRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepo()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = repo.FindByName(ctx, "nope")
	assert.ErrorIs(t, err, e.ErrNotFound)

	assert.ErrorIs(t, repo.Remove(ctx, uuid.New()), e.ErrNotFound)
	assert.ErrorIs(t, repo.Replace(ctx, domain.NewCategory("x", "y", nil)), e.ErrNotFound)

	found, err := repo.FindByIDs(ctx, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestItemRepo_FindByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()
	fantasy, animes := uuid.New(), uuid.New()

	dragon := domain.NewItem("Dragon", "Big", decimal.NewFromInt(150000), 1, []uuid.UUID{fantasy}, nil)
	berserk := domain.NewItem("Berserk", "Manga", decimal.RequireFromString("14.99"), 17, []uuid.UUID{animes, fantasy}, nil)
	vader := domain.NewItem("Darth Vader", "Sith", decimal.NewFromInt(2000000), 1, nil, nil)
	for _, item := range []*domain.Item{dragon, berserk, vader} {
		require.NoError(t, repo.Insert(ctx, item))
	}

	summaries, err := repo.FindByCategory(ctx, fantasy)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.ItemSummary{dragon.Summary(), berserk.Summary()}, summaries)

	summaries, err = repo.FindByCategory(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestItemRepo_ReplaceAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()

	item := domain.NewItem("Dragon", "Big", decimal.NewFromInt(1), 1, []uuid.UUID{uuid.New()}, nil)
	require.NoError(t, repo.Insert(ctx, item))
	assert.ErrorIs(t, repo.Insert(ctx, domain.NewItem("Dragon", "x", decimal.Zero, 0, nil, nil)), e.ErrNameTaken)

	item.CategoryIDs[0] = uuid.New()
	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.NotEqual(t, item.CategoryIDs[0], stored.CategoryIDs[0])

	item.Stock = 5
	require.NoError(t, repo.Replace(ctx, item))
	stored, err = repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	require.NoError(t, repo.Remove(ctx, item.ID))
	assert.ErrorIs(t, repo.Remove(ctx, item.ID), e.ErrNotFound)
}

func TestOutboxRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewOutboxRepo()

	for i := 0; i < 3; i++ {
		event, err := usecase.NewOutboxEvent(usecase.ItemCreated, uuid.New(), map[string]any{"n": i})
		require.NoError(t, err)
		_, err = repo.Create(ctx, event)
		require.NoError(t, err)
	}

	batch, err := repo.GetAndMarkAsProcessing(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, int64(1), batch[0].ID)
	assert.Equal(t, usecase.Processing, batch[0].Status)

	require.NoError(t, repo.MarkAsProcessed(ctx, batch[0].ID))

	rest, err := repo.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, int64(3), rest[0].ID)

	events := repo.Events()
	assert.Equal(t, usecase.Processed, events[0].Status)
	assert.NotNil(t, events[0].ProcessedAt)
	assert.Equal(t, usecase.Processing, events[1].Status)
}

func TestImageStore(t *testing.T) {
	ctx := context.Background()
	store := NewImageStore()

	img, err := store.UploadImage(ctx, "items", usecase.NewUpload([]byte("data"), "image/webp", "a.webp"))
	require.NoError(t, err)
	assert.Regexp(t, `^items/[0-9a-f-]{36}\.webp$`, img.Key)
	assert.Equal(t, int64(4), img.Size)

	content, err := store.GetImage(ctx, img.Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content.Data)

	store.CleanupImages([]string{img.Key})
	_, err = store.GetImage(ctx, img.Key)
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = store.UploadImage(ctx, "items", usecase.NewUpload([]byte("gif"), "image/gif", "a.gif"))
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}
