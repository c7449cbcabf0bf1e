package redis

import (
	"encoding/json"
	"testing"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/repository/redis/converter"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKey(t *testing.T) {
	id := uuid.MustParse("7b0e1c1e-4a5f-4a44-9d3e-0f0c7e9b2a11")

	assert.Equal(t, "item:7b0e1c1e-4a5f-4a44-9d3e-0f0c7e9b2a11", itemKey(id))
	assert.Equal(t, []string{itemKey(id)}, buildItemCacheKeys([]uuid.UUID{id}))
}

func TestRedisValueToBytes(t *testing.T) {
	data, err := redisValueToBytes("abc", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	data, err = redisValueToBytes(nil, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = redisValueToBytes(42, "k")
	assert.Error(t, err)
}

func TestItemViewCacheRoundTrip(t *testing.T) {
	conv := converter.NewItemViewConverter()
	view := usecase.ItemView{
		ID:          uuid.New(),
		Name:        "Berserk",
		Description: "Manga",
		Price:       decimal.RequireFromString("14.99"),
		Stock:       17,
		Categories:  []usecase.CategoryRef{{ID: uuid.New(), Name: "Animes"}},
		Image:       domain.NewImage("items/a.png", "image/png", 4),
	}

	data, err := json.Marshal(conv.ToRedisModel(&view))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"14.99"`)

	model, err := unmarshalItemFromCache(data)
	require.NoError(t, err)

	got := conv.ToUseCase(model)
	assert.Equal(t, view.ID, got.ID)
	assert.True(t, view.Price.Equal(got.Price))
	assert.Equal(t, view.Categories, got.Categories)
	assert.Equal(t, view.Image, got.Image)
}
