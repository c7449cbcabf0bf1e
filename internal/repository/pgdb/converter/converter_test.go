package converter

import (
	"testing"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryConverter_Image(t *testing.T) {
	conv := NewCategoryConverter()

	withImage := domain.NewCategory("Fantasy", "Magic", domain.NewImage("categories/a.png", "image/png", 10))
	model := conv.ToModel(withImage)
	require.NotNil(t, model.Image.Key)
	assert.Equal(t, "categories/a.png", *model.Image.Key)
	assert.Equal(t, withImage, conv.ToEntity(model))

	plain := domain.NewCategory("Animes", "Japan", nil)
	model = conv.ToModel(plain)
	assert.Nil(t, model.Image.Key)
	assert.Nil(t, conv.ToEntity(model).Image)
}

func TestItemConverter(t *testing.T) {
	conv := NewItemConverter()

	item := domain.NewItem("Berserk", "Manga", decimal.RequireFromString("14.99"), 17, []uuid.UUID{uuid.New()}, nil)
	assert.Equal(t, item, conv.ToEntity(conv.ToModel(item)))
	assert.Nil(t, conv.ToModel(nil))
}

func TestOutboxEventConverter(t *testing.T) {
	conv := NewOutboxEventConverter()
	processed := time.Now().UTC()

	models := []*OutboxEventModel{{
		ID:          7,
		EventID:     uuid.New(),
		EventType:   "item.deleted",
		AggregateID: uuid.New(),
		Payload:     []byte{1, 2},
		Status:      "processed",
		CreatedAt:   processed.Add(-time.Minute),
		ProcessedAt: &processed,
	}}

	events := conv.ToArrEntity(models)
	require.Len(t, events, 1)
	assert.Equal(t, usecase.ItemDeleted, events[0].EventType)
	assert.Equal(t, usecase.Processed, events[0].Status)
	assert.Equal(t, models[0], conv.ToModel(events[0]))
}
