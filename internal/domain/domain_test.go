package domain

import (
	"testing"

	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItem_References(t *testing.T) {
	fantasy, animes := uuid.New(), uuid.New()
	item := NewItem("Berserk", "Manga", decimal.RequireFromString("14.99"), 17, []uuid.UUID{animes}, nil)

	assert.True(t, item.References(animes))
	assert.False(t, item.References(fantasy))
	assert.NotEqual(t, uuid.Nil, item.ID)
}

func TestItem_Summary(t *testing.T) {
	item := NewItem("Dragon", "Big", decimal.NewFromInt(150000), 1, nil, nil)

	s := item.Summary()

	assert.Equal(t, item.ID, s.ID)
	assert.Equal(t, "Dragon", s.Name)
	assert.True(t, s.Price.Equal(decimal.NewFromInt(150000)))
}

func TestImageExtension(t *testing.T) {
	tests := []struct {
		mime string
		ext  string
		err  error
	}{
		{"image/jpeg", "jpg", nil},
		{"image/png", "png", nil},
		{"image/webp", "webp", nil},
		{"image/gif", "", e.ErrUnsupportedMediaType},
		{"text/plain; charset=utf-8", "", e.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			ext, err := ImageExtension(tt.mime)
			assert.Equal(t, tt.ext, ext)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
