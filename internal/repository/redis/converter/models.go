package converter

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryRefRedisModel struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ImageRedisModel struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ItemViewRedisModel — JSON-представление товара в кэше. Цена хранится строкой.
type ItemViewRedisModel struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Price       decimal.Decimal         `json:"price"`
	Stock       int                     `json:"stock"`
	Categories  []CategoryRefRedisModel `json:"categories"`
	Image       *ImageRedisModel        `json:"image,omitempty"`
}
