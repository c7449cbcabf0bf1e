package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item описывает товар каталога
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryIDs []uuid.UUID // множество, без повторов
	Image       *Image
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewItem(name string, description string, price decimal.Decimal, stock int, categoryIDs []uuid.UUID, image *Image) *Item {
	return &Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryIDs: categoryIDs,
		Image:       image,
		CreatedAt:   time.Now().UTC(),
	}
}

// References сообщает, ссылается ли товар на категорию.
func (i *Item) References(categoryID uuid.UUID) bool {
	return slices.Contains(i.CategoryIDs, categoryID)
}

// Summary возвращает краткую проекцию товара.
func (i *Item) Summary() ItemSummary {
	return ItemSummary{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
	}
}

// ItemSummary — проекция товара для страницы категории и отказа в удалении.
type ItemSummary struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
}
