package usecase

import (
	"fmt"
	"strings"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = e.Wrap("category", e.ErrNotFound)
	ErrItemNotFound     = e.Wrap("item", e.ErrNotFound)
	ErrImageNotFound    = e.Wrap("image", e.ErrNotFound)
)

// ValidationError — отказ с перечнем ошибок по полям. Echo и AllCategories нужны
// для повторного показа формы.
type ValidationError struct {
	Fields        []FieldError
	Echo          Echo
	AllCategories []*domain.Category
}

func NewValidationError(fields []FieldError, echo Echo, allCategories []*domain.Category) *ValidationError {
	return &ValidationError{
		Fields:        fields,
		Echo:          echo,
		AllCategories: allCategories,
	}
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Kind))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has сообщает, есть ли среди ошибок ошибка kind для поля field.
func (v *ValidationError) Has(field string, kind FieldKind) bool {
	for _, f := range v.Fields {
		if f.Field == field && f.Kind == kind {
			return true
		}
	}
	return false
}

// BlockedError — категорию нельзя удалить, пока на неё ссылаются товары.
type BlockedError struct {
	CategoryID uuid.UUID
	Items      []domain.ItemSummary
}

func NewBlockedError(categoryID uuid.UUID, items []domain.ItemSummary) *BlockedError {
	return &BlockedError{CategoryID: categoryID, Items: items}
}

func (b *BlockedError) Error() string {
	return fmt.Sprintf("category %s is referenced by %d item(s)", b.CategoryID, len(b.Items))
}

// DanglingReferenceError — товар ссылается на несуществующие категории.
type DanglingReferenceError struct {
	IDs []uuid.UUID
}

func NewDanglingReferenceError(ids []uuid.UUID) *DanglingReferenceError {
	return &DanglingReferenceError{IDs: ids}
}

func (d *DanglingReferenceError) Error() string {
	ids := make([]string, len(d.IDs))
	for i, id := range d.IDs {
		ids[i] = id.String()
	}
	return "unknown category id(s): " + strings.Join(ids, ", ")
}
