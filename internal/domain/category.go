package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category описывает категорию каталога
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       *Image
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewCategory(name string, description string, image *Image) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Image:       image,
		CreatedAt:   time.Now().UTC(),
	}
}
