package usecase

import (
	"context"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/google/uuid"
)

// CategoryRepository хранит категории. Имя уникально: Insert и Replace возвращают
// e.ErrNameTaken при коллизии, поиск по отсутствующему id — e.ErrNotFound.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Insert(ctx context.Context, category *domain.Category) error
	Replace(ctx context.Context, category *domain.Category) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type ItemRepository interface {
	FindAll(ctx context.Context) ([]*domain.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Item, error)
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	// FindByCategory возвращает краткие проекции товаров, ссылающихся на категорию.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.ItemSummary, error)
	Insert(ctx context.Context, item *domain.Item) error
	Replace(ctx context.Context, item *domain.Item) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

// CacheRepository кэширует ItemView. Ошибки кэша не должны ломать запросы.
type CacheRepository interface {
	GetItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ItemView, error)
	SetItems(ctx context.Context, items []ItemView) error
	DeleteItems(ctx context.Context, ids []uuid.UUID) error
}

// ImageRepository хранит байты изображений по ключу объекта.
type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image, data []byte) (string, error)
	Get(ctx context.Context, key string) (*ImageContent, error)
	Delete(ctx context.Context, key string) error
}
