package usecase

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
)

const (
	categoryImagePrefix = "categories"
	itemImagePrefix     = "items"
)

// storeImage сохраняет загруженный файл. Без файла возвращает nil.
func storeImage(ctx context.Context, images ImagesInfra, prefix string, upload *Upload) (*domain.Image, error) {
	if upload == nil {
		return nil, nil
	}
	return images.UploadImage(ctx, prefix, upload)
}

// cleanupImages запускает фоновое удаление объектов, которые больше ни на что не ссылаются.
func cleanupImages(images ImagesInfra, list ...*domain.Image) {
	keys := make([]string, 0, len(list))
	for _, img := range list {
		if img != nil {
			keys = append(keys, img.Key)
		}
	}
	if len(keys) > 0 {
		images.CleanupImages(keys)
	}
}

// writeEvent записывает событие в outbox в рамках текущей транзакции.
func writeEvent(ctx context.Context, repo OutboxRepository, eventType OutboxEventType, aggregateID uuid.UUID, data map[string]any) error {
	event, err := NewOutboxEvent(eventType, aggregateID, data)
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, event)
	return err
}

// isFault сообщает, что ошибка не является штатным «не найдено».
func isFault(err error) bool {
	return err != nil && !errors.Is(err, e.ErrNotFound)
}

func sortCategories(categories []*domain.Category) {
	slices.SortFunc(categories, func(a, b *domain.Category) int { return cmp.Compare(a.Name, b.Name) })
}

func sortSummaries(items []domain.ItemSummary) {
	slices.SortFunc(items, func(a, b domain.ItemSummary) int { return cmp.Compare(a.Name, b.Name) })
}

func sortItemViews(items []ItemView) {
	slices.SortFunc(items, func(a, b ItemView) int { return cmp.Compare(a.Name, b.Name) })
}
