// Package converter преобразует сущности между domain/usecase и моделями PostgreSQL.
package converter

import (
	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
)

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// ItemConverter преобразует сущности Item между domain и моделью PostgreSQL.
type ItemConverter interface {
	ToModel(entity *domain.Item) *ItemModel
	ToEntity(model *ItemModel) *domain.Item
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type CategoryConverterImpl struct{}

func NewCategoryConverter() *CategoryConverterImpl {
	return &CategoryConverterImpl{}
}

func (CategoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	if entity == nil {
		return nil
	}
	return &CategoryModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
		Image:       imageToColumns(entity.Image),
	}
}

func (CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	if model == nil {
		return nil
	}
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Image:       columnsToImage(model.Image),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

type ItemConverterImpl struct{}

func NewItemConverter() *ItemConverterImpl {
	return &ItemConverterImpl{}
}

func (ItemConverterImpl) ToModel(entity *domain.Item) *ItemModel {
	if entity == nil {
		return nil
	}
	return &ItemModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		Stock:       entity.Stock,
		CategoryIDs: entity.CategoryIDs,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
		Image:       imageToColumns(entity.Image),
	}
}

func (ItemConverterImpl) ToEntity(model *ItemModel) *domain.Item {
	if model == nil {
		return nil
	}
	return &domain.Item{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		CategoryIDs: model.CategoryIDs,
		Image:       columnsToImage(model.Image),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverter() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	if models == nil {
		return nil
	}
	result := make([]*usecase.OutboxEvent, len(models))
	for i, m := range models {
		result[i] = c.ToEntity(m)
	}
	return result
}

func imageToColumns(image *domain.Image) ImageColumns {
	if image == nil {
		return ImageColumns{}
	}
	return ImageColumns{
		Key:         &image.Key,
		ContentType: &image.ContentType,
		Size:        &image.Size,
	}
}

func columnsToImage(cols ImageColumns) *domain.Image {
	if cols.Key == nil {
		return nil
	}

	image := &domain.Image{Key: *cols.Key}
	if cols.ContentType != nil {
		image.ContentType = *cols.ContentType
	}
	if cols.Size != nil {
		image.Size = *cols.Size
	}
	return image
}
