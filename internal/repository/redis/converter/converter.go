package converter

import (
	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
)

type ItemViewConverter interface {
	ToRedisModel(entity *usecase.ItemView) *ItemViewRedisModel
	ToUseCase(model *ItemViewRedisModel) *usecase.ItemView
	ToArrRedisModel(entities []usecase.ItemView) []ItemViewRedisModel
}

type ItemViewConverterImpl struct{}

func NewItemViewConverter() *ItemViewConverterImpl {
	return &ItemViewConverterImpl{}
}

func (ItemViewConverterImpl) ToRedisModel(entity *usecase.ItemView) *ItemViewRedisModel {
	if entity == nil {
		return nil
	}

	categories := make([]CategoryRefRedisModel, len(entity.Categories))
	for i, c := range entity.Categories {
		categories[i] = CategoryRefRedisModel{ID: c.ID, Name: c.Name}
	}

	model := &ItemViewRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		Stock:       entity.Stock,
		Categories:  categories,
	}
	if entity.Image != nil {
		model.Image = &ImageRedisModel{
			Key:         entity.Image.Key,
			ContentType: entity.Image.ContentType,
			Size:        entity.Image.Size,
		}
	}
	return model
}

func (ItemViewConverterImpl) ToUseCase(model *ItemViewRedisModel) *usecase.ItemView {
	if model == nil {
		return nil
	}

	categories := make([]usecase.CategoryRef, len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = usecase.CategoryRef{ID: c.ID, Name: c.Name}
	}

	view := &usecase.ItemView{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		Categories:  categories,
	}
	if model.Image != nil {
		view.Image = domain.NewImage(model.Image.Key, model.Image.ContentType, model.Image.Size)
	}
	return view
}

func (c ItemViewConverterImpl) ToArrRedisModel(entities []usecase.ItemView) []ItemViewRedisModel {
	result := make([]ItemViewRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}
	return result
}
