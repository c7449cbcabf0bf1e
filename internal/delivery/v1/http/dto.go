package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/google/uuid"
)

const apiPrefix = "/api/v1"

type CreateResponse struct {
	ID       uuid.UUID `json:"id"`
	Existing bool      `json:"existing"`
}

type UpdateResponse struct {
	ID uuid.UUID `json:"id"`
}

type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CategoryRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
}

type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       string           `json:"price"`
	Stock       int              `json:"stock"`
	Categories  []CategoryRefDTO `json:"categories"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

type CategoryDetailResponse struct {
	Category CategoryDTO      `json:"category"`
	Items    []ItemSummaryDTO `json:"items"`
}

// FormCategoryDTO — категория в форме товара с отметкой выбора.
type FormCategoryDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Checked bool      `json:"checked"`
}

type FormValuesDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
}

type ItemFormResponse struct {
	Values     FormValuesDTO     `json:"values"`
	Categories []FormCategoryDTO `json:"categories"`
}

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code       int               `json:"code"`
	Message    string            `json:"message"`
	Errors     []FieldErrorDTO   `json:"errors"`
	Values     FormValuesDTO     `json:"values"`
	Categories []FormCategoryDTO `json:"categories,omitempty"`
}

type BlockedResponse struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Items   []ItemSummaryDTO `json:"items"`
}

type DanglingReferenceResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	IDs     []uuid.UUID `json:"ids"`
}

func imageURL(resource string, id uuid.UUID, image *domain.Image) *string {
	if image == nil {
		return nil
	}
	url := fmt.Sprintf("%s/%s/%s/image", apiPrefix, resource, id)
	return &url
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    imageURL("categories", c.ID, c.Image),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryDTOs(categories []*domain.Category) []CategoryDTO {
	result := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		result[i] = toCategoryDTO(c)
	}
	return result
}

func toItemSummaryDTOs(items []domain.ItemSummary) []ItemSummaryDTO {
	result := make([]ItemSummaryDTO, len(items))
	for i, item := range items {
		result[i] = ItemSummaryDTO{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.StringFixed(2),
		}
	}
	return result
}

func toItemDTO(v *usecase.ItemView) ItemDTO {
	categories := make([]CategoryRefDTO, len(v.Categories))
	for i, c := range v.Categories {
		categories[i] = CategoryRefDTO{ID: c.ID, Name: c.Name}
	}

	return ItemDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price.StringFixed(2),
		Stock:       v.Stock,
		Categories:  categories,
		ImageURL:    imageURL("items", v.ID, v.Image),
	}
}

func toItemDTOs(views []usecase.ItemView) []ItemDTO {
	result := make([]ItemDTO, len(views))
	for i := range views {
		result[i] = toItemDTO(&views[i])
	}
	return result
}

// toFormCategories отмечает выбранные категории, не изменяя сами записи.
func toFormCategories(all []*domain.Category, echo usecase.Echo) []FormCategoryDTO {
	result := make([]FormCategoryDTO, len(all))
	for i, c := range all {
		result[i] = FormCategoryDTO{ID: c.ID, Name: c.Name, Checked: echo.IsSelected(c.ID)}
	}
	return result
}

func toFormValues(echo usecase.Echo) FormValuesDTO {
	return FormValuesDTO{
		Name:        echo.Name,
		Description: echo.Description,
		Price:       echo.Price,
		Stock:       echo.Stock,
	}
}

func toItemFormResponse(res *usecase.ItemFormRes) ItemFormResponse {
	return ItemFormResponse{
		Values:     toFormValues(res.Echo),
		Categories: toFormCategories(res.AllCategories, res.Echo),
	}
}

func toValidationResponse(v *usecase.ValidationError) ValidationErrorResponse {
	errs := make([]FieldErrorDTO, len(v.Fields))
	for i, f := range v.Fields {
		errs[i] = FieldErrorDTO{Field: f.Field, Kind: string(f.Kind), Message: f.Message}
	}

	resp := ValidationErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: "validation failed",
		Errors:  errs,
		Values:  toFormValues(v.Echo),
	}
	if v.AllCategories != nil {
		resp.Categories = toFormCategories(v.AllCategories, v.Echo)
	}
	return resp
}

func toBlockedResponse(b *usecase.BlockedError) BlockedResponse {
	return BlockedResponse{
		Code:    http.StatusConflict,
		Message: "category is referenced by items",
		Items:   toItemSummaryDTOs(b.Items),
	}
}

func toDanglingResponse(d *usecase.DanglingReferenceError) DanglingReferenceResponse {
	return DanglingReferenceResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: "unknown category ids",
		IDs:     d.IDs,
	}
}
