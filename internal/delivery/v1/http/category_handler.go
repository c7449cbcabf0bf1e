package http

import (
	"net/http"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	maxImageSize    int64
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, maxImageSize int64, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, maxImageSize: maxImageSize, logger: logger}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}		CategoryDTO
//	@Failure	500	{object}	ErrorResponse
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categoryUsecase.List(r.Context())
	if err != nil {
		c.logger.Errorf(err, "list categories")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryDTOs(categories))
}

// createCategory
//
//	@Summary		Создание категории
//	@Description	Идемпотентно по имени: повторное создание возвращает существующую категорию
//	@Tags			categories
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Название (до 100 символов)"
//	@Param			description	formData	string	true	"Описание (до 500 символов)"
//	@Param			image		formData	file	false	"Изображение (jpeg, png, webp)"
//	@Success		201			{object}	CreateResponse	"Категория создана"
//	@Success		200			{object}	CreateResponse	"Категория с таким именем уже есть"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	fields, upload, err := parseForm(w, r, c.maxImageSize)
	if err != nil {
		code, _ := ToHTTPResponse(err)
		c.logger.Warnf("%d %s", code, err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.Create(r.Context(), fields, upload)
	if err != nil {
		logOutcome(c.logger, "create category", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, createStatus(res), CreateResponse{ID: res.ID, Existing: res.Existing})
}

// getCategory
//
//	@Summary	Категория и её товары
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"ID категории"
//	@Success	200	{object}	CategoryDetailResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.Detail(r.Context(), id)
	if err != nil {
		logOutcome(c.logger, "get category", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CategoryDetailResponse{
		Category: toCategoryDTO(res.Category),
		Items:    toItemSummaryDTOs(res.Items),
	})
}

// updateCategory
//
//	@Summary		Обновление категории
//	@Description	Полная замена имени и описания. Изображение меняется, только если передан файл
//	@Tags			categories
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		string	true	"ID категории"
//	@Param			name		formData	string	true	"Название"
//	@Param			description	formData	string	true	"Описание"
//	@Param			image		formData	file	false	"Новое изображение"
//	@Success		200			{object}	UpdateResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	fields, upload, err := parseForm(w, r, c.maxImageSize)
	if err != nil {
		code, _ := ToHTTPResponse(err)
		c.logger.Warnf("%d %s", code, err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.categoryUsecase.Update(r.Context(), id, fields, upload)
	if err != nil {
		logOutcome(c.logger, "update category", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, UpdateResponse{ID: res.ID})
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Запрещено, пока на категорию ссылаются товары. Удаление отсутствующей категории — не ошибка
//	@Tags			categories
//	@Produce		json
//	@Param			id	path	string	true	"ID категории"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		409	{object}	BlockedResponse
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.categoryUsecase.Delete(r.Context(), id); err != nil {
		logOutcome(c.logger, "delete category", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getCategoryImage
//
//	@Summary	Изображение категории
//	@Tags		categories
//	@Produce	image/jpeg,image/png,image/webp
//	@Param		id	path	string	true	"ID категории"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id}/image [get]
func (c *CategoryHandler) getCategoryImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	content, err := c.categoryUsecase.Image(r.Context(), id)
	if err != nil {
		logOutcome(c.logger, "get category image", err)
		WriteError(w, err)
		return
	}

	writeImage(w, content)
}
