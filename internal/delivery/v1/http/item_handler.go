package http

import (
	"net/http"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
)

type ItemHandler struct {
	itemUsecase  usecase.ItemUC
	maxImageSize int64
	logger       logger.Logger
}

func NewItemHandler(itemUsecase usecase.ItemUC, maxImageSize int64, logger logger.Logger) *ItemHandler {
	return &ItemHandler{itemUsecase: itemUsecase, maxImageSize: maxImageSize, logger: logger}
}

// listItems
//
//	@Summary	Список товаров
//	@Tags		items
//	@Produce	json
//	@Success	200	{array}		ItemDTO
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items [get]
func (i *ItemHandler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := i.itemUsecase.List(r.Context())
	if err != nil {
		i.logger.Errorf(err, "list items")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemDTOs(items))
}

// newItemForm
//
//	@Summary	Данные для формы нового товара
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ItemFormResponse
//	@Router		/items/form [get]
func (i *ItemHandler) newItemForm(w http.ResponseWriter, r *http.Request) {
	res, err := i.itemUsecase.FormData(r.Context(), nil)
	if err != nil {
		i.logger.Errorf(err, "item form")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemFormResponse(res))
}

// editItemForm
//
//	@Summary	Данные для формы редактирования товара
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ItemFormResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/form [get]
func (i *ItemHandler) editItemForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := i.itemUsecase.FormData(r.Context(), &id)
	if err != nil {
		logOutcome(i.logger, "item form", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemFormResponse(res))
}

// createItem
//
//	@Summary		Создание товара
//	@Description	Все категории должны существовать. Идемпотентно по имени
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string		true	"Название (до 100 символов)"
//	@Param			description	formData	string		true	"Описание (до 500 символов)"
//	@Param			price		formData	string		true	"Цена, неотрицательное число"
//	@Param			stock		formData	integer		true	"Остаток, неотрицательное целое"
//	@Param			categories	formData	[]string	false	"ID категорий"	collectionFormat(multi)
//	@Param			image		formData	file		false	"Изображение (jpeg, png, webp)"
//	@Success		201			{object}	CreateResponse
//	@Success		200			{object}	CreateResponse	"Товар с таким именем уже есть"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		413			{object}	ErrorResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/items [post]
func (i *ItemHandler) createItem(w http.ResponseWriter, r *http.Request) {
	fields, upload, err := parseForm(w, r, i.maxImageSize)
	if err != nil {
		code, _ := ToHTTPResponse(err)
		i.logger.Warnf("%d %s", code, err.Error())
		WriteError(w, err)
		return
	}

	res, err := i.itemUsecase.Create(r.Context(), fields, upload)
	if err != nil {
		logOutcome(i.logger, "create item", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, createStatus(res), CreateResponse{ID: res.ID, Existing: res.Existing})
}

// getItem
//
//	@Summary	Товар с категориями
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ItemDTO
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (i *ItemHandler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := i.itemUsecase.Detail(r.Context(), id)
	if err != nil {
		logOutcome(i.logger, "get item", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toItemDTO(view))
}

// updateItem
//
//	@Summary		Обновление товара
//	@Description	Полная замена полей. Изображение меняется, только если передан файл
//	@Tags			items
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		string		true	"ID товара"
//	@Param			name		formData	string		true	"Название"
//	@Param			description	formData	string		true	"Описание"
//	@Param			price		formData	string		true	"Цена"
//	@Param			stock		formData	integer		true	"Остаток"
//	@Param			categories	formData	[]string	false	"ID категорий"	collectionFormat(multi)
//	@Param			image		formData	file		false	"Новое изображение"
//	@Success		200			{object}	UpdateResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/items/{id} [put]
func (i *ItemHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	fields, upload, err := parseForm(w, r, i.maxImageSize)
	if err != nil {
		code, _ := ToHTTPResponse(err)
		i.logger.Warnf("%d %s", code, err.Error())
		WriteError(w, err)
		return
	}

	res, err := i.itemUsecase.Update(r.Context(), id, fields, upload)
	if err != nil {
		logOutcome(i.logger, "update item", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, UpdateResponse{ID: res.ID})
}

// deleteItem
//
//	@Summary	Удаление товара
//	@Tags		items
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (i *ItemHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := i.itemUsecase.Delete(r.Context(), id); err != nil {
		i.logger.Errorf(err, "delete item %s", id)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getItemImage
//
//	@Summary	Изображение товара
//	@Tags		items
//	@Produce	image/jpeg,image/png,image/webp
//	@Param		id	path	string	true	"ID товара"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/image [get]
func (i *ItemHandler) getItemImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	content, err := i.itemUsecase.Image(r.Context(), id)
	if err != nil {
		logOutcome(i.logger, "get item image", err)
		WriteError(w, err)
		return
	}

	writeImage(w, content)
}
