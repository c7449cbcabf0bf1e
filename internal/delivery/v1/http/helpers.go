package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const (
	imageField = "image"
	maxMemory  = 8 << 20
	// запас на текстовые поля формы сверх лимита изображения
	formOverhead = 1 << 20
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedForm):
		return http.StatusBadRequest, e.ErrExpectedForm.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrNoItems):
		return http.StatusBadRequest, e.ErrNoItems.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return http.StatusNotFound, usecase.ErrCategoryNotFound.Error()
	case errors.Is(err, usecase.ErrItemNotFound):
		return http.StatusNotFound, usecase.ErrItemNotFound.Error()
	case errors.Is(err, usecase.ErrImageNotFound):
		return http.StatusNotFound, usecase.ErrImageNotFound.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// WriteError пишет ответ об ошибке. Исходы бизнес-правил (валидация, запрет удаления,
// висячие ссылки) отдаются с подробностями, остальные ошибки кодом и сообщением.
func WriteError(w http.ResponseWriter, err error) {
	var (
		validation *usecase.ValidationError
		blocked    *usecase.BlockedError
		dangling   *usecase.DanglingReferenceError
	)

	switch {
	case errors.As(err, &validation):
		WriteSuccess(w, http.StatusUnprocessableEntity, toValidationResponse(validation))
	case errors.As(err, &blocked):
		WriteSuccess(w, http.StatusConflict, toBlockedResponse(blocked))
	case errors.As(err, &dangling):
		WriteSuccess(w, http.StatusUnprocessableEntity, toDanglingResponse(dangling))
	default:
		code, msg := ToHTTPResponse(err)
		WriteSuccess(w, code, NewErrorResponse(code, msg))
	}
}

// WriteSuccess сериализует ответ до отправки заголовков, поэтому ошибка кодирования
// превращается в 500. Ошибка записи в соединение означает, что клиент уже отключился.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(NewErrorResponse(status, e.ErrInternalServerError.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeImage(w http.ResponseWriter, content *usecase.ImageContent) {
	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(content.Data)
}

// parseID читает UUID из параметра маршрута {id}.
func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, e.Wrap(chi.URLParam(r, "id"), e.ErrInvalidID)
	}
	return id, nil
}

// parseForm разбирает форму (multipart или urlencoded) в RawFields и необязательный файл.
func parseForm(w http.ResponseWriter, r *http.Request, maxImageSize int64) (usecase.RawFields, *usecase.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+formOverhead)

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, nil, formError(err)
		}
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, nil, formError(err)
		}
		return usecase.RawFields(r.PostForm), nil, nil
	default:
		return nil, nil, e.Wrap(whereami.WhereAmI(), e.ErrExpectedForm)
	}

	fields := usecase.RawFields(r.MultipartForm.Value)

	files := r.MultipartForm.File[imageField]
	if len(files) == 0 {
		return fields, nil, nil
	}

	upload, err := readFile(files[0], maxImageSize)
	if err != nil {
		return nil, nil, err
	}
	return fields, upload, nil
}

// readFile читает загруженный файл и определяет тип по содержимому.
// Пустое поле файла (форма отправлена без выбора изображения) даёт nil.
func readFile(fh *multipart.FileHeader, maxSize int64) (*usecase.Upload, error) {
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}
	if fh.Size > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, nil
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return usecase.NewUpload(data, mimeType, fh.Filename), nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return e.Wrap(whereami.WhereAmI(), e.ErrFileTooLarge)
	}
	return e.Wrap(err.Error(), e.ErrStatusBadRequest)
}

// createStatus: 201 для новой записи, 200 если вернули уже существующую.
func createStatus(res *usecase.CreateRes) int {
	if res.Existing {
		return http.StatusOK
	}
	return http.StatusCreated
}

// logOutcome пишет отказы бизнес-правил как warn, а сбои как error.
func logOutcome(log logger.Logger, action string, err error) {
	code, _ := ToHTTPResponse(err)
	var (
		validation *usecase.ValidationError
		blocked    *usecase.BlockedError
		dangling   *usecase.DanglingReferenceError
	)
	if code < http.StatusInternalServerError ||
		errors.As(err, &validation) || errors.As(err, &blocked) || errors.As(err, &dangling) {
		log.Warnf("%s: %v", action, err)
		return
	}
	log.Errorf(err, "%s", action)
}
