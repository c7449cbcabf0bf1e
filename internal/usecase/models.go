package usecase

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POLICIES

// DuplicateNamePolicy определяет реакцию на создание записи с уже занятым именем.
type DuplicateNamePolicy string

const (
	DuplicateReuse  DuplicateNamePolicy = "reuse"  // вернуть id существующей записи
	DuplicateReject DuplicateNamePolicy = "reject" // ошибка валидации NameTaken
)

type ImagePolicy string

const (
	ImageOptional ImagePolicy = "optional"
	ImageRequired ImagePolicy = "required"
)

type Policies struct {
	DuplicateName DuplicateNamePolicy
	Image         ImagePolicy
}

func NewPolicies(duplicateName string, image string) Policies {
	return Policies{
		DuplicateName: DuplicateNamePolicy(duplicateName),
		Image:         ImagePolicy(image),
	}
}

// REQUESTS

// Upload — файл изображения, полученный из multipart-формы.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string // оригинальное имя файла (для логов)
}

func NewUpload(data []byte, contentType string, filename string) *Upload {
	return &Upload{
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
	}
}

func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}

// GetItemsReq запрос информации о товарах по их идентификаторам.
type GetItemsReq struct {
	IDs []uuid.UUID
}

func NewGetItemsReq(ids []uuid.UUID) *GetItemsReq {
	return &GetItemsReq{IDs: ids}
}

// RESPONSES

// CreateRes — идентификатор созданной записи. Existing = true, если по политике reuse
// вернулась уже существующая запись с тем же именем.
type CreateRes struct {
	ID       uuid.UUID
	Existing bool
}

func NewCreateRes(id uuid.UUID, existing bool) *CreateRes {
	return &CreateRes{ID: id, Existing: existing}
}

type UpdateRes struct {
	ID uuid.UUID
}

func NewUpdateRes(id uuid.UUID) *UpdateRes {
	return &UpdateRes{ID: id}
}

type CategoryDetailRes struct {
	Category *domain.Category
	Items    []domain.ItemSummary
}

type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// ItemView — товар с разрешёнными категориями. Кэшируется в Redis.
type ItemView struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Categories  []CategoryRef
	Image       *domain.Image
}

// ItemFormRes — данные для формы товара: все категории и отмеченные.
type ItemFormRes struct {
	Echo          Echo
	AllCategories []*domain.Category
}

// GetItemsRes — найденные товары в порядке запроса и id, которых нет.
type GetItemsRes struct {
	Items    []ItemView
	NotFound []uuid.UUID
}

func NewGetItemsRes(items []ItemView, notFound []uuid.UUID) *GetItemsRes {
	return &GetItemsRes{Items: items, NotFound: notFound}
}

type ImageContent struct {
	Data        []byte
	ContentType string
}

// Echo — введённые пользователем значения для повторного показа формы.
// SelectedCategoryIDs — отдельная проекция, записи категорий не изменяются.
type Echo struct {
	Name                string
	Description         string
	Price               string
	Stock               string
	SelectedCategoryIDs []string
}

func NewEcho(fields RawFields) Echo {
	selected := make([]string, 0)
	for _, v := range fields.Values(FieldCategories) {
		s := strings.TrimSpace(v)
		if s != "" && !slices.Contains(selected, s) {
			selected = append(selected, s)
		}
	}

	return Echo{
		Name:                strings.TrimSpace(fields.Value(FieldName)),
		Description:         strings.TrimSpace(fields.Value(FieldDescription)),
		Price:               strings.TrimSpace(fields.Value(FieldPrice)),
		Stock:               strings.TrimSpace(fields.Value(FieldStock)),
		SelectedCategoryIDs: selected,
	}
}

func newEchoFromItem(item *domain.Item) Echo {
	selected := make([]string, len(item.CategoryIDs))
	for i, id := range item.CategoryIDs {
		selected[i] = id.String()
	}

	return Echo{
		Name:                item.Name,
		Description:         item.Description,
		Price:               item.Price.String(),
		Stock:               strconv.Itoa(item.Stock),
		SelectedCategoryIDs: selected,
	}
}

// IsSelected сообщает, отмечена ли категория в форме.
func (ec Echo) IsSelected(id uuid.UUID) bool {
	return slices.Contains(ec.SelectedCategoryIDs, id.String())
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key       string
	EventType string
	Payload   []byte
}

func NewWriteRawMessageReq(key string, eventType string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}
