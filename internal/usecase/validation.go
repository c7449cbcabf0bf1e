package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Границы колонок items.price NUMERIC(14, 2) и items.stock INTEGER.
const priceScale = 2

var maxPrice = decimal.New(1, 12)

// Имена полей формы.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldCategories  = "categories"
	FieldImage       = "image"
)

type FieldKind string

const (
	EmptyField      FieldKind = "empty_field"
	TooLong         FieldKind = "too_long"
	NotNumeric      FieldKind = "not_numeric"
	InvalidID       FieldKind = "invalid_id"
	UnsupportedType FieldKind = "unsupported_type"
	NameTaken       FieldKind = "name_taken"
)

// FieldError — ошибка валидации одного поля.
type FieldError struct {
	Field   string
	Kind    FieldKind
	Message string
}

// RawFields — сырые значения формы в порядке поступления.
type RawFields map[string][]string

// Value возвращает первое значение ключа или пустую строку.
func (f RawFields) Value(key string) string {
	if v := f[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (f RawFields) Values(key string) []string {
	return f[key]
}

type CategoryDraft struct {
	Name        string
	Description string
}

type ItemDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryIDs []uuid.UUID
}

// ValidateCategory проверяет поля категории за один проход и собирает все ошибки.
// hasImage — у редактируемой записи уже есть изображение.
func ValidateCategory(fields RawFields, upload *Upload, hasImage bool, policy ImagePolicy) (*CategoryDraft, []FieldError) {
	var v fieldValidator

	draft := &CategoryDraft{
		Name:        v.text(FieldName, fields.Value(FieldName), maxNameLength),
		Description: v.text(FieldDescription, fields.Value(FieldDescription), maxDescriptionLength),
	}
	v.image(upload, hasImage, policy)

	if len(v.errs) > 0 {
		return nil, v.errs
	}
	return draft, nil
}

// ValidateItem проверяет поля товара за один проход и собирает все ошибки.
// Порядок ошибок: name, description, price, stock, categories, image.
func ValidateItem(fields RawFields, upload *Upload, hasImage bool, policy ImagePolicy) (*ItemDraft, []FieldError) {
	var v fieldValidator

	draft := &ItemDraft{
		Name:        v.text(FieldName, fields.Value(FieldName), maxNameLength),
		Description: v.text(FieldDescription, fields.Value(FieldDescription), maxDescriptionLength),
		Price:       v.price(fields.Value(FieldPrice)),
		Stock:       v.stock(fields.Value(FieldStock)),
		CategoryIDs: v.categoryIDs(fields.Values(FieldCategories)),
	}
	v.image(upload, hasImage, policy)

	if len(v.errs) > 0 {
		return nil, v.errs
	}
	return draft, nil
}

type fieldValidator struct {
	errs []FieldError
}

func (v *fieldValidator) add(field string, kind FieldKind, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Kind: kind, Message: message})
}

func (v *fieldValidator) text(field string, raw string, limit int) string {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		v.add(field, EmptyField, field+" must not be empty")
	case utf8.RuneCountInString(s) > limit:
		v.add(field, TooLong, fmt.Sprintf("%s must be at most %d characters", field, limit))
	}
	return s
}

func (v *fieldValidator) price(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		v.add(FieldPrice, EmptyField, "price must not be empty")
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		v.add(FieldPrice, NotNumeric, "price must be a non-negative number")
		return decimal.Zero
	}
	if !d.Equal(d.Round(priceScale)) {
		v.add(FieldPrice, NotNumeric, fmt.Sprintf("price must have at most %d decimal places", priceScale))
		return decimal.Zero
	}
	if d.GreaterThanOrEqual(maxPrice) {
		v.add(FieldPrice, NotNumeric, "price must be less than "+maxPrice.String())
		return decimal.Zero
	}
	return d.Round(priceScale)
}

func (v *fieldValidator) stock(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		v.add(FieldStock, EmptyField, "stock must not be empty")
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		v.add(FieldStock, NotNumeric, fmt.Sprintf("stock must be an integer between 0 and %d", math.MaxInt32))
		return 0
	}
	return int(n)
}

// categoryIDs превращает значения поля в множество: пустые значения пропускаются,
// повторы схлопываются с сохранением порядка первого вхождения.
func (v *fieldValidator) categoryIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))

	var invalid []string
	for _, value := range raw {
		s := strings.TrimSpace(value)
		if s == "" {
			continue
		}

		id, err := uuid.Parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(invalid) > 0 {
		v.add(FieldCategories, InvalidID, "invalid category id(s): "+strings.Join(invalid, ", "))
	}
	return ids
}

func (v *fieldValidator) image(upload *Upload, hasImage bool, policy ImagePolicy) {
	if upload != nil {
		if _, err := domain.ImageExtension(upload.ContentType); err != nil {
			v.add(FieldImage, UnsupportedType, fmt.Sprintf("image type %q is not supported", upload.ContentType))
		}
		return
	}

	if policy == ImageRequired && !hasImage {
		v.add(FieldImage, EmptyField, "image is required")
	}
}

func nameTakenError() FieldError {
	return FieldError{Field: FieldName, Kind: NameTaken, Message: "name is already taken"}
}
