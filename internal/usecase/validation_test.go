package usecase_test

import (
	"strings"
	"testing"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(errs []usecase.FieldError) []string {
	res := make([]string, len(errs))
	for i, e := range errs {
		res[i] = e.Field + ":" + string(e.Kind)
	}
	return res
}

func TestValidateItem_CollectsAllErrors(t *testing.T) {
	fields := usecase.RawFields{
		"name":        {""},
		"description": {"x"},
		"price":       {"abc"},
		"stock":       {""},
	}

	t.Run("optional image", func(t *testing.T) {
		draft, errs := usecase.ValidateItem(fields, nil, false, usecase.ImageOptional)

		assert.Nil(t, draft)
		assert.Equal(t, []string{
			"name:empty_field",
			"price:not_numeric",
			"stock:empty_field",
		}, kinds(errs))
	})

	t.Run("required image", func(t *testing.T) {
		draft, errs := usecase.ValidateItem(fields, nil, false, usecase.ImageRequired)

		assert.Nil(t, draft)
		assert.Equal(t, []string{
			"name:empty_field",
			"price:not_numeric",
			"stock:empty_field",
			"image:empty_field",
		}, kinds(errs))
	})
}

func TestValidateItem_Normalizes(t *testing.T) {
	animes := uuid.New()
	fields := usecase.RawFields{
		"name":        {"  Berserk  "},
		"description": {"\tDark fantasy manga\n"},
		"price":       {" 14.99 "},
		"stock":       {"17"},
		"categories":  {animes.String(), "", "  ", animes.String()},
	}

	draft, errs := usecase.ValidateItem(fields, nil, false, usecase.ImageOptional)

	require.Empty(t, errs)
	assert.Equal(t, "Berserk", draft.Name)
	assert.Equal(t, "Dark fantasy manga", draft.Description)
	assert.True(t, draft.Price.Equal(decimal.RequireFromString("14.99")))
	assert.Equal(t, 17, draft.Stock)
	assert.Equal(t, []uuid.UUID{animes}, draft.CategoryIDs)
}

func TestValidateItem_SingleCategoryBecomesSet(t *testing.T) {
	id := uuid.New()
	fields := itemFields("Dragon", "Big", "150000", "1", id)

	draft, errs := usecase.ValidateItem(fields, nil, false, usecase.ImageOptional)

	require.Empty(t, errs)
	assert.Equal(t, []uuid.UUID{id}, draft.CategoryIDs)
}

func TestValidateItem_AbsentCategoriesIsEmptySet(t *testing.T) {
	draft, errs := usecase.ValidateItem(itemFields("Dragon", "Big", "1", "1"), nil, false, usecase.ImageOptional)

	require.Empty(t, errs)
	assert.NotNil(t, draft.CategoryIDs)
	assert.Empty(t, draft.CategoryIDs)
}

func TestValidateItem_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		fields usecase.RawFields
		want   []string
	}{
		{
			name:   "name at limit",
			fields: itemFields(strings.Repeat("ж", 100), "d", "1", "1"),
			want:   []string{},
		},
		{
			name:   "name too long",
			fields: itemFields(strings.Repeat("ж", 101), "d", "1", "1"),
			want:   []string{"name:too_long"},
		},
		{
			name:   "description too long",
			fields: itemFields("n", strings.Repeat("a", 501), "1", "1"),
			want:   []string{"description:too_long"},
		},
		{
			name:   "whitespace only name",
			fields: itemFields("   ", "d", "1", "1"),
			want:   []string{"name:empty_field"},
		},
		{
			name:   "negative price",
			fields: itemFields("n", "d", "-1", "1"),
			want:   []string{"price:not_numeric"},
		},
		{
			name:   "zero price and stock",
			fields: itemFields("n", "d", "0", "0"),
			want:   []string{},
		},
		{
			name:   "fractional stock",
			fields: itemFields("n", "d", "1", "1.5"),
			want:   []string{"stock:not_numeric"},
		},
		{
			name:   "price with trailing zeros beyond scale",
			fields: itemFields("n", "d", "10.500", "1"),
			want:   []string{},
		},
		{
			name:   "price with three decimal places",
			fields: itemFields("n", "d", "0.005", "1"),
			want:   []string{"price:not_numeric"},
		},
		{
			name:   "largest storable price",
			fields: itemFields("n", "d", "999999999999.99", "1"),
			want:   []string{},
		},
		{
			name:   "price beyond column precision",
			fields: itemFields("n", "d", "1000000000000", "1"),
			want:   []string{"price:not_numeric"},
		},
		{
			name:   "largest storable stock",
			fields: itemFields("n", "d", "1", "2147483647"),
			want:   []string{},
		},
		{
			name:   "stock beyond integer column",
			fields: itemFields("n", "d", "1", "3000000000"),
			want:   []string{"stock:not_numeric"},
		},
		{
			name:   "negative stock",
			fields: itemFields("n", "d", "1", "-3"),
			want:   []string{"stock:not_numeric"},
		},
		{
			name: "invalid category id",
			fields: usecase.RawFields{
				"name": {"n"}, "description": {"d"}, "price": {"1"}, "stock": {"1"},
				"categories": {"not-a-uuid"},
			},
			want: []string{"categories:invalid_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := usecase.ValidateItem(tt.fields, nil, false, usecase.ImageOptional)
			assert.Equal(t, tt.want, kinds(errs))
		})
	}
}

func TestValidateItem_NormalizesPriceToStoredScale(t *testing.T) {
	draft, errs := usecase.ValidateItem(itemFields("n", "d", " 10.500 ", "2147483647"), nil, false, usecase.ImageOptional)
	require.Empty(t, errs)

	assert.Equal(t, "10.50", draft.Price.StringFixed(2))
	assert.Equal(t, 2147483647, draft.Stock)
}

func TestValidateItem_ImageRules(t *testing.T) {
	fields := itemFields("n", "d", "1", "1")

	_, errs := usecase.ValidateItem(fields, usecase.NewUpload([]byte("GIF89a"), "image/gif", "a.gif"), false, usecase.ImageOptional)
	assert.Equal(t, []string{"image:unsupported_type"}, kinds(errs))

	_, errs = usecase.ValidateItem(fields, pngUpload(), false, usecase.ImageRequired)
	assert.Empty(t, errs)

	_, errs = usecase.ValidateItem(fields, nil, true, usecase.ImageRequired)
	assert.Empty(t, errs)
}

func TestValidateCategory(t *testing.T) {
	_, errs := usecase.ValidateCategory(categoryFields("", strings.Repeat("d", 501)), nil, false, usecase.ImageRequired)
	assert.Equal(t, []string{"name:empty_field", "description:too_long", "image:empty_field"}, kinds(errs))

	draft, errs := usecase.ValidateCategory(categoryFields(" Fantasy ", "Dragons and such"), nil, false, usecase.ImageOptional)
	require.Empty(t, errs)
	assert.Equal(t, "Fantasy", draft.Name)
}

func TestEcho_IsSelected(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	echo := usecase.NewEcho(usecase.RawFields{"categories": {a.String(), " ", a.String()}})

	assert.Equal(t, []string{a.String()}, echo.SelectedCategoryIDs)
	assert.True(t, echo.IsSelected(a))
	assert.False(t, echo.IsSelected(b))
}
