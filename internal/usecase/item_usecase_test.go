package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemUseCase_Create(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	animes := c.mustCreateCategory(t, "Animes")

	res, err := c.itemUC.Create(ctx, itemFields("Berserk", "Dark fantasy manga", "14.99", "17", animes), pngUpload())
	require.NoError(t, err)
	assert.False(t, res.Existing)

	view, err := c.itemUC.Detail(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berserk", view.Name)
	assert.True(t, decimal.RequireFromString("14.99").Equal(view.Price))
	assert.Equal(t, 17, view.Stock)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, usecase.CategoryRef{ID: animes, Name: "Animes"}, view.Categories[0])
	require.NotNil(t, view.Image)
	assert.Equal(t, "image/png", view.Image.ContentType)

	events := c.outbox.Events()
	require.Len(t, events, 2)
	assert.Equal(t, usecase.ItemCreated, events[1].EventType)

	body, err := usecase.DecodeOutboxPayload(events[1].Payload)
	require.NoError(t, err)
	data := body.Fields["data"].GetStructValue()
	require.NotNil(t, data)
	assert.Equal(t, "Berserk", data.Fields["name"].GetStringValue())
	assert.Equal(t, "14.99", data.Fields["price"].GetStringValue())
	assert.Equal(t, float64(17), data.Fields["stock"].GetNumberValue())
	assert.Equal(t, res.ID.String(), body.Fields["aggregate_id"].GetStringValue())
}

func TestItemUseCase_Create_WithoutCategories(t *testing.T) {
	c := newCatalog(t, defaultPolicies)

	id := c.mustCreateItem(t, "Loose item")

	view, err := c.itemUC.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, view.Categories)
}

func TestItemUseCase_Create_ValidationEchoesInput(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	fantasy := c.mustCreateCategory(t, "Fantasy")
	animes := c.mustCreateCategory(t, "Animes")

	_, err := c.itemUC.Create(context.Background(), itemFields("", "A dragon", "abc", "", fantasy), nil)

	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has(usecase.FieldName, usecase.EmptyField))
	assert.True(t, vErr.Has(usecase.FieldPrice, usecase.NotNumeric))
	assert.True(t, vErr.Has(usecase.FieldStock, usecase.EmptyField))

	assert.Equal(t, "abc", vErr.Echo.Price)
	assert.True(t, vErr.Echo.IsSelected(fantasy))
	assert.False(t, vErr.Echo.IsSelected(animes))

	require.Len(t, vErr.AllCategories, 2)
	assert.Equal(t, "Animes", vErr.AllCategories[0].Name)
	assert.Equal(t, "Fantasy", vErr.AllCategories[1].Name)

	items, err := c.itemUC.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemUseCase_Create_DanglingReference(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	fantasy := c.mustCreateCategory(t, "Fantasy")
	missing := uuid.New()

	_, err := c.itemUC.Create(context.Background(), itemFields("Dragon", "Big", "150000", "1", fantasy, missing), pngUpload())

	var dErr *usecase.DanglingReferenceError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, []uuid.UUID{missing}, dErr.IDs)

	items, err := c.itemUC.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, c.images.Keys())
}

func TestItemUseCase_Create_DuplicateReusesExisting(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	first := c.mustCreateItem(t, "Dragon")

	res, err := c.itemUC.Create(ctx, itemFields("Dragon", "Another", "1", "1"), nil)
	require.NoError(t, err)

	assert.Equal(t, first, res.ID)
	assert.True(t, res.Existing)
}

func TestItemUseCase_Create_DuplicateRejected(t *testing.T) {
	c := newCatalog(t, usecase.Policies{DuplicateName: usecase.DuplicateReject, Image: usecase.ImageOptional})
	c.mustCreateItem(t, "Dragon")

	_, err := c.itemUC.Create(context.Background(), itemFields("Dragon", "Another", "1", "1"), nil)

	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has(usecase.FieldName, usecase.NameTaken))
	assert.NotNil(t, vErr.AllCategories)
}

func TestItemUseCase_Create_ConcurrentSameName(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	fantasy := c.mustCreateCategory(t, "Fantasy")

	const workers = 16
	var (
		wg  sync.WaitGroup
		ids = make([]uuid.UUID, workers)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.itemUC.Create(context.Background(), itemFields("Dragon", "Big", "150000", "1", fantasy), pngUpload())
			if assert.NoError(t, err) {
				ids[w] = res.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	items, err := c.itemUC.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	// изображения проигравших запросов удаляются
	assert.Len(t, c.images.Keys(), 1)
}

func TestItemUseCase_Update(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	fantasy := c.mustCreateCategory(t, "Fantasy")
	scifi := c.mustCreateCategory(t, "Science Fiction")
	id := c.mustCreateItem(t, "Dragon", fantasy)

	_, err := c.itemUC.Detail(ctx, id)
	require.NoError(t, err)
	require.True(t, c.cache.Has(id))

	res, err := c.itemUC.Update(ctx, id, itemFields("Space Dragon", "Flies", "2000000", "2", scifi), nil)
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
	assert.False(t, c.cache.Has(id))

	view, err := c.itemUC.Detail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Space Dragon", view.Name)
	assert.Equal(t, 2, view.Stock)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "Science Fiction", view.Categories[0].Name)

	events := c.outbox.Events()
	assert.Equal(t, usecase.ItemUpdated, events[len(events)-1].EventType)
}

func TestItemUseCase_Update_NotFound(t *testing.T) {
	c := newCatalog(t, defaultPolicies)

	_, err := c.itemUC.Update(context.Background(), uuid.New(), itemFields("Dragon", "Big", "1", "1"), nil)

	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestItemUseCase_Update_DanglingReference(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	fantasy := c.mustCreateCategory(t, "Fantasy")
	id := c.mustCreateItem(t, "Dragon", fantasy)
	missing := uuid.New()

	_, err := c.itemUC.Update(ctx, id, itemFields("Dragon", "Big", "1", "1", missing), nil)

	var dErr *usecase.DanglingReferenceError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, []uuid.UUID{missing}, dErr.IDs)

	view, err := c.itemUC.Detail(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, fantasy, view.Categories[0].ID)
}

func TestItemUseCase_Update_NameTaken(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	c.mustCreateItem(t, "Dragon")
	id := c.mustCreateItem(t, "Berserk")

	_, err := c.itemUC.Update(context.Background(), id, itemFields("Dragon", "Big", "1", "1"), nil)

	var vErr *usecase.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has(usecase.FieldName, usecase.NameTaken))
}

func TestItemUseCase_Update_KeepsOwnName(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	id := c.mustCreateItem(t, "Dragon")

	_, err := c.itemUC.Update(context.Background(), id, itemFields("Dragon", "Bigger", "2", "2"), nil)
	assert.NoError(t, err)
}

func TestItemUseCase_Delete(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()

	res, err := c.itemUC.Create(ctx, itemFields("Dragon", "Big", "1", "1"), pngUpload())
	require.NoError(t, err)
	_, err = c.itemUC.Detail(ctx, res.ID)
	require.NoError(t, err)

	require.NoError(t, c.itemUC.Delete(ctx, res.ID))

	_, err = c.itemUC.Detail(ctx, res.ID)
	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
	assert.False(t, c.cache.Has(res.ID))
	assert.Empty(t, c.images.Keys())

	events := c.outbox.Events()
	assert.Equal(t, usecase.ItemDeleted, events[len(events)-1].EventType)
}

func TestItemUseCase_Delete_MissingIsNoop(t *testing.T) {
	c := newCatalog(t, defaultPolicies)

	assert.NoError(t, c.itemUC.Delete(context.Background(), uuid.New()))
	assert.Empty(t, c.outbox.Events())
}

func TestItemUseCase_List_SortedWithCategories(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	animes := c.mustCreateCategory(t, "Animes")
	fantasy := c.mustCreateCategory(t, "Fantasy")
	c.mustCreateItem(t, "Dragon", fantasy)
	c.mustCreateItem(t, "Berserk", animes, fantasy)
	c.mustCreateItem(t, "Darth Vader")

	items, err := c.itemUC.List(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "Berserk", items[0].Name)
	assert.Equal(t, "Darth Vader", items[1].Name)
	assert.Equal(t, "Dragon", items[2].Name)
	assert.Len(t, items[0].Categories, 2)
	assert.Empty(t, items[1].Categories)
}

func TestItemUseCase_FormData(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	fantasy := c.mustCreateCategory(t, "Fantasy")
	animes := c.mustCreateCategory(t, "Animes")
	id := c.mustCreateItem(t, "Berserk", animes)

	empty, err := c.itemUC.FormData(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, empty.AllCategories, 2)
	assert.Empty(t, empty.Echo.SelectedCategoryIDs)

	form, err := c.itemUC.FormData(ctx, &id)
	require.NoError(t, err)
	assert.Equal(t, "Berserk", form.Echo.Name)
	assert.Equal(t, "10.5", form.Echo.Price)
	assert.Equal(t, "3", form.Echo.Stock)
	assert.True(t, form.Echo.IsSelected(animes))
	assert.False(t, form.Echo.IsSelected(fantasy))

	// записи категорий не меняются при отметке в форме
	all, err := c.categoryUC.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, form.AllCategories)

	missing := uuid.New()
	_, err = c.itemUC.FormData(ctx, &missing)
	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
}

func TestItemUseCase_GetItemsInfo(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	a := c.mustCreateItem(t, "Akira")
	b := c.mustCreateItem(t, "Berserk")
	missing := uuid.New()

	_, err := c.itemUC.Detail(ctx, a)
	require.NoError(t, err)

	res, err := c.itemUC.GetItemsInfo(ctx, usecase.NewGetItemsReq([]uuid.UUID{b, missing, a}))
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, b, res.Items[0].ID)
	assert.Equal(t, a, res.Items[1].ID)
	assert.Equal(t, []uuid.UUID{missing}, res.NotFound)
	assert.True(t, c.cache.Has(b))
}

func TestItemUseCase_GetItemsInfo_Empty(t *testing.T) {
	c := newCatalog(t, defaultPolicies)

	_, err := c.itemUC.GetItemsInfo(context.Background(), usecase.NewGetItemsReq(nil))

	assert.ErrorIs(t, err, e.ErrNoItems)
}

func TestItemUseCase_Detail_CacheUnavailable(t *testing.T) {
	cache := new(MockCacheRepository)
	cacheErr := errors.New("redis: connection refused")
	cache.On("GetItems", mock.Anything, mock.Anything).Return(nil, cacheErr)
	cache.On("SetItems", mock.Anything, mock.Anything).Return(cacheErr)

	c := newCatalogWithCache(t, defaultPolicies, cache)
	id := c.mustCreateItem(t, "Dragon")

	view, err := c.itemUC.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Dragon", view.Name)

	cache.AssertCalled(t, "GetItems", mock.Anything, []uuid.UUID{id})
	cache.AssertNumberOfCalls(t, "SetItems", 1)
}

func TestItemUseCase_Detail_ServedFromCache(t *testing.T) {
	cached := usecase.ItemView{ID: uuid.New(), Name: "Cached"}
	cache := new(MockCacheRepository)
	cache.On("GetItems", mock.Anything, []uuid.UUID{cached.ID}).
		Return(map[uuid.UUID]usecase.ItemView{cached.ID: cached}, nil)

	c := newCatalogWithCache(t, defaultPolicies, cache)

	view, err := c.itemUC.Detail(context.Background(), cached.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", view.Name)
	cache.AssertNotCalled(t, "SetItems", mock.Anything, mock.Anything)
}

func TestItemUseCase_Detail_SkipsDeletedCategory(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()
	fantasy := c.mustCreateCategory(t, "Fantasy")
	require.NoError(t, c.categoryUC.Delete(ctx, fantasy))

	// ссылку на удалённую категорию записываем напрямую, как при гонке с удалением
	id := c.mustCreateItem(t, "Phoenix")
	stored, err := c.items.FindByID(ctx, id)
	require.NoError(t, err)
	stored.CategoryIDs = []uuid.UUID{fantasy}
	require.NoError(t, c.items.Replace(ctx, stored))

	view, err := c.itemUC.Detail(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, view.Categories)
}

func TestItemUseCase_Image(t *testing.T) {
	c := newCatalog(t, defaultPolicies)
	ctx := context.Background()

	res, err := c.itemUC.Create(ctx, itemFields("Dragon", "Big", "1", "1"), pngUpload())
	require.NoError(t, err)

	content, err := c.itemUC.Image(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, pngUpload().Data, content.Data)

	plain := c.mustCreateItem(t, "Plain")
	_, err = c.itemUC.Image(ctx, plain)
	assert.ErrorIs(t, err, usecase.ErrImageNotFound)

	_, err = c.itemUC.Image(ctx, uuid.New())
	assert.ErrorIs(t, err, usecase.ErrItemNotFound)
}
