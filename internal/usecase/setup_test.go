package usecase_test

import (
	"context"
	"testing"

	"github.com/ColdBlood237/odin-inventory/internal/repository/memory"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultPolicies = usecase.Policies{
	DuplicateName: usecase.DuplicateReuse,
	Image:         usecase.ImageOptional,
}

type catalog struct {
	categories *memory.CategoryRepo
	items      *memory.ItemRepo
	outbox     *memory.OutboxRepo
	cache      *memory.CacheRepo
	images     *memory.ImageStore
	categoryUC *usecase.CategoryUseCase
	itemUC     *usecase.ItemUseCase
}

func newCatalog(t *testing.T, policies usecase.Policies) *catalog {
	t.Helper()
	return newCatalogWithCache(t, policies, memory.NewCacheRepo())
}

func newCatalogWithCache(t *testing.T, policies usecase.Policies, cache usecase.CacheRepository) *catalog {
	t.Helper()

	c := &catalog{
		categories: memory.NewCategoryRepo(),
		items:      memory.NewItemRepo(),
		outbox:     memory.NewOutboxRepo(),
		images:     memory.NewImageStore(),
	}
	if mc, ok := cache.(*memory.CacheRepo); ok {
		c.cache = mc
	}

	tx := memory.NewTxManager()
	log := logger.NewDiscardLogger()
	c.categoryUC = usecase.NewCategoryUC(c.categories, c.items, c.outbox, cache, tx, c.images, policies, log)
	c.itemUC = usecase.NewItemUC(c.items, c.categories, c.outbox, cache, tx, c.images, policies, log)
	return c
}

func categoryFields(name, description string) usecase.RawFields {
	return usecase.RawFields{
		"name":        {name},
		"description": {description},
	}
}

func itemFields(name, description, price, stock string, categories ...uuid.UUID) usecase.RawFields {
	fields := usecase.RawFields{
		"name":        {name},
		"description": {description},
		"price":       {price},
		"stock":       {stock},
	}
	for _, id := range categories {
		fields["categories"] = append(fields["categories"], id.String())
	}
	return fields
}

func pngUpload() *usecase.Upload {
	return usecase.NewUpload([]byte("\x89PNG\r\n\x1a\nfake"), "image/png", "cover.png")
}

func (c *catalog) mustCreateCategory(t *testing.T, name string) uuid.UUID {
	t.Helper()
	res, err := c.categoryUC.Create(context.Background(), categoryFields(name, name+" description"), nil)
	require.NoError(t, err)
	return res.ID
}

func (c *catalog) mustCreateItem(t *testing.T, name string, categories ...uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := c.itemUC.Create(context.Background(), itemFields(name, name+" description", "10.50", "3", categories...), nil)
	require.NoError(t, err)
	return res.ID
}

// MockCacheRepository — testify-мок кэша для проверки деградации при его недоступности.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]usecase.ItemView, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]usecase.ItemView), args.Error(1)
}

func (m *MockCacheRepository) SetItems(ctx context.Context, items []usecase.ItemView) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteItems(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
