package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ItemUseCase реализует бизнес-логику управления товарами.
type ItemUseCase struct {
	itemRepo     ItemRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	txManager    TxManager
	imagesInfra  ImagesInfra
	policies     Policies
	logger       logger.Logger
}

func NewItemUC(
	itemRepo ItemRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	policies Policies,
	logger logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		txManager:    txManager,
		imagesInfra:  imagesInfra,
		policies:     policies,
		logger:       logger,
	}
}

// List возвращает все товары по имени с разрешёнными категориями.
func (i *ItemUseCase) List(ctx context.Context) ([]ItemView, error) {
	const op = "ItemUseCase.List"

	var (
		items      []*domain.Item
		categories []*domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = i.itemRepo.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = i.categoryRepo.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, e.Wrap(op, err)
	}

	index := indexCategories(categories)
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item, index))
	}

	sortItemViews(views)
	return views, nil
}

// FormData возвращает все категории и, если задан id, текущие значения товара.
func (i *ItemUseCase) FormData(ctx context.Context, id *uuid.UUID) (*ItemFormRes, error) {
	const op = "ItemUseCase.FormData"

	categories, err := i.allCategories(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &ItemFormRes{Echo: Echo{SelectedCategoryIDs: []string{}}, AllCategories: categories}
	if id == nil {
		return res, nil
	}

	item, err := i.itemRepo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, ErrItemNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	res.Echo = newEchoFromItem(item)
	return res, nil
}

// Create проверяет поля и ссылки на категории и идемпотентно по имени создаёт товар.
func (i *ItemUseCase) Create(ctx context.Context, fields RawFields, upload *Upload) (*CreateRes, error) {
	const op = "ItemUseCase.Create"

	draft, fieldErrs := ValidateItem(fields, upload, false, i.policies.Image)
	if len(fieldErrs) > 0 {
		return nil, i.validationFailed(ctx, op, fieldErrs, fields)
	}

	if err := i.resolveCategories(ctx, draft.CategoryIDs); err != nil {
		return nil, err
	}

	existing, err := i.itemRepo.FindByName(ctx, draft.Name)
	if isFault(err) {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		return i.resolveDuplicate(ctx, op, existing, fields)
	}

	image, err := storeImage(ctx, i.imagesInfra, itemImagePrefix, upload)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	item := domain.NewItem(draft.Name, draft.Description, draft.Price, draft.Stock, draft.CategoryIDs, image)
	err = i.txManager.Do(ctx, func(ctx context.Context) error {
		if err := i.itemRepo.Insert(ctx, item); err != nil {
			return err
		}
		return writeEvent(ctx, i.outboxRepo, ItemCreated, item.ID, itemEventData(item))
	})
	if err != nil {
		cleanupImages(i.imagesInfra, image)
		if !errors.Is(err, e.ErrNameTaken) {
			return nil, e.Wrap(op, err)
		}

		winner, err := i.itemRepo.FindByName(ctx, draft.Name)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		i.logger.Infof("%s: concurrent create of %q resolved to %s", op, draft.Name, winner.ID)
		return i.resolveDuplicate(ctx, op, winner, fields)
	}

	i.logger.Infof("%s: item %s created", op, item.ID)
	return NewCreateRes(item.ID, false), nil
}

// Update полностью заменяет товар с идентификатором id.
func (i *ItemUseCase) Update(ctx context.Context, id uuid.UUID, fields RawFields, upload *Upload) (*UpdateRes, error) {
	const op = "ItemUseCase.Update"

	current, err := i.itemRepo.FindByID(ctx, id)
	if isFault(err) {
		return nil, e.Wrap(op, err)
	}

	hasImage := current != nil && current.Image != nil
	draft, fieldErrs := ValidateItem(fields, upload, hasImage, i.policies.Image)
	if len(fieldErrs) > 0 {
		return nil, i.validationFailed(ctx, op, fieldErrs, fields)
	}
	if current == nil {
		return nil, e.Wrap(op, ErrItemNotFound)
	}

	if err := i.resolveCategories(ctx, draft.CategoryIDs); err != nil {
		return nil, err
	}

	image, err := storeImage(ctx, i.imagesInfra, itemImagePrefix, upload)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated := *current
	updated.Name = draft.Name
	updated.Description = draft.Description
	updated.Price = draft.Price
	updated.Stock = draft.Stock
	updated.CategoryIDs = draft.CategoryIDs
	if image != nil {
		updated.Image = image
	}
	now := time.Now().UTC()
	updated.UpdatedAt = &now

	err = i.txManager.Do(ctx, func(ctx context.Context) error {
		if err := i.itemRepo.Replace(ctx, &updated); err != nil {
			return err
		}
		return writeEvent(ctx, i.outboxRepo, ItemUpdated, updated.ID, itemEventData(&updated))
	})
	if err != nil {
		cleanupImages(i.imagesInfra, image)
		switch {
		case errors.Is(err, e.ErrNameTaken):
			return nil, i.validationFailed(ctx, op, []FieldError{nameTakenError()}, fields)
		case errors.Is(err, e.ErrNotFound):
			return nil, e.Wrap(op, ErrItemNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	if image != nil {
		cleanupImages(i.imagesInfra, current.Image)
	}
	i.invalidate(ctx, id)

	return NewUpdateRes(id), nil
}

// Delete удаляет товар без дополнительных проверок. Отсутствующий товар — не ошибка.
func (i *ItemUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "ItemUseCase.Delete"

	var removed *domain.Item
	err := i.txManager.Do(ctx, func(ctx context.Context) error {
		item, err := i.itemRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := i.itemRepo.Remove(ctx, id); err != nil {
			return err
		}
		removed = item

		return writeEvent(ctx, i.outboxRepo, ItemDeleted, id, deletedEventData(id))
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			i.logger.Debugf("%s: item %s is already absent", op, id)
			return nil
		}
		return e.Wrap(op, err)
	}

	cleanupImages(i.imagesInfra, removed.Image)
	i.invalidate(ctx, id)
	i.logger.Infof("%s: item %s deleted", op, id)
	return nil
}

// Detail возвращает товар с категориями, сначала пробуя кэш.
func (i *ItemUseCase) Detail(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	const op = "ItemUseCase.Detail"

	res, err := i.GetItemsInfo(ctx, NewGetItemsReq([]uuid.UUID{id}))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(res.Items) == 0 {
		return nil, e.Wrap(op, ErrItemNotFound)
	}

	return &res.Items[0], nil
}

// GetItemsInfo возвращает товары по идентификаторам: сначала из кэша, затем из БД.
func (i *ItemUseCase) GetItemsInfo(ctx context.Context, req *GetItemsReq) (*GetItemsRes, error) {
	const op = "ItemUseCase.GetItemsInfo"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrNoItems)
	}

	cached, err := i.cacheRepo.GetItems(ctx, req.IDs)
	if err != nil {
		i.logger.Warnf("%s: cache lookup failed: %v", op, err)
		cached = nil
	}

	var misses []uuid.UUID
	for _, id := range req.IDs {
		if _, ok := cached[id]; !ok {
			misses = append(misses, id)
		}
	}

	loaded := make(map[uuid.UUID]ItemView, len(misses))
	if len(misses) > 0 {
		views, err := i.loadViews(ctx, misses)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		for _, v := range views {
			loaded[v.ID] = v
		}

		if len(views) > 0 {
			if err := i.cacheRepo.SetItems(ctx, views); err != nil {
				i.logger.Warnf("%s: failed to cache items: %v", op, err)
			}
		}
	}

	result := make([]ItemView, 0, len(req.IDs))
	notFound := make([]uuid.UUID, 0)
	for _, id := range req.IDs {
		if v, ok := cached[id]; ok {
			result = append(result, v)
		} else if v, ok := loaded[id]; ok {
			result = append(result, v)
		} else {
			notFound = append(notFound, id)
		}
	}

	return NewGetItemsRes(result, notFound), nil
}

// Image возвращает содержимое изображения товара.
func (i *ItemUseCase) Image(ctx context.Context, id uuid.UUID) (*ImageContent, error) {
	const op = "ItemUseCase.Image"

	item, err := i.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, ErrItemNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	if item.Image == nil {
		return nil, e.Wrap(op, ErrImageNotFound)
	}

	content, err := i.imagesInfra.GetImage(ctx, item.Image.Key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return content, nil
}

// loadViews загружает товары из БД и разрешает их категории одним запросом.
func (i *ItemUseCase) loadViews(ctx context.Context, ids []uuid.UUID) ([]ItemView, error) {
	items, err := i.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var categoryIDs []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, item := range items {
		for _, id := range item.CategoryIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	var categories []*domain.Category
	if len(categoryIDs) > 0 {
		categories, err = i.categoryRepo.FindByIDs(ctx, categoryIDs)
		if err != nil {
			return nil, err
		}
	}

	index := indexCategories(categories)
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item, index))
	}
	return views, nil
}

// resolveCategories проверяет, что все категории существуют.
func (i *ItemUseCase) resolveCategories(ctx context.Context, ids []uuid.UUID) error {
	const op = "ItemUseCase.resolveCategories"

	if len(ids) == 0 {
		return nil
	}

	found, err := i.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return e.Wrap(op, err)
	}

	index := indexCategories(found)
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := index[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		return NewDanglingReferenceError(missing)
	}
	return nil
}

func (i *ItemUseCase) resolveDuplicate(ctx context.Context, op string, existing *domain.Item, fields RawFields) (*CreateRes, error) {
	if i.policies.DuplicateName == DuplicateReject {
		return nil, i.validationFailed(ctx, op, []FieldError{nameTakenError()}, fields)
	}
	return NewCreateRes(existing.ID, true), nil
}

// validationFailed собирает ValidationError вместе со списком всех категорий для формы.
func (i *ItemUseCase) validationFailed(ctx context.Context, op string, fieldErrs []FieldError, fields RawFields) error {
	categories, err := i.allCategories(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}
	return NewValidationError(fieldErrs, NewEcho(fields), categories)
}

func (i *ItemUseCase) allCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := i.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortCategories(categories)
	return categories, nil
}

func (i *ItemUseCase) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if err := i.cacheRepo.DeleteItems(ctx, ids); err != nil {
		i.logger.Warnf("ItemUseCase.invalidate: failed to delete items from cache: %v", err)
	}
}

func indexCategories(categories []*domain.Category) map[uuid.UUID]*domain.Category {
	index := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

// toItemView разрешает категории товара. Ссылки на уже удалённые категории пропускаются.
func toItemView(item *domain.Item, categories map[uuid.UUID]*domain.Category) ItemView {
	refs := make([]CategoryRef, 0, len(item.CategoryIDs))
	for _, id := range item.CategoryIDs {
		if c, ok := categories[id]; ok {
			refs = append(refs, CategoryRef{ID: c.ID, Name: c.Name})
		}
	}

	return ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Stock:       item.Stock,
		Categories:  refs,
		Image:       item.Image,
	}
}
