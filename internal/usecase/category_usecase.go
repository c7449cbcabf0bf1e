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

// CategoryUseCase реализует бизнес-логику управления категориями.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	itemRepo     ItemRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	txManager    TxManager
	imagesInfra  ImagesInfra
	policies     Policies
	logger       logger.Logger
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	itemRepo ItemRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	policies Policies,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		txManager:    txManager,
		imagesInfra:  imagesInfra,
		policies:     policies,
		logger:       logger,
	}
}

// List возвращает все категории, отсортированные по имени.
func (c *CategoryUseCase) List(ctx context.Context) ([]*domain.Category, error) {
	const op = "CategoryUseCase.List"

	categories, err := c.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	sortCategories(categories)
	return categories, nil
}

// Create идемпотентно по имени создаёт категорию.
// При занятом имени поведение определяет политика DuplicateName.
func (c *CategoryUseCase) Create(ctx context.Context, fields RawFields, upload *Upload) (*CreateRes, error) {
	const op = "CategoryUseCase.Create"

	draft, fieldErrs := ValidateCategory(fields, upload, false, c.policies.Image)
	if len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs, NewEcho(fields), nil)
	}

	// Быстрая проверка; окончательно уникальность гарантирует индекс в хранилище
	existing, err := c.categoryRepo.FindByName(ctx, draft.Name)
	if isFault(err) {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		return c.resolveDuplicate(existing, fields)
	}

	image, err := storeImage(ctx, c.imagesInfra, categoryImagePrefix, upload)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	category := domain.NewCategory(draft.Name, draft.Description, image)
	err = c.txManager.Do(ctx, func(ctx context.Context) error {
		if err := c.categoryRepo.Insert(ctx, category); err != nil {
			return err
		}
		return writeEvent(ctx, c.outboxRepo, CategoryCreated, category.ID, categoryEventData(category))
	})
	if err != nil {
		cleanupImages(c.imagesInfra, image)
		if !errors.Is(err, e.ErrNameTaken) {
			return nil, e.Wrap(op, err)
		}

		// Параллельный запрос успел создать категорию с тем же именем
		winner, err := c.categoryRepo.FindByName(ctx, draft.Name)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		c.logger.Infof("%s: concurrent create of %q resolved to %s", op, draft.Name, winner.ID)
		return c.resolveDuplicate(winner, fields)
	}

	c.logger.Infof("%s: category %s created", op, category.ID)
	return NewCreateRes(category.ID, false), nil
}

// Update полностью заменяет имя и описание категории. Изображение меняется,
// только если передан новый файл.
func (c *CategoryUseCase) Update(ctx context.Context, id uuid.UUID, fields RawFields, upload *Upload) (*UpdateRes, error) {
	const op = "CategoryUseCase.Update"

	current, err := c.categoryRepo.FindByID(ctx, id)
	if isFault(err) {
		return nil, e.Wrap(op, err)
	}

	hasImage := current != nil && current.Image != nil
	draft, fieldErrs := ValidateCategory(fields, upload, hasImage, c.policies.Image)
	if len(fieldErrs) > 0 {
		return nil, NewValidationError(fieldErrs, NewEcho(fields), nil)
	}
	if current == nil {
		return nil, e.Wrap(op, ErrCategoryNotFound)
	}

	image, err := storeImage(ctx, c.imagesInfra, categoryImagePrefix, upload)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated := *current
	updated.Name = draft.Name
	updated.Description = draft.Description
	if image != nil {
		updated.Image = image
	}
	now := time.Now().UTC()
	updated.UpdatedAt = &now

	err = c.txManager.Do(ctx, func(ctx context.Context) error {
		if err := c.categoryRepo.Replace(ctx, &updated); err != nil {
			return err
		}
		return writeEvent(ctx, c.outboxRepo, CategoryUpdated, updated.ID, categoryEventData(&updated))
	})
	if err != nil {
		cleanupImages(c.imagesInfra, image)
		switch {
		case errors.Is(err, e.ErrNameTaken):
			return nil, NewValidationError([]FieldError{nameTakenError()}, NewEcho(fields), nil)
		case errors.Is(err, e.ErrNotFound):
			return nil, e.Wrap(op, ErrCategoryNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	if image != nil {
		cleanupImages(c.imagesInfra, current.Image)
	}
	c.invalidateItemsOf(ctx, id)

	return NewUpdateRes(id), nil
}

// Delete удаляет категорию, если на неё не ссылается ни один товар.
// Отсутствующая категория — не ошибка.
func (c *CategoryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "CategoryUseCase.Delete"

	var removed *domain.Category
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		category, err := c.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		items, err := c.itemRepo.FindByCategory(ctx, id)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			sortSummaries(items)
			return NewBlockedError(id, items)
		}

		if err := c.categoryRepo.Remove(ctx, id); err != nil {
			return err
		}
		removed = category

		return writeEvent(ctx, c.outboxRepo, CategoryDeleted, id, deletedEventData(id))
	})
	if err != nil {
		var blocked *BlockedError
		switch {
		case errors.As(err, &blocked):
			return blocked
		case errors.Is(err, e.ErrNotFound):
			c.logger.Debugf("%s: category %s is already absent", op, id)
			return nil
		}
		return e.Wrap(op, err)
	}

	cleanupImages(c.imagesInfra, removed.Image)
	c.logger.Infof("%s: category %s deleted", op, id)
	return nil
}

// Detail параллельно загружает категорию и ссылающиеся на неё товары.
func (c *CategoryUseCase) Detail(ctx context.Context, id uuid.UUID) (*CategoryDetailRes, error) {
	const op = "CategoryUseCase.Detail"

	var (
		category *domain.Category
		items    []domain.ItemSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = c.categoryRepo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = c.itemRepo.FindByCategory(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, ErrCategoryNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	sortSummaries(items)
	return &CategoryDetailRes{Category: category, Items: items}, nil
}

// Image возвращает содержимое изображения категории.
func (c *CategoryUseCase) Image(ctx context.Context, id uuid.UUID) (*ImageContent, error) {
	const op = "CategoryUseCase.Image"

	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, ErrCategoryNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	if category.Image == nil {
		return nil, e.Wrap(op, ErrImageNotFound)
	}

	content, err := c.imagesInfra.GetImage(ctx, category.Image.Key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return content, nil
}

func (c *CategoryUseCase) resolveDuplicate(existing *domain.Category, fields RawFields) (*CreateRes, error) {
	if c.policies.DuplicateName == DuplicateReject {
		return nil, NewValidationError([]FieldError{nameTakenError()}, NewEcho(fields), nil)
	}
	return NewCreateRes(existing.ID, true), nil
}

// invalidateItemsOf сбрасывает из кэша товары категории: в их представлении хранится имя категории.
func (c *CategoryUseCase) invalidateItemsOf(ctx context.Context, categoryID uuid.UUID) {
	const op = "CategoryUseCase.invalidateItemsOf"

	items, err := c.itemRepo.FindByCategory(ctx, categoryID)
	if err != nil {
		c.logger.Warnf("%s: %v", op, err)
		return
	}
	if len(items) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	if err := c.cacheRepo.DeleteItems(ctx, ids); err != nil {
		c.logger.Warnf("%s: failed to delete items from cache: %v", op, err)
	}
}
