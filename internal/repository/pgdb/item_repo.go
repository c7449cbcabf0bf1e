package pgdb

import (
	"context"
	"fmt"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/repository/pgdb/converter"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const itemColumns = `id, name, description, price, stock, category_ids, image_key, image_content_type, image_size, created_at, updated_at`

// ItemRepo реализует репозиторий товаров поверх PostgreSQL.
// Ссылки на категории хранятся массивом category_ids без внешнего ключа.
type ItemRepo struct {
	pool *pgxpool.Pool
	conv converter.ItemConverter
}

func NewItemRepo(pool *pgxpool.Pool, conv converter.ItemConverter) *ItemRepo {
	return &ItemRepo{pool: pool, conv: conv}
}

func (i *ItemRepo) FindAll(ctx context.Context) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name COLLATE "C"`

	rows, err := tr.Executor(ctx, i.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.collect(rows)
}

func (i *ItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := i.scan(tr.Executor(ctx, i.pool).QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("item %s: %w", id, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return item, nil
}

func (i *ItemRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1)`

	rows, err := tr.Executor(ctx, i.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return i.collect(rows)
}

func (i *ItemRepo) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`

	item, err := i.scan(tr.Executor(ctx, i.pool).QueryRow(ctx, query, name))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("item %q: %w", name, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return item, nil
}

// FindByCategory возвращает краткие проекции товаров, ссылающихся на категорию.
// Использует GIN-индекс по category_ids.
func (i *ItemRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.ItemSummary, error) {
	query := `
		SELECT id, name, description, price
		FROM items
		WHERE category_ids @> ARRAY[$1::uuid]
		ORDER BY name COLLATE "C"
	`

	rows, err := tr.Executor(ctx, i.pool).Query(ctx, query, categoryID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.ItemSummary, 0)
	for rows.Next() {
		var s domain.ItemSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Insert атомарно создаёт товар. Если имя занято, возвращает e.ErrNameTaken.
func (i *ItemRepo) Insert(ctx context.Context, item *domain.Item) error {
	model := i.conv.ToModel(item)
	query := `
		INSERT INTO items (
			id, name, description, price, stock, category_ids,
			image_key, image_content_type, image_size, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO NOTHING
		RETURNING id;
	`

	var id uuid.UUID
	err := tr.Executor(ctx, i.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Price, model.Stock, categoryIDsParam(model.CategoryIDs),
		model.Image.Key, model.Image.ContentType, model.Image.Size, model.CreatedAt,
	).Scan(&id)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("item %q: %w", item.Name, e.ErrNameTaken)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (i *ItemRepo) Replace(ctx context.Context, item *domain.Item) error {
	model := i.conv.ToModel(item)
	query := `
		UPDATE items
		SET name = $2, description = $3, price = $4, stock = $5, category_ids = $6,
			image_key = $7, image_content_type = $8, image_size = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tr.Executor(ctx, i.pool).Exec(ctx, query,
		model.ID, model.Name, model.Description, model.Price, model.Stock, categoryIDsParam(model.CategoryIDs),
		model.Image.Key, model.Image.ContentType, model.Image.Size,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("item %q: %w", item.Name, e.ErrNameTaken)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", item.ID, e.ErrNotFound)
	}

	return nil
}

func (i *ItemRepo) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := tr.Executor(ctx, i.pool).Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, e.ErrNotFound)
	}

	return nil
}

func (i *ItemRepo) scan(row pgx.Row) (*domain.Item, error) {
	var model converter.ItemModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Price, &model.Stock, &model.CategoryIDs,
		&model.Image.Key, &model.Image.ContentType, &model.Image.Size,
		&model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return i.conv.ToEntity(&model), nil
}

func (i *ItemRepo) collect(rows pgx.Rows) ([]*domain.Item, error) {
	defer rows.Close()

	result := make([]*domain.Item, 0)
	for rows.Next() {
		item, err := i.scan(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// categoryIDsParam не даёт записать NULL вместо пустого массива.
func categoryIDsParam(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
