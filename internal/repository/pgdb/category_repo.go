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

const categoryColumns = `id, name, description, image_key, image_content_type, image_size, created_at, updated_at`

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// FindAll возвращает все категории. Имена сравниваются побайтно.
func (c *CategoryRepo) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name COLLATE "C"`

	rows, err := tr.Executor(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.collect(rows)
}

func (c *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := c.scan(tr.Executor(ctx, c.pool).QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("category %s: %w", id, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return category, nil
}

// FindByIDs возвращает найденные категории; отсутствующие id молча пропускаются.
func (c *CategoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ANY($1)`

	rows, err := tr.Executor(ctx, c.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.collect(rows)
}

func (c *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	category, err := c.scan(tr.Executor(ctx, c.pool).QueryRow(ctx, query, name))
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("category %q: %w", name, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return category, nil
}

// Insert атомарно создаёт категорию. Если имя занято, возвращает e.ErrNameTaken.
func (c *CategoryRepo) Insert(ctx context.Context, category *domain.Category) error {
	model := c.conv.ToModel(category)
	query := `
		INSERT INTO categories (id, name, description, image_key, image_content_type, image_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO NOTHING
		RETURNING id;
	`

	var id uuid.UUID
	err := tr.Executor(ctx, c.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.Description,
		model.Image.Key, model.Image.ContentType, model.Image.Size,
		model.CreatedAt,
	).Scan(&id)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("category %q: %w", category.Name, e.ErrNameTaken)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Replace перезаписывает категорию целиком.
func (c *CategoryRepo) Replace(ctx context.Context, category *domain.Category) error {
	model := c.conv.ToModel(category)
	query := `
		UPDATE categories
		SET name = $2, description = $3,
			image_key = $4, image_content_type = $5, image_size = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tr.Executor(ctx, c.pool).Exec(ctx, query,
		model.ID, model.Name, model.Description,
		model.Image.Key, model.Image.ContentType, model.Image.Size,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("category %q: %w", category.Name, e.ErrNameTaken)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, e.ErrNotFound)
	}

	return nil
}

func (c *CategoryRepo) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := tr.Executor(ctx, c.pool).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, e.ErrNotFound)
	}

	return nil
}

func (c *CategoryRepo) scan(row pgx.Row) (*domain.Category, error) {
	var model converter.CategoryModel
	if err := row.Scan(
		&model.ID, &model.Name, &model.Description,
		&model.Image.Key, &model.Image.ContentType, &model.Image.Size,
		&model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) collect(rows pgx.Rows) ([]*domain.Category, error) {
	defer rows.Close()

	result := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := c.scan(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, category)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
