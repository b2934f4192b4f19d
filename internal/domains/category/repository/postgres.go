package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"libcatalog-backend/internal/domains/category/model"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/pkg/cache"
	"libcatalog-backend/pkg/logger"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	categoryListCacheKey = "categories:list"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	query := `
        SELECT id, name, description, created_at, updated_at
        FROM categories
        WHERE id = $1
    `

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, domainerror.CategoryNotFound(id.String())
		}
		return model.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	query := `
        SELECT id, name, description, created_at, updated_at
        FROM categories
        WHERE name = $1
    `

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, model.NormalizeCategoryName(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &cat, nil
}

func (r *postgresRepository) FindOrCreateByName(ctx context.Context, name string) (model.Category, error) {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return model.Category{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	cat, err := model.NewCategory(uuid.NewString(), name, nil, time.Time{})
	if err != nil {
		return model.Category{}, err
	}

	created, err := r.Create(ctx, cat)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			winner, findErr := r.FindByName(ctx, name)
			if findErr != nil {
				return model.Category{}, findErr
			}
			if winner != nil {
				return *winner, nil
			}
		}
		return model.Category{}, err
	}

	return created, nil
}

func (r *postgresRepository) Create(ctx context.Context, cat model.Category) (model.Category, error) {
	query := `
        INSERT INTO categories (id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, description, created_at, updated_at
    `

	created, err := scanCategory(r.pool.QueryRow(ctx, query,
		cat.ID, cat.Name, cat.Description, cat.CreatedAt, cat.UpdatedAt))
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	r.invalidateListCache(ctx)

	return created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	found, err := r.cache.Get(ctx, categoryListCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
        SELECT id, name, description, created_at, updated_at
        FROM categories
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, categoryListCacheKey, categories, cacheTTL); err != nil {
		logger.Warn("category list cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return categories, nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, categoryListCacheKey); err != nil {
		logger.Warn("category list cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var (
		rowID                uuid.UUID
		name                 string
		description          *string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&rowID, &name, &description, &createdAt, &updatedAt); err != nil {
		return model.Category{}, err
	}
	return model.CategoryFromPersistence(rowID, name, description, createdAt, updatedAt), nil
}
