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

	"libcatalog-backend/internal/domains/booktype/model"
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
	typeListCacheKey = "booktypes:list"
	cacheTTL         = 15 * time.Minute
)

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (model.BookType, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM book_types
        WHERE id = $1
    `

	t, err := scanBookType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BookType{}, domainerror.BookTypeNotFound(id.String())
		}
		return model.BookType{}, fmt.Errorf("failed to get book type: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.BookType, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM book_types
        WHERE name = $1
    `

	t, err := scanBookType(r.pool.QueryRow(ctx, query, model.NormalizeTypeName(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find book type by name: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) FindOrCreateByName(ctx context.Context, name string) (model.BookType, error) {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return model.BookType{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	t, err := model.NewBookType(uuid.NewString(), name, time.Time{})
	if err != nil {
		return model.BookType{}, err
	}

	created, err := r.Create(ctx, t)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			winner, findErr := r.FindByName(ctx, name)
			if findErr != nil {
				return model.BookType{}, findErr
			}
			if winner != nil {
				return *winner, nil
			}
		}
		return model.BookType{}, err
	}

	return created, nil
}

func (r *postgresRepository) Create(ctx context.Context, t model.BookType) (model.BookType, error) {
	query := `
        INSERT INTO book_types (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, created_at, updated_at
    `

	created, err := scanBookType(r.pool.QueryRow(ctx, query, t.ID, t.Name, t.CreatedAt, t.UpdatedAt))
	if err != nil {
		return model.BookType{}, fmt.Errorf("failed to create book type: %w", err)
	}

	r.invalidateListCache(ctx)

	return created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.BookType, error) {
	var cached []model.BookType
	found, err := r.cache.Get(ctx, typeListCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
        SELECT id, name, created_at, updated_at
        FROM book_types
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list book types: %w", err)
	}
	defer rows.Close()

	types := make([]model.BookType, 0)
	for rows.Next() {
		t, err := scanBookType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, typeListCacheKey, types, cacheTTL); err != nil {
		logger.Warn("book type list cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return types, nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, typeListCacheKey); err != nil {
		logger.Warn("book type list cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func scanBookType(row pgx.Row) (model.BookType, error) {
	var (
		rowID                uuid.UUID
		name                 string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&rowID, &name, &createdAt, &updatedAt); err != nil {
		return model.BookType{}, err
	}
	return model.BookTypeFromPersistence(rowID, name, createdAt, updatedAt), nil
}
