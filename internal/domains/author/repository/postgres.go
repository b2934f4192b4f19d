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

	"libcatalog-backend/internal/domains/author/model"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/pkg/cache"
	"libcatalog-backend/pkg/logger"
)

// postgresRepository implements the author port with pgxpool and a
// cache-aside Redis layer for list reads.
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
	authorListCacheKey = "authors:list"
	cacheTTL           = 15 * time.Minute
)

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Author, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var (
		rowID                uuid.UUID
		name                 string
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&rowID, &name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Author{}, domainerror.AuthorNotFound(id.String())
		}
		return model.Author{}, fmt.Errorf("failed to get author: %w", err)
	}

	return model.AuthorFromPersistence(rowID, name, createdAt, updatedAt), nil
}

// FindByName matches case-insensitively; returns nil without error when no
// author has that name.
func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        WHERE lower(name) = lower($1)
    `

	var (
		rowID                uuid.UUID
		rowName              string
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, name).Scan(&rowID, &rowName, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}

	a := model.AuthorFromPersistence(rowID, rowName, createdAt, updatedAt)
	return &a, nil
}

// FindOrCreateByName resolves the author or inserts a new row. Two
// concurrent creates for the same name race to the unique index on
// lower(name); the loser re-reads the winner's row.
func (r *postgresRepository) FindOrCreateByName(ctx context.Context, name string) (model.Author, error) {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return model.Author{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	a, err := model.NewAuthor(uuid.NewString(), name, time.Time{})
	if err != nil {
		return model.Author{}, err
	}

	created, err := r.Create(ctx, a)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the race - the row exists now.
			winner, findErr := r.FindByName(ctx, name)
			if findErr != nil {
				return model.Author{}, findErr
			}
			if winner != nil {
				return *winner, nil
			}
		}
		return model.Author{}, err
	}

	return created, nil
}

func (r *postgresRepository) Create(ctx context.Context, a model.Author) (model.Author, error) {
	query := `
        INSERT INTO authors (id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, created_at, updated_at
    `

	var (
		rowID                uuid.UUID
		name                 string
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, a.ID, a.Name, a.CreatedAt, a.UpdatedAt).
		Scan(&rowID, &name, &createdAt, &updatedAt)
	if err != nil {
		return model.Author{}, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return model.AuthorFromPersistence(rowID, name, createdAt, updatedAt), nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Author, error) {
	var cached []model.Author
	found, err := r.cache.Get(ctx, authorListCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var (
			rowID                uuid.UUID
			name                 string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&rowID, &name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, model.AuthorFromPersistence(rowID, name, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, authorListCacheKey, authors, cacheTTL); err != nil {
		logger.Warn("author list cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return authors, nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, authorListCacheKey); err != nil {
		logger.Warn("author list cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
