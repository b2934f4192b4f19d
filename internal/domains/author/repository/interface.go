package repository

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/author/model"
)

// RepositoryInterface - data access port for authors. Name matching is
// case-insensitive; FindOrCreateByName is an idempotent upsert that relies
// on the storage layer's uniqueness constraint for the concurrent case.
type RepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Author, error)
	FindByName(ctx context.Context, name string) (*model.Author, error)
	FindOrCreateByName(ctx context.Context, name string) (model.Author, error)
	Create(ctx context.Context, a model.Author) (model.Author, error)
	FindAll(ctx context.Context) ([]model.Author, error)
}
