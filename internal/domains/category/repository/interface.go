package repository

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/category/model"
)

// RepositoryInterface - data access port for categories. Names are stored
// lowercase, so name lookups are case-insensitive by construction.
type RepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindOrCreateByName(ctx context.Context, name string) (model.Category, error)
	Create(ctx context.Context, cat model.Category) (model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
}
