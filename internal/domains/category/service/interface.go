package service

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/category/model"
)

// ServiceInterface - business logic contract for categories.
type ServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Category, error)
	Create(ctx context.Context, name string, description *string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)

	// ResolveByNames returns the categories for the given names, creating
	// any that do not exist yet. Matching is case-insensitive.
	ResolveByNames(ctx context.Context, names []string) ([]model.Category, error)
}
