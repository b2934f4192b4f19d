package service

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/author/model"
)

// ServiceInterface - business logic contract for authors.
type ServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Author, error)
	Create(ctx context.Context, name string) (model.Author, error)
	List(ctx context.Context) ([]model.Author, error)

	// ResolveByNames returns the authors for the given names, creating
	// any that do not exist yet. Matching is case-insensitive.
	ResolveByNames(ctx context.Context, names []string) ([]model.Author, error)
}
