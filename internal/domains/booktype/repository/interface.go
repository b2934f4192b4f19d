package repository

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/booktype/model"
)

// RepositoryInterface - data access port for book types. A small seed set
// (technical, novel, biography) is installed by the migrations; new names
// are created on demand through FindOrCreateByName.
type RepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.BookType, error)
	FindByName(ctx context.Context, name string) (*model.BookType, error)
	FindOrCreateByName(ctx context.Context, name string) (model.BookType, error)
	Create(ctx context.Context, t model.BookType) (model.BookType, error)
	FindAll(ctx context.Context) ([]model.BookType, error)
}
