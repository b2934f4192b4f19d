package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/booktype/model"
	"libcatalog-backend/internal/domains/booktype/repository"
)

// ServiceInterface - business logic contract for book types.
type ServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.BookType, error)
	Create(ctx context.Context, name string) (model.BookType, error)
	List(ctx context.Context) ([]model.BookType, error)

	// ResolveByName returns the type with the given name, creating it if
	// needed. Matching is case-insensitive.
	ResolveByName(ctx context.Context, name string) (model.BookType, error)
}

type bookTypeService struct {
	repo repository.RepositoryInterface
}

func NewBookTypeService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookTypeService{
		repo: repo,
	}
}

func (s *bookTypeService) GetByID(ctx context.Context, id uuid.UUID) (model.BookType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookTypeService) Create(ctx context.Context, name string) (model.BookType, error) {
	t, err := model.NewBookType(uuid.NewString(), name, time.Time{})
	if err != nil {
		return model.BookType{}, err
	}
	return s.repo.Create(ctx, t)
}

func (s *bookTypeService) List(ctx context.Context) ([]model.BookType, error) {
	return s.repo.FindAll(ctx)
}

func (s *bookTypeService) ResolveByName(ctx context.Context, name string) (model.BookType, error) {
	return s.repo.FindOrCreateByName(ctx, name)
}
