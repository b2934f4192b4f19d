package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/category/model"
	"libcatalog-backend/internal/domains/category/repository"
)

type categoryService struct {
	repo repository.RepositoryInterface
}

func NewCategoryService(repo repository.RepositoryInterface) ServiceInterface {
	return &categoryService{
		repo: repo,
	}
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, name string, description *string) (model.Category, error) {
	cat, err := model.NewCategory(uuid.NewString(), name, description, time.Time{})
	if err != nil {
		return model.Category{}, err
	}
	return s.repo.Create(ctx, cat)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *categoryService) ResolveByNames(ctx context.Context, names []string) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		cat, err := s.repo.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}
