package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/author/model"
	"libcatalog-backend/internal/domains/author/repository"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, name string) (model.Author, error) {
	a, err := model.NewAuthor(uuid.NewString(), name, time.Time{})
	if err != nil {
		return model.Author{}, err
	}
	return s.repo.Create(ctx, a)
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.FindAll(ctx)
}

func (s *authorService) ResolveByNames(ctx context.Context, names []string) ([]model.Author, error) {
	authors := make([]model.Author, 0, len(names))
	for _, name := range names {
		a, err := s.repo.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}
