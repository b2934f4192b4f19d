package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/book/model"
	"libcatalog-backend/internal/domains/book/repository"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/pkg/logger"

	authorservice "libcatalog-backend/internal/domains/author/service"
	booktypeservice "libcatalog-backend/internal/domains/booktype/service"
	categoryservice "libcatalog-backend/internal/domains/category/service"
)

// MaxEmbeddingTextLength caps the text sent to the embedding provider.
// Enforced locally before the call so oversized inputs never reach it.
const MaxEmbeddingTextLength = 7000

type bookService struct {
	repo       repository.RepositoryInterface
	authors    authorservice.ServiceInterface
	categories categoryservice.ServiceInterface
	types      booktypeservice.ServiceInterface
	embedding  EmbeddingService
}

func NewBookService(
	repo repository.RepositoryInterface,
	authors authorservice.ServiceInterface,
	categories categoryservice.ServiceInterface,
	types booktypeservice.ServiceInterface,
	embedding EmbeddingService,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		authors:    authors,
		categories: categories,
		types:      types,
		embedding:  embedding,
	}
}

// CreateBook orders the pipeline so the cheap, local checks run first and
// the expensive embedding call runs last, only for requests that are
// already known valid and non-duplicate. The embedding provider is never
// called for a request that ends up rejected.
func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	format, err := model.NewBookFormat(req.Format)
	if err != nil {
		return model.Book{}, err
	}

	bookType, err := s.types.ResolveByName(ctx, req.Type)
	if err != nil {
		return model.Book{}, err
	}
	bookAuthors, err := s.authors.ResolveByNames(ctx, req.Authors)
	if err != nil {
		return model.Book{}, err
	}
	bookCategories, err := s.categories.ResolveByNames(ctx, req.Categories)
	if err != nil {
		return model.Book{}, err
	}

	// An empty or whitespace-only ISBN field means "no ISBN".
	var isbn *model.ISBN
	if req.ISBN != nil && strings.TrimSpace(*req.ISBN) != "" {
		v, err := model.NewISBN(*req.ISBN)
		if err != nil {
			return model.Book{}, err
		}
		isbn = &v
	}

	dup, err := s.repo.CheckDuplicate(ctx, isbn)
	if err != nil {
		return model.Book{}, err
	}
	if dup.IsDuplicate {
		// A repository must not report duplicates for a nil ISBN; guard
		// the dereference anyway so a misbehaving port cannot panic us.
		value := ""
		if isbn != nil {
			value = isbn.Value()
		}
		return model.Book{}, domainerror.DuplicateISBN(value)
	}

	book, err := model.NewBook(model.NewBookParams{
		ID:          uuid.NewString(),
		ISBN:        isbn,
		Title:       req.Title,
		Authors:     bookAuthors,
		Description: req.Description,
		Type:        bookType,
		Format:      format,
		Categories:  bookCategories,
		Available:   req.AvailableOrDefault(),
		Path:        req.Path,
	})
	if err != nil {
		return model.Book{}, err
	}

	text := EmbeddingText(book)
	if err := checkEmbeddingTextLength(text); err != nil {
		return model.Book{}, err
	}

	result, err := s.embedding.GenerateEmbedding(ctx, text)
	if err != nil {
		return model.Book{}, err
	}

	saved, err := s.repo.Save(ctx, book, result.Embedding, result.Model)
	if err != nil {
		return model.Book{}, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": saved.ID.String(),
		"title":   saved.Title,
	})

	return saved, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) GetByISBN(ctx context.Context, rawISBN string) (model.Book, error) {
	isbn, err := model.NewISBN(rawISBN)
	if err != nil {
		return model.Book{}, err
	}
	return s.repo.FindByISBN(ctx, isbn)
}

func (s *bookService) List(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Book{}, err
	}

	updated, err := book.ApplyChanges(req.Changes(), time.Time{})
	if err != nil {
		return model.Book{}, err
	}

	return s.repo.Update(ctx, updated)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info("book deleted", map[string]interface{}{"book_id": id.String()})
	}
	return deleted, nil
}

func (s *bookService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// EmbeddingText derives the text the embedding is computed from. The
// derivation is deterministic: the same book always yields the same text,
// so re-ingesting identical data yields identical vectors.
func EmbeddingText(book model.Book) string {
	var sb strings.Builder
	sb.WriteString(book.Title)
	sb.WriteString("\n\n")
	sb.WriteString(book.Description)
	sb.WriteString("\n\nCategories: ")
	sb.WriteString(strings.Join(book.CategoryNames(), ", "))
	return sb.String()
}

// checkEmbeddingTextLength rejects text over the provider cap, counting
// runes. The field caps keep any valid book well under the limit, so this
// only fires if those caps ever grow past the provider's.
func checkEmbeddingTextLength(text string) error {
	if n := utf8.RuneCountInString(text); n > MaxEmbeddingTextLength {
		return domainerror.EmbeddingTextTooLong(n, MaxEmbeddingTextLength)
	}
	return nil
}
