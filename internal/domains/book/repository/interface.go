package repository

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/book/model"
)

// DuplicateCheck reports whether a book with the same identifying data
// already exists. Only the ISBN participates in duplicate detection;
// title and author overlap are deliberately not considered.
type DuplicateCheck struct {
	IsDuplicate   bool   `json:"isDuplicate"`
	DuplicateType string `json:"duplicateType,omitempty"`
	Message       string `json:"message,omitempty"`
}

type RepositoryInterface interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.Book, error)
	FindByISBN(ctx context.Context, isbn model.ISBN) (model.Book, error)
	ExistsByISBN(ctx context.Context, isbn model.ISBN) (bool, error)
	CheckDuplicate(ctx context.Context, isbn *model.ISBN) (DuplicateCheck, error)
	// Save persists the book and its embedding vector in one transaction.
	// Either both rows land or neither does.
	Save(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error)
	// Update persists the mutable columns (available, path, updated_at)
	// of an already-loaded book.
	Update(ctx context.Context, book model.Book) (model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	Count(ctx context.Context) (int, error)
}
