package service

import (
	"context"

	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/book/model"
)

// EmbeddingResult is what the embedding provider returns for one text.
type EmbeddingResult struct {
	Embedding []float32
	Model     string
}

// EmbeddingService is the outbound port to the embedding provider. The
// catalog never computes vectors itself.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) (EmbeddingResult, error)
	IsAvailable(ctx context.Context) bool
}

type ServiceInterface interface {
	// CreateBook runs the full creation pipeline: resolve referenced
	// names, validate the ISBN, check for duplicates, build the entity,
	// generate the embedding and persist both atomically.
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Book, error)
	GetByISBN(ctx context.Context, rawISBN string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}
