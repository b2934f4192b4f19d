package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "libcatalog-backend/internal/domains/author/model"
	"libcatalog-backend/internal/domains/book/model"
	"libcatalog-backend/internal/domains/book/repository"
	booktypemodel "libcatalog-backend/internal/domains/booktype/model"
	categorymodel "libcatalog-backend/internal/domains/category/model"
	"libcatalog-backend/internal/shared"
	"libcatalog-backend/internal/shared/domainerror"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stubBookRepo implements the book port with overridable funcs. Unset
// methods return zero values.
type stubBookRepo struct {
	checkDuplicateFn func(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error)
	saveFn           func(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error)
	findByIDFn       func(ctx context.Context, id uuid.UUID) (model.Book, error)
	updateFn         func(ctx context.Context, book model.Book) (model.Book, error)

	saveCalls int
}

func (s *stubBookRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return model.Book{}, domainerror.BookNotFound(id.String())
}

func (s *stubBookRepo) FindByISBN(ctx context.Context, isbn model.ISBN) (model.Book, error) {
	return model.Book{}, domainerror.BookNotFound(isbn.Value())
}

func (s *stubBookRepo) ExistsByISBN(ctx context.Context, isbn model.ISBN) (bool, error) {
	return false, nil
}

func (s *stubBookRepo) CheckDuplicate(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error) {
	if s.checkDuplicateFn != nil {
		return s.checkDuplicateFn(ctx, isbn)
	}
	return repository.DuplicateCheck{}, nil
}

func (s *stubBookRepo) Save(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error) {
	s.saveCalls++
	if s.saveFn != nil {
		return s.saveFn(ctx, book, vector, embeddingModel)
	}
	return book, nil
}

func (s *stubBookRepo) Update(ctx context.Context, book model.Book) (model.Book, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, book)
	}
	return book, nil
}

func (s *stubBookRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

func (s *stubBookRepo) FindAll(ctx context.Context) ([]model.Book, error) {
	return nil, nil
}

func (s *stubBookRepo) Count(ctx context.Context) (int, error) {
	return 0, nil
}

// stubAuthors resolves every requested name to a fresh author.
type stubAuthors struct{}

func (stubAuthors) GetByID(ctx context.Context, id uuid.UUID) (authormodel.Author, error) {
	return authormodel.Author{}, domainerror.AuthorNotFound(id.String())
}

func (stubAuthors) Create(ctx context.Context, name string) (authormodel.Author, error) {
	return authormodel.AuthorFromPersistence(uuid.New(), name, testTime, testTime), nil
}

func (stubAuthors) List(ctx context.Context) ([]authormodel.Author, error) { return nil, nil }

func (stubAuthors) ResolveByNames(ctx context.Context, names []string) ([]authormodel.Author, error) {
	out := make([]authormodel.Author, len(names))
	for i, n := range names {
		out[i] = authormodel.AuthorFromPersistence(uuid.New(), n, testTime, testTime)
	}
	return out, nil
}

type stubCategories struct{}

func (stubCategories) GetByID(ctx context.Context, id uuid.UUID) (categorymodel.Category, error) {
	return categorymodel.Category{}, domainerror.CategoryNotFound(id.String())
}

func (stubCategories) Create(ctx context.Context, name string, description *string) (categorymodel.Category, error) {
	return categorymodel.CategoryFromPersistence(uuid.New(), name, description, testTime, testTime), nil
}

func (stubCategories) List(ctx context.Context) ([]categorymodel.Category, error) { return nil, nil }

func (stubCategories) ResolveByNames(ctx context.Context, names []string) ([]categorymodel.Category, error) {
	out := make([]categorymodel.Category, len(names))
	for i, n := range names {
		out[i] = categorymodel.CategoryFromPersistence(uuid.New(), categorymodel.NormalizeCategoryName(n), nil, testTime, testTime)
	}
	return out, nil
}

type stubTypes struct{}

func (stubTypes) GetByID(ctx context.Context, id uuid.UUID) (booktypemodel.BookType, error) {
	return booktypemodel.BookType{}, domainerror.BookTypeNotFound(id.String())
}

func (stubTypes) Create(ctx context.Context, name string) (booktypemodel.BookType, error) {
	return booktypemodel.BookTypeFromPersistence(uuid.New(), name, testTime, testTime), nil
}

func (stubTypes) List(ctx context.Context) ([]booktypemodel.BookType, error) { return nil, nil }

func (stubTypes) ResolveByName(ctx context.Context, name string) (booktypemodel.BookType, error) {
	return booktypemodel.BookTypeFromPersistence(uuid.New(), booktypemodel.NormalizeTypeName(name), testTime, testTime), nil
}

// stubEmbedding records calls and returns a fixed vector.
type stubEmbedding struct {
	calls     int
	lastText  string
	err       error
	available bool
}

func (s *stubEmbedding) GenerateEmbedding(ctx context.Context, text string) (EmbeddingResult, error) {
	s.calls++
	s.lastText = text
	if s.err != nil {
		return EmbeddingResult{}, s.err
	}
	return EmbeddingResult{
		Embedding: []float32{0.1, 0.2, 0.3},
		Model:     "test-embedder-v1",
	}, nil
}

func (s *stubEmbedding) IsAvailable(ctx context.Context) bool { return s.available }

func newTestService(repo *stubBookRepo, emb *stubEmbedding) ServiceInterface {
	return NewBookService(repo, stubAuthors{}, stubCategories{}, stubTypes{}, emb)
}

func validRequest() model.CreateBookRequest {
	return model.CreateBookRequest{
		Title:       "The Pragmatic Programmer",
		Authors:     []string{"Andrew Hunt", "David Thomas"},
		Description: "From journeyman to master.",
		Type:        "technical",
		Format:      "pdf",
		Categories:  []string{"programming", "career"},
	}
}

func TestCreateBook(t *testing.T) {
	t.Run("successful create persists book with embedding", func(t *testing.T) {
		repo := &stubBookRepo{}
		emb := &stubEmbedding{}
		var savedVector []float32
		var savedModel string
		repo.saveFn = func(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error) {
			savedVector = vector
			savedModel = embeddingModel
			return book, nil
		}

		req := validRequest()
		isbn := "9780306406157"
		req.ISBN = &isbn

		book, err := newTestService(repo, emb).CreateBook(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "The Pragmatic Programmer", book.Title)
		assert.True(t, book.Available, "available defaults to true")
		assert.Len(t, book.Authors, 2)
		require.NotNil(t, book.ISBN)
		assert.Equal(t, "9780306406157", book.ISBN.Value())

		assert.Equal(t, 1, emb.calls)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, savedVector)
		assert.Equal(t, "test-embedder-v1", savedModel)
	})

	t.Run("embedding text is derived from title, description and categories", func(t *testing.T) {
		repo := &stubBookRepo{}
		emb := &stubEmbedding{}

		_, err := newTestService(repo, emb).CreateBook(context.Background(), validRequest())
		require.NoError(t, err)

		want := "The Pragmatic Programmer\n\nFrom journeyman to master.\n\nCategories: programming, career"
		assert.Equal(t, want, emb.lastText)
	})

	t.Run("duplicate isbn is rejected before the embedding call", func(t *testing.T) {
		repo := &stubBookRepo{
			checkDuplicateFn: func(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error) {
				return repository.DuplicateCheck{IsDuplicate: true, DuplicateType: "isbn"}, nil
			},
		}
		emb := &stubEmbedding{}

		req := validRequest()
		isbn := "9780306406157"
		req.ISBN = &isbn

		_, err := newTestService(repo, emb).CreateBook(context.Background(), req)
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindDuplicateISBN))
		assert.Zero(t, emb.calls, "embedding provider must not be called for duplicates")
		assert.Zero(t, repo.saveCalls)
	})

	t.Run("book without isbn is never a duplicate", func(t *testing.T) {
		repo := &stubBookRepo{
			checkDuplicateFn: func(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error) {
				require.Nil(t, isbn)
				return repository.DuplicateCheck{}, nil
			},
		}

		_, err := newTestService(repo, &stubEmbedding{}).CreateBook(context.Background(), validRequest())
		assert.NoError(t, err)
	})

	t.Run("duplicate report without an isbn does not panic", func(t *testing.T) {
		// The port contract says nil ISBN is never a duplicate; a
		// repository that violates it must still fail cleanly.
		repo := &stubBookRepo{
			checkDuplicateFn: func(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error) {
				return repository.DuplicateCheck{IsDuplicate: true, DuplicateType: "isbn"}, nil
			},
		}
		emb := &stubEmbedding{}

		_, err := newTestService(repo, emb).CreateBook(context.Background(), validRequest())
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindDuplicateISBN))
		assert.Zero(t, emb.calls)
	})

	t.Run("empty isbn string is treated as absent", func(t *testing.T) {
		repo := &stubBookRepo{
			checkDuplicateFn: func(ctx context.Context, isbn *model.ISBN) (repository.DuplicateCheck, error) {
				require.Nil(t, isbn)
				return repository.DuplicateCheck{}, nil
			},
		}

		req := validRequest()
		empty := "  "
		req.ISBN = &empty

		book, err := newTestService(repo, &stubEmbedding{}).CreateBook(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, book.HasISBN())
	})

	t.Run("invalid isbn fails without side effects", func(t *testing.T) {
		repo := &stubBookRepo{}
		emb := &stubEmbedding{}

		req := validRequest()
		bad := "0306406153"
		req.ISBN = &bad

		_, err := newTestService(repo, emb).CreateBook(context.Background(), req)
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindInvalidISBN))
		assert.Zero(t, emb.calls)
		assert.Zero(t, repo.saveCalls)
	})

	t.Run("invalid format fails first", func(t *testing.T) {
		repo := &stubBookRepo{}
		emb := &stubEmbedding{}

		req := validRequest()
		req.Format = "docx"

		_, err := newTestService(repo, emb).CreateBook(context.Background(), req)
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindInvalidBookFormat))
		assert.Zero(t, emb.calls)
	})

	t.Run("worst-case valid input stays under the embedding text limit", func(t *testing.T) {
		// Field caps guarantee the derived text fits, so the pre-call
		// length check is a safety net, not a reachable rejection.
		repo := &stubBookRepo{}
		emb := &stubEmbedding{}

		req := validRequest()
		req.Title = strings.Repeat("y", model.MaxTitleLength)
		req.Description = strings.Repeat("x", model.MaxDescriptionLength)
		req.Categories = nil
		for i := 0; i < model.MaxCategories; i++ {
			req.Categories = append(req.Categories, strings.Repeat("z", 99)+string(rune('a'+i)))
		}

		_, err := newTestService(repo, emb).CreateBook(context.Background(), req)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(emb.lastText), MaxEmbeddingTextLength)
	})

	t.Run("embedding failure aborts the save", func(t *testing.T) {
		repo := &stubBookRepo{}
		emb := &stubEmbedding{err: domainerror.EmbeddingServiceUnavailable(nil)}

		_, err := newTestService(repo, emb).CreateBook(context.Background(), validRequest())
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindEmbeddingServiceUnavailable))
		assert.Zero(t, repo.saveCalls, "no partial writes when the vector is missing")
	})

	t.Run("save race surfaces duplicate isbn", func(t *testing.T) {
		repo := &stubBookRepo{
			saveFn: func(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error) {
				return model.Book{}, domainerror.DuplicateISBN(book.ISBN.Value())
			},
		}

		req := validRequest()
		isbn := "9780306406157"
		req.ISBN = &isbn

		_, err := newTestService(repo, &stubEmbedding{}).CreateBook(context.Background(), req)
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindDuplicateISBN))
	})
}

func TestUpdate(t *testing.T) {
	existing := func(t *testing.T) model.Book {
		p := model.NewBookParams{
			ID:          uuid.NewString(),
			Title:       "Existing",
			Authors:     []authormodel.Author{authormodel.AuthorFromPersistence(uuid.New(), "A", testTime, testTime)},
			Description: "Existing description.",
			Type:        booktypemodel.BookTypeFromPersistence(uuid.New(), "novel", testTime, testTime),
			Format:      model.BookFormatFromTrustedSource("epub"),
			Categories:  []categorymodel.Category{categorymodel.CategoryFromPersistence(uuid.New(), "fiction", nil, testTime, testTime)},
			Available:   true,
			Now:         testTime,
		}
		b, err := model.NewBook(p)
		require.NoError(t, err)
		return b
	}

	t.Run("applies changes and persists", func(t *testing.T) {
		b := existing(t)
		repo := &stubBookRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (model.Book, error) {
				return b, nil
			},
		}

		avail := false
		updated, err := newTestService(repo, &stubEmbedding{}).Update(context.Background(), b.ID, model.UpdateBookRequest{
			Available: &avail,
			Path:      shared.StringFrom("/files/existing.epub"),
		})
		require.NoError(t, err)
		assert.False(t, updated.Available)
		require.NotNil(t, updated.Path)
		assert.Equal(t, "/files/existing.epub", *updated.Path)
		assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))
	})

	t.Run("missing book propagates not found", func(t *testing.T) {
		repo := &stubBookRepo{}

		_, err := newTestService(repo, &stubEmbedding{}).Update(context.Background(), uuid.New(), model.UpdateBookRequest{})
		require.Error(t, err)
		assert.True(t, domainerror.IsKind(err, domainerror.KindBookNotFound))
	})
}

func TestEmbeddingTextDeterminism(t *testing.T) {
	b, err := model.NewBook(model.NewBookParams{
		ID:          uuid.NewString(),
		Title:       "Title",
		Authors:     []authormodel.Author{authormodel.AuthorFromPersistence(uuid.New(), "A", testTime, testTime)},
		Description: "Description.",
		Type:        booktypemodel.BookTypeFromPersistence(uuid.New(), "novel", testTime, testTime),
		Format:      model.BookFormatFromTrustedSource("pdf"),
		Categories: []categorymodel.Category{
			categorymodel.CategoryFromPersistence(uuid.New(), "one", nil, testTime, testTime),
			categorymodel.CategoryFromPersistence(uuid.New(), "two", nil, testTime, testTime),
		},
		Now: testTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "Title\n\nDescription.\n\nCategories: one, two", EmbeddingText(b))
	assert.Equal(t, EmbeddingText(b), EmbeddingText(b))
}

func TestCheckEmbeddingTextLength(t *testing.T) {
	assert.NoError(t, checkEmbeddingTextLength(strings.Repeat("a", MaxEmbeddingTextLength)))

	err := checkEmbeddingTextLength(strings.Repeat("a", MaxEmbeddingTextLength+1))
	require.Error(t, err)
	assert.True(t, domainerror.IsKind(err, domainerror.KindEmbeddingTextTooLong))

	// The cap counts runes, so multibyte text at the limit still passes.
	assert.NoError(t, checkEmbeddingTextLength(strings.Repeat("é", MaxEmbeddingTextLength)))
}
