package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	authormodel "libcatalog-backend/internal/domains/author/model"
	"libcatalog-backend/internal/domains/book/model"
	booktypemodel "libcatalog-backend/internal/domains/booktype/model"
	categorymodel "libcatalog-backend/internal/domains/category/model"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/pkg/cache"
	"libcatalog-backend/pkg/database"
	"libcatalog-backend/pkg/logger"
)

// postgresRepository implements the book port with pgxpool, a cache-aside
// Redis layer for list reads, and transactional writes so a book row and
// its embedding vector land together or not at all.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookListCacheKey = "books:list"
	cacheTTL         = 15 * time.Minute
)

const bookSelectColumns = `
        b.id, b.isbn, b.title, b.description, b.format, b.available, b.path,
        b.created_at, b.updated_at,
        t.id, t.name, t.created_at, t.updated_at
`

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	query := `
        SELECT ` + bookSelectColumns + `
        FROM books b
        JOIN book_types t ON t.id = b.type_id
        WHERE b.id = $1
    `

	book, err := r.scanBook(ctx, r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, domainerror.BookNotFound(id.String())
		}
		return model.Book{}, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn model.ISBN) (model.Book, error) {
	query := `
        SELECT ` + bookSelectColumns + `
        FROM books b
        JOIN book_types t ON t.id = b.type_id
        WHERE b.isbn = $1
    `

	book, err := r.scanBook(ctx, r.pool.QueryRow(ctx, query, isbn.Value()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, domainerror.BookNotFound(isbn.Value())
		}
		return model.Book{}, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn model.ISBN) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, isbn.Value()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check isbn existence: %w", err)
	}
	return exists, nil
}

// CheckDuplicate reports whether a book with the given ISBN already exists.
// A nil ISBN is never a duplicate: the index is partial, books without an
// ISBN do not participate.
func (r *postgresRepository) CheckDuplicate(ctx context.Context, isbn *model.ISBN) (DuplicateCheck, error) {
	if isbn == nil {
		return DuplicateCheck{IsDuplicate: false}, nil
	}

	exists, err := r.ExistsByISBN(ctx, *isbn)
	if err != nil {
		return DuplicateCheck{}, err
	}
	if !exists {
		return DuplicateCheck{IsDuplicate: false}, nil
	}

	return DuplicateCheck{
		IsDuplicate:   true,
		DuplicateType: "isbn",
		Message:       fmt.Sprintf("a book with ISBN %s already exists", isbn.Value()),
	}, nil
}

// Save writes the book row, its author and category links, and the
// embedding vector in one transaction. A unique violation on the ISBN
// index surfaces as DuplicateISBN: the duplicate check in the use case
// runs before the embedding call, so this only fires on a write race.
func (r *postgresRepository) Save(ctx context.Context, book model.Book, vector []float32, embeddingModel string) (model.Book, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insertBook := `
            INSERT INTO books (id, isbn, title, description, type_id, format, available, path, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `
		var isbnValue *string
		if book.ISBN != nil {
			v := book.ISBN.Value()
			isbnValue = &v
		}
		if _, err := tx.Exec(ctx, insertBook,
			book.ID, isbnValue, book.Title, book.Description,
			book.Type.ID, book.Format.Value(), book.Available, book.Path,
			book.CreatedAt, book.UpdatedAt,
		); err != nil {
			return err
		}

		insertAuthor := `INSERT INTO book_authors (book_id, author_id, position) VALUES ($1, $2, $3)`
		for i, a := range book.Authors {
			if _, err := tx.Exec(ctx, insertAuthor, book.ID, a.ID, i); err != nil {
				return err
			}
		}

		insertCategory := `INSERT INTO book_categories (book_id, category_id, position) VALUES ($1, $2, $3)`
		for i, c := range book.Categories {
			if _, err := tx.Exec(ctx, insertCategory, book.ID, c.ID, i); err != nil {
				return err
			}
		}

		insertEmbedding := `
            INSERT INTO book_embeddings (book_id, embedding, model, created_at)
            VALUES ($1, $2, $3, $4)
        `
		if _, err := tx.Exec(ctx, insertEmbedding,
			book.ID, pgvector.NewVector(vector), embeddingModel, book.CreatedAt,
		); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && book.ISBN != nil {
			return model.Book{}, domainerror.DuplicateISBN(book.ISBN.Value())
		}
		return model.Book{}, fmt.Errorf("failed to save book: %w", err)
	}

	r.invalidateListCache(ctx)

	return book, nil
}

// Update persists the mutable columns only. The caller has already applied
// the changes to the entity.
func (r *postgresRepository) Update(ctx context.Context, book model.Book) (model.Book, error) {
	query := `
        UPDATE books
        SET available = $2, path = $3, updated_at = $4
        WHERE id = $1
    `

	tag, err := r.pool.Exec(ctx, query, book.ID, book.Available, book.Path, book.UpdatedAt)
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Book{}, domainerror.BookNotFound(book.ID.String())
	}

	r.invalidateListCache(ctx)

	return book, nil
}

// Delete removes the book. Join rows and the embedding go with it through
// ON DELETE CASCADE. Returns false when no row matched.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	r.invalidateListCache(ctx)

	return true, nil
}

// FindAll lists every book ordered by creation time, newest first. The
// author and category references are aggregated in SQL, so list rows carry
// only the id and name of each reference.
func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	var cached []model.Book
	found, err := r.cache.Get(ctx, bookListCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	query := `
        SELECT b.id, b.isbn, b.title, b.description, b.format, b.available, b.path,
               b.created_at, b.updated_at,
               t.id, t.name,
               (SELECT COALESCE(array_agg(a.id::text ORDER BY ba.position), '{}')
                FROM book_authors ba JOIN authors a ON a.id = ba.author_id
                WHERE ba.book_id = b.id),
               (SELECT COALESCE(array_agg(a.name ORDER BY ba.position), '{}')
                FROM book_authors ba JOIN authors a ON a.id = ba.author_id
                WHERE ba.book_id = b.id),
               (SELECT COALESCE(array_agg(c.id::text ORDER BY bc.position), '{}')
                FROM book_categories bc JOIN categories c ON c.id = bc.category_id
                WHERE bc.book_id = b.id),
               (SELECT COALESCE(array_agg(c.name ORDER BY bc.position), '{}')
                FROM book_categories bc JOIN categories c ON c.id = bc.category_id
                WHERE bc.book_id = b.id)
        FROM books b
        JOIN book_types t ON t.id = b.type_id
        ORDER BY b.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var (
			id                   uuid.UUID
			isbn                 *string
			title, description   string
			format               string
			available            bool
			path                 *string
			createdAt, updatedAt time.Time
			typeID               uuid.UUID
			typeName             string
			authorIDs            pq.StringArray
			authorNames          pq.StringArray
			categoryIDs          pq.StringArray
			categoryNames        pq.StringArray
		)
		if err := rows.Scan(
			&id, &isbn, &title, &description, &format, &available, &path,
			&createdAt, &updatedAt,
			&typeID, &typeName,
			&authorIDs, &authorNames, &categoryIDs, &categoryNames,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		authors, err := authorRefs(authorIDs, authorNames)
		if err != nil {
			return nil, err
		}
		categories, err := categoryRefs(categoryIDs, categoryNames)
		if err != nil {
			return nil, err
		}

		books = append(books, model.BookFromPersistence(
			id, isbnRef(isbn), title, authors, description,
			booktypemodel.BookTypeFromPersistence(typeID, typeName, time.Time{}, time.Time{}),
			model.BookFormatFromTrustedSource(format),
			categories, available, path, createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.cache.Set(ctx, bookListCacheKey, books, cacheTTL); err != nil {
		logger.Warn("book list cache set failed", map[string]interface{}{"error": err.Error()})
	}

	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// scanBook reads the base book row, then loads its author and category
// references with their full rows.
func (r *postgresRepository) scanBook(ctx context.Context, row pgx.Row) (model.Book, error) {
	var (
		id                   uuid.UUID
		isbn                 *string
		title, description   string
		format               string
		available            bool
		path                 *string
		createdAt, updatedAt time.Time
		typeID               uuid.UUID
		typeName             string
		typeCreated, typeUpdated time.Time
	)
	if err := row.Scan(
		&id, &isbn, &title, &description, &format, &available, &path,
		&createdAt, &updatedAt,
		&typeID, &typeName, &typeCreated, &typeUpdated,
	); err != nil {
		return model.Book{}, err
	}

	authors, err := r.loadAuthors(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	categories, err := r.loadCategories(ctx, id)
	if err != nil {
		return model.Book{}, err
	}

	return model.BookFromPersistence(
		id, isbnRef(isbn), title, authors, description,
		booktypemodel.BookTypeFromPersistence(typeID, typeName, typeCreated, typeUpdated),
		model.BookFormatFromTrustedSource(format),
		categories, available, path, createdAt, updatedAt,
	), nil
}

func (r *postgresRepository) loadAuthors(ctx context.Context, bookID uuid.UUID) ([]authormodel.Author, error) {
	query := `
        SELECT a.id, a.name, a.created_at, a.updated_at
        FROM authors a
        JOIN book_authors ba ON ba.author_id = a.id
        WHERE ba.book_id = $1
        ORDER BY ba.position
    `

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load book authors: %w", err)
	}
	defer rows.Close()

	authors := make([]authormodel.Author, 0)
	for rows.Next() {
		var (
			id                   uuid.UUID
			name                 string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book author: %w", err)
		}
		authors = append(authors, authormodel.AuthorFromPersistence(id, name, createdAt, updatedAt))
	}
	return authors, rows.Err()
}

func (r *postgresRepository) loadCategories(ctx context.Context, bookID uuid.UUID) ([]categorymodel.Category, error) {
	query := `
        SELECT c.id, c.name, c.description, c.created_at, c.updated_at
        FROM categories c
        JOIN book_categories bc ON bc.category_id = c.id
        WHERE bc.book_id = $1
        ORDER BY bc.position
    `

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load book categories: %w", err)
	}
	defer rows.Close()

	categories := make([]categorymodel.Category, 0)
	for rows.Next() {
		var (
			id                   uuid.UUID
			name                 string
			description          *string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &name, &description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book category: %w", err)
		}
		categories = append(categories, categorymodel.CategoryFromPersistence(id, name, description, createdAt, updatedAt))
	}
	return categories, rows.Err()
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.Delete(ctx, bookListCacheKey); err != nil {
		logger.Warn("book list cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func isbnRef(value *string) *model.ISBN {
	if value == nil {
		return nil
	}
	isbn := model.ISBNFromTrustedSource(*value)
	return &isbn
}

func authorRefs(ids, names pq.StringArray) ([]authormodel.Author, error) {
	if len(ids) != len(names) {
		return nil, fmt.Errorf("author aggregate length mismatch: %d ids, %d names", len(ids), len(names))
	}
	authors := make([]authormodel.Author, len(ids))
	for i := range ids {
		id, err := uuid.Parse(ids[i])
		if err != nil {
			return nil, fmt.Errorf("invalid author id in aggregate: %w", err)
		}
		authors[i] = authormodel.AuthorFromPersistence(id, names[i], time.Time{}, time.Time{})
	}
	return authors, nil
}

func categoryRefs(ids, names pq.StringArray) ([]categorymodel.Category, error) {
	if len(ids) != len(names) {
		return nil, fmt.Errorf("category aggregate length mismatch: %d ids, %d names", len(ids), len(names))
	}
	categories := make([]categorymodel.Category, len(ids))
	for i := range ids {
		id, err := uuid.Parse(ids[i])
		if err != nil {
			return nil, fmt.Errorf("invalid category id in aggregate: %w", err)
		}
		categories[i] = categorymodel.CategoryFromPersistence(id, names[i], nil, time.Time{}, time.Time{})
	}
	return categories, nil
}
