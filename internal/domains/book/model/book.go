package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	authormodel "libcatalog-backend/internal/domains/author/model"
	booktypemodel "libcatalog-backend/internal/domains/booktype/model"
	categorymodel "libcatalog-backend/internal/domains/category/model"
	"libcatalog-backend/internal/shared"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/internal/shared/validation"
)

const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 2000
	MaxPathLength        = 1000
	MaxAuthors           = 10
	MaxCategories        = 10
)

// Book is the aggregate root of the catalog. It references authors, the
// type and categories by identity; it does not own their rows. Title,
// authors, description, type, categories and format are immutable after
// creation because they determine the embedding vector. Only Available and
// Path may change afterwards, through ApplyChanges. The embedding vector is
// a persistence-layer attribute and never lives on this entity.
type Book struct {
	ID          uuid.UUID
	ISBN        *ISBN
	Title       string
	Authors     []authormodel.Author
	Description string
	Type        booktypemodel.BookType
	Format      BookFormat
	Categories  []categorymodel.Category
	Available   bool
	Path        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBookParams carries everything the validating factory needs. ISBN and
// Format are already-constructed value objects, so their own validity is
// settled before the book is assembled.
type NewBookParams struct {
	ID          string
	ISBN        *ISBN
	Title       string
	Authors     []authormodel.Author
	Description string
	Type        booktypemodel.BookType
	Format      BookFormat
	Categories  []categorymodel.Category
	Available   bool
	Path        *string

	// Now overrides the clock for deterministic tests. Zero means time.Now().
	Now time.Time
}

// NewBook is the validating factory. Fields are validated in declaration
// order (id, title, authors, description, type, categories, path) and the
// first violation aborts.
func NewBook(p NewBookParams) (Book, error) {
	if err := validation.UUIDv4("id", p.ID); err != nil {
		return Book{}, err
	}
	if err := validation.Required("title", p.Title); err != nil {
		return Book{}, err
	}
	if err := validation.MaxLength("title", p.Title, MaxTitleLength); err != nil {
		return Book{}, err
	}
	if err := validation.IDCollection("authors", authorIDStrings(p.Authors), MaxAuthors); err != nil {
		return Book{}, err
	}
	if err := validation.Required("description", p.Description); err != nil {
		return Book{}, err
	}
	if err := validation.MaxLength("description", p.Description, MaxDescriptionLength); err != nil {
		return Book{}, err
	}
	if p.Type.ID == uuid.Nil {
		return Book{}, domainerror.InvalidBookType("")
	}
	if err := validation.IDCollection("categories", categoryIDStrings(p.Categories), MaxCategories); err != nil {
		return Book{}, err
	}
	if p.Path != nil {
		if err := validation.MaxLength("path", *p.Path, MaxPathLength); err != nil {
			return Book{}, err
		}
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	authors := make([]authormodel.Author, len(p.Authors))
	copy(authors, p.Authors)
	categories := make([]categorymodel.Category, len(p.Categories))
	copy(categories, p.Categories)

	return Book{
		ID:          uuid.MustParse(p.ID),
		ISBN:        p.ISBN,
		Title:       strings.TrimSpace(p.Title),
		Authors:     authors,
		Description: p.Description,
		Type:        p.Type,
		Format:      p.Format,
		Categories:  categories,
		Available:   p.Available,
		Path:        p.Path,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BookFromPersistence rehydrates a book already known valid from storage.
// No validation runs.
func BookFromPersistence(
	id uuid.UUID,
	isbn *ISBN,
	title string,
	authors []authormodel.Author,
	description string,
	bookType booktypemodel.BookType,
	format BookFormat,
	categories []categorymodel.Category,
	available bool,
	path *string,
	createdAt, updatedAt time.Time,
) Book {
	return Book{
		ID:          id,
		ISBN:        isbn,
		Title:       title,
		Authors:     authors,
		Description: description,
		Type:        bookType,
		Format:      format,
		Categories:  categories,
		Available:   available,
		Path:        path,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// BookChanges holds the mutable post-creation fields. Presence is explicit:
// a nil Available means "unchanged"; Path distinguishes absent (unchanged),
// null (clear) and value (set), never inferred from truthiness.
type BookChanges struct {
	Available *bool
	Path      shared.NullableString
}

// ApplyChanges returns a new Book with the changes applied. UpdatedAt is
// always refreshed on success, even when nothing effectively changed.
func (b Book) ApplyChanges(ch BookChanges, now time.Time) (Book, error) {
	if ch.Available != nil {
		b.Available = *ch.Available
	}

	if ch.Path.Set {
		if !ch.Path.Valid {
			b.Path = nil
		} else {
			if err := validation.MaxLength("path", ch.Path.Value, MaxPathLength); err != nil {
				return Book{}, err
			}
			v := ch.Path.Value
			b.Path = &v
		}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	b.UpdatedAt = now
	return b, nil
}

// Equal compares by identity only.
func (b Book) Equal(other Book) bool {
	return b.ID == other.ID
}

// HasISBN reports whether the book carries an ISBN. Books without one are
// never considered duplicates of each other.
func (b Book) HasISBN() bool {
	return b.ISBN != nil
}

// AuthorIDs lists the referenced author identifiers in order.
func (b Book) AuthorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.Authors))
	for i, a := range b.Authors {
		ids[i] = a.ID
	}
	return ids
}

// CategoryIDs lists the referenced category identifiers in order.
func (b Book) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.Categories))
	for i, c := range b.Categories {
		ids[i] = c.ID
	}
	return ids
}

// CategoryNames lists the category names in order.
func (b Book) CategoryNames() []string {
	names := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		names[i] = c.Name
	}
	return names
}

func authorIDStrings(authors []authormodel.Author) []string {
	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID.String()
	}
	return ids
}

func categoryIDStrings(categories []categorymodel.Category) []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID.String()
	}
	return ids
}
