package model

import (
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"libcatalog-backend/internal/shared"
)

// CreateBookRequest - POST /books
// Authors, categories and the type are referenced by name; the service
// resolves or creates them. Available defaults to true when omitted.
type CreateBookRequest struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Format      string   `json:"format"`
	Categories  []string `json:"categories"`
	ISBN        *string  `json:"isbn"`
	Available   *bool    `json:"available"`
	Path        *string  `json:"path"`
}

// Validate runs schema-level validation. Domain rules (ISBN checksum,
// format membership, length caps) are enforced again by the value objects
// and entity factories; this layer rejects structurally broken payloads and
// can report several violations at once.
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Authors,
			validation.Required.Error("authors is required"),
			validation.Length(1, MaxAuthors).Error(fmt.Sprintf("authors must contain 1 to %d entries", MaxAuthors)),
			validation.Each(validation.Required.Error("author name cannot be empty")),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
		),
		validation.Field(&r.Format,
			validation.Required.Error("format is required"),
		),
		validation.Field(&r.Categories,
			validation.Required.Error("categories is required"),
			validation.Length(1, MaxCategories).Error(fmt.Sprintf("categories must contain 1 to %d entries", MaxCategories)),
			validation.Each(validation.Required.Error("category name cannot be empty")),
		),
	)
}

// AvailableOrDefault applies the documented default.
func (r CreateBookRequest) AvailableOrDefault() bool {
	if r.Available == nil {
		return true
	}
	return *r.Available
}

// UpdateBookRequest - PATCH /books/:id
// Only the mutable fields. Path keeps absent/null/value apart.
type UpdateBookRequest struct {
	Available *bool                 `json:"available"`
	Path      shared.NullableString `json:"path"`
}

// Changes converts the request into domain-level changes.
func (r UpdateBookRequest) Changes() BookChanges {
	return BookChanges{
		Available: r.Available,
		Path:      r.Path,
	}
}

// RefResponse is the {id, name} shape used for nested authors/categories.
type RefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookResponse is the wire shape of a book. The embedding vector is never
// part of it.
type BookResponse struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Authors     []RefResponse `json:"authors"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Format      string        `json:"format"`
	Categories  []RefResponse `json:"categories"`
	ISBN        *string       `json:"isbn"`
	Available   bool          `json:"available"`
	Path        *string       `json:"path"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ToResponse converts the entity to its wire shape.
func (b Book) ToResponse() BookResponse {
	authors := make([]RefResponse, len(b.Authors))
	for i, a := range b.Authors {
		authors[i] = RefResponse{ID: a.ID, Name: a.Name}
	}
	categories := make([]RefResponse, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = RefResponse{ID: c.ID, Name: c.Name}
	}

	var isbn *string
	if b.ISBN != nil {
		v := b.ISBN.Value()
		isbn = &v
	}

	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     authors,
		Description: b.Description,
		Type:        b.Type.Name,
		Format:      b.Format.Value(),
		Categories:  categories,
		ISBN:        isbn,
		Available:   b.Available,
		Path:        b.Path,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BookListResponse wraps list results with a total count.
type BookListResponse struct {
	Data  []BookResponse `json:"data"`
	Total int            `json:"total"`
}

// DeleteBookResponse - DELETE /books/:id
type DeleteBookResponse struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}

// ValidationDetails flattens an ozzo validation error into a stable,
// per-field list of messages for the details array of a 400 response.
func ValidationDetails(err error) []string {
	errs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(errs))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, errs[field].Error()))
	}
	return details
}
