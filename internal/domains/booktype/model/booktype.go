package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/shared/validation"
)

const MaxNameLength = 50

// Seed types expected to exist in the catalog. The entity itself accepts
// arbitrary names so new types can be added without a code change.
const (
	TypeTechnical = "technical"
	TypeNovel     = "novel"
	TypeBiography = "biography"
)

// BookType is an immutable entity; identity is the ID. Names are stored
// normalized to lowercase.
type BookType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeTypeName is the canonical form used for storage and matching.
func NormalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewBookType is the validating factory. Validation order: id, then name.
func NewBookType(id, name string, now time.Time) (BookType, error) {
	if err := validation.UUIDv4("id", id); err != nil {
		return BookType{}, err
	}
	if err := validation.Required("name", name); err != nil {
		return BookType{}, err
	}
	normalized := NormalizeTypeName(name)
	if err := validation.MaxLength("name", normalized, MaxNameLength); err != nil {
		return BookType{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return BookType{
		ID:        uuid.MustParse(id),
		Name:      normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BookTypeFromPersistence rehydrates without validation.
func BookTypeFromPersistence(id uuid.UUID, name string, createdAt, updatedAt time.Time) BookType {
	return BookType{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Rename returns a copy with the new name; UpdatedAt always refreshed.
func (t BookType) Rename(name string, now time.Time) (BookType, error) {
	if err := validation.Required("name", name); err != nil {
		return BookType{}, err
	}
	normalized := NormalizeTypeName(name)
	if err := validation.MaxLength("name", normalized, MaxNameLength); err != nil {
		return BookType{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	t.Name = normalized
	t.UpdatedAt = now
	return t, nil
}

// Equal compares by identity only.
func (t BookType) Equal(other BookType) bool {
	return t.ID == other.ID
}
