package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/shared/validation"
)

const MaxNameLength = 300

// Author is an immutable entity; identity is the ID. "Mutation" always goes
// through Rename, which returns a fresh instance.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAuthor is the validating factory for authors coming from user input.
// Validation order: id, then name. A zero now defaults to time.Now().
func NewAuthor(id, name string, now time.Time) (Author, error) {
	if err := validation.UUIDv4("id", id); err != nil {
		return Author{}, err
	}
	if err := validation.Required("name", name); err != nil {
		return Author{}, err
	}
	if err := validation.MaxLength("name", name, MaxNameLength); err != nil {
		return Author{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Author{
		ID:        uuid.MustParse(id),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AuthorFromPersistence rehydrates an author already known valid from
// storage. No validation runs.
func AuthorFromPersistence(id uuid.UUID, name string, createdAt, updatedAt time.Time) Author {
	return Author{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Rename returns a copy with the new name, re-validated through the same
// rules as creation. UpdatedAt is always refreshed, even when the name is
// unchanged.
func (a Author) Rename(name string, now time.Time) (Author, error) {
	if err := validation.Required("name", name); err != nil {
		return Author{}, err
	}
	if err := validation.MaxLength("name", name, MaxNameLength); err != nil {
		return Author{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	a.Name = strings.TrimSpace(name)
	a.UpdatedAt = now
	return a, nil
}

// Equal compares by identity only.
func (a Author) Equal(other Author) bool {
	return a.ID == other.ID
}
