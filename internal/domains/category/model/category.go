package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"libcatalog-backend/internal/shared"
	"libcatalog-backend/internal/shared/validation"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Category is an immutable entity; identity is the ID. Names are stored
// normalized to lowercase so lookups stay case-insensitive.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeCategoryName is the canonical form used for storage and
// case-insensitive matching.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCategory is the validating factory. Validation order: id, name,
// description. A zero now defaults to time.Now().
func NewCategory(id, name string, description *string, now time.Time) (Category, error) {
	if err := validation.UUIDv4("id", id); err != nil {
		return Category{}, err
	}
	if err := validation.Required("name", name); err != nil {
		return Category{}, err
	}
	normalized := NormalizeCategoryName(name)
	if err := validation.MaxLength("name", normalized, MaxNameLength); err != nil {
		return Category{}, err
	}
	if description != nil {
		if err := validation.MaxLength("description", *description, MaxDescriptionLength); err != nil {
			return Category{}, err
		}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Category{
		ID:          uuid.MustParse(id),
		Name:        normalized,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CategoryFromPersistence rehydrates without validation.
func CategoryFromPersistence(id uuid.UUID, name string, description *string, createdAt, updatedAt time.Time) Category {
	return Category{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Update returns a copy with the requested changes applied. A nil name
// keeps the previous value; description follows absent/null/value
// semantics. UpdatedAt is always refreshed.
func (c Category) Update(name *string, description shared.NullableString, now time.Time) (Category, error) {
	if name != nil {
		if err := validation.Required("name", *name); err != nil {
			return Category{}, err
		}
		normalized := NormalizeCategoryName(*name)
		if err := validation.MaxLength("name", normalized, MaxNameLength); err != nil {
			return Category{}, err
		}
		c.Name = normalized
	}

	if description.Set {
		if !description.Valid {
			c.Description = nil
		} else {
			if err := validation.MaxLength("description", description.Value, MaxDescriptionLength); err != nil {
				return Category{}, err
			}
			v := description.Value
			c.Description = &v
		}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	c.UpdatedAt = now
	return c, nil
}

// Equal compares by identity only.
func (c Category) Equal(other Category) bool {
	return c.ID == other.ID
}
