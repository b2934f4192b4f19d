package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"libcatalog-backend/internal/shared/domainerror"
)

// Shared entity validators. Every entity factory runs these in a fixed
// order: id first, then each business field in declaration order, stopping
// at the first violation.

// Required fails when a string field is empty or whitespace-only.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domainerror.RequiredField(field)
	}
	return nil
}

// MaxLength fails when value exceeds limit characters. Limits count runes,
// not bytes, matching the rune-based length rules at the DTO layer.
func MaxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return domainerror.FieldTooLong(field, limit)
	}
	return nil
}

// UUIDv4 fails when id does not match the canonical UUID-v4 textual shape
// (8-4-4-4-12 hex groups, version nibble 4, RFC 4122 variant).
func UUIDv4(field, id string) error {
	u, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return domainerror.InvalidIdentifier(field, id)
	}
	if u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		return domainerror.InvalidIdentifier(field, id)
	}
	return nil
}

// IDCollection fails with TooManyItems when ids exceeds the cap and with
// DuplicateItem when the same identifier appears twice.
func IDCollection(field string, ids []string, maxItems int) error {
	if len(ids) == 0 {
		return domainerror.RequiredField(field)
	}
	if len(ids) > maxItems {
		return domainerror.TooManyItems(field, maxItems)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return domainerror.DuplicateItem(field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
