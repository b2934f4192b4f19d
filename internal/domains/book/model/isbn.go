package model

import (
	"encoding/json"
	"strings"

	"libcatalog-backend/internal/shared/domainerror"
)

// ISBNType classifies an ISBN by length.
type ISBNType int

const (
	ISBNType10 ISBNType = 10
	ISBNType13 ISBNType = 13
)

// ISBN is an immutable, self-validating value object wrapping a normalized
// ISBN string: hyphens and spaces stripped, uppercase ('X' is only legal as
// the last character of an ISBN-10). Compare with Equal, not ==, so callers
// never depend on the zero value being meaningful.
type ISBN struct {
	value string
}

// NewISBN normalizes raw and validates the length-dependent checksum.
// Fails with an InvalidISBN error when the normalized string is neither a
// correct ISBN-10 nor ISBN-13.
func NewISBN(raw string) (ISBN, error) {
	normalized := normalizeISBN(raw)

	switch len(normalized) {
	case 10:
		if !isValidISBN10(normalized) {
			return ISBN{}, domainerror.InvalidISBN(raw)
		}
	case 13:
		if !isValidISBN13(normalized) {
			return ISBN{}, domainerror.InvalidISBN(raw)
		}
	default:
		return ISBN{}, domainerror.InvalidISBN(raw)
	}

	return ISBN{value: normalized}, nil
}

// ISBNFromTrustedSource skips validation. Only for rehydrating values from
// the storage layer, which are presumed already validated.
func ISBNFromTrustedSource(value string) ISBN {
	return ISBN{value: value}
}

func normalizeISBN(raw string) string {
	cleaned := strings.ReplaceAll(raw, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return strings.ToUpper(cleaned)
}

// isValidISBN10 checks the weighted checksum: digits weighted 10..1, the
// last character may be 'X' representing 10, sum mod 11 == 0.
func isValidISBN10(s string) bool {
	sum := 0
	for i, ch := range s {
		var digit int
		switch {
		case ch >= '0' && ch <= '9':
			digit = int(ch - '0')
		case ch == 'X' && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// isValidISBN13 checks the alternating 1,3 weighted checksum mod 10 == 0.
func isValidISBN13(s string) bool {
	sum := 0
	for i, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}

// Value returns the normalized string.
func (i ISBN) Value() string {
	return i.value
}

// Type reports whether this is an ISBN-10 or ISBN-13.
func (i ISBN) Type() ISBNType {
	if len(i.value) == 10 {
		return ISBNType10
	}
	return ISBNType13
}

// Equal compares by normalized value.
func (i ISBN) Equal(other ISBN) bool {
	return i.value == other.value
}

// Hyphenated renders a human-readable form with simplified grouping
// (1-3-5-1 for ISBN-10, 3-1-3-5-1 for ISBN-13). Registrant-range-aware
// formatting is deliberately not attempted.
func (i ISBN) Hyphenated() string {
	v := i.value
	if len(v) == 10 {
		return v[0:1] + "-" + v[1:4] + "-" + v[4:9] + "-" + v[9:10]
	}
	return v[0:3] + "-" + v[3:4] + "-" + v[4:7] + "-" + v[7:12] + "-" + v[12:13]
}

func (i ISBN) String() string {
	return i.value
}

// MarshalJSON/UnmarshalJSON round-trip the normalized value so cached
// entities survive serialization. Unmarshal goes through the trusted
// factory: cache contents originate from storage.
func (i ISBN) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}

func (i *ISBN) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*i = ISBNFromTrustedSource(s)
	return nil
}
