package model

import (
	"encoding/json"
	"strings"

	"libcatalog-backend/internal/shared/domainerror"
)

// BookFormat is an immutable value object over the closed set of digital
// formats the catalog stores.
type BookFormat struct {
	value string
}

const (
	FormatPDF  = "pdf"
	FormatEPUB = "epub"
	FormatMOBI = "mobi"
	FormatAZW3 = "azw3"
)

var allBookFormats = []string{FormatPDF, FormatEPUB, FormatMOBI, FormatAZW3}

// NewBookFormat trims and lowercases raw, then checks membership in the
// allowed set. Fails with InvalidBookFormat otherwise.
func NewBookFormat(raw string) (BookFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !IsValidBookFormat(normalized) {
		return BookFormat{}, domainerror.InvalidBookFormat(raw)
	}
	return BookFormat{value: normalized}, nil
}

// BookFormatFromTrustedSource skips validation; storage-read path only.
func BookFormatFromTrustedSource(value string) BookFormat {
	return BookFormat{value: value}
}

// IsValidBookFormat tests membership in the allowed set.
// The input must already be normalized.
func IsValidBookFormat(value string) bool {
	for _, f := range allBookFormats {
		if value == f {
			return true
		}
	}
	return false
}

// AllBookFormats enumerates every legal value.
func AllBookFormats() []string {
	out := make([]string, len(allBookFormats))
	copy(out, allBookFormats)
	return out
}

// Value returns the normalized format string.
func (f BookFormat) Value() string {
	return f.value
}

// Equal compares by value.
func (f BookFormat) Equal(other BookFormat) bool {
	return f.value == other.value
}

func (f BookFormat) String() string {
	return f.value
}

func (f BookFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

func (f *BookFormat) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = BookFormatFromTrustedSource(s)
	return nil
}
