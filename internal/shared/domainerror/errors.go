package domainerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the closed set of failure kinds the API can raise.
// Domain kinds are business-rule violations; application kinds represent
// external-system failures. The HTTP mapping dispatches on Kind only, so the
// whole status policy stays a pure, testable function.
type Kind string

const (
	// Domain kinds (validation)
	KindRequiredField     Kind = "REQUIRED_FIELD"
	KindFieldTooLong      Kind = "FIELD_TOO_LONG"
	KindInvalidIdentifier Kind = "INVALID_IDENTIFIER"
	KindTooManyItems      Kind = "TOO_MANY_ITEMS"
	KindDuplicateItem     Kind = "DUPLICATE_ITEM"
	KindInvalidISBN       Kind = "INVALID_ISBN"
	KindInvalidBookFormat Kind = "INVALID_BOOK_FORMAT"
	KindInvalidBookType   Kind = "INVALID_BOOK_TYPE"

	// Domain kinds (lookup / uniqueness)
	KindBookNotFound     Kind = "BOOK_NOT_FOUND"
	KindAuthorNotFound   Kind = "AUTHOR_NOT_FOUND"
	KindCategoryNotFound Kind = "CATEGORY_NOT_FOUND"
	KindBookTypeNotFound Kind = "BOOK_TYPE_NOT_FOUND"
	KindDuplicateISBN    Kind = "DUPLICATE_ISBN"

	// Legacy author+title+format duplicate. Superseded by ISBN-only
	// detection; the kind stays for API compatibility and is never raised
	// by the create pipeline.
	KindDuplicateBook Kind = "DUPLICATE_BOOK"

	// Application kinds (external systems). Unavailable means the provider
	// could not be reached at all (connection or timeout failure) and a
	// retry may succeed; the generic error covers a reachable provider that
	// answered with a failure.
	KindEmbeddingServiceUnavailable Kind = "EMBEDDING_SERVICE_UNAVAILABLE"
	KindEmbeddingServiceError       Kind = "EMBEDDING_SERVICE_ERROR"
	KindEmbeddingTextTooLong        Kind = "EMBEDDING_TEXT_TOO_LONG"
)

// Error is the single error type raised by the domain and application
// layers. Field/Limit/Value carry structured context for validation kinds.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Limit   int
	Value   string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes errors.Is match two *Error values by Kind, so sentinel-style
// comparisons keep working across wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// IsDomain reports whether the kind is a business-rule violation
// (as opposed to an external-system failure).
func (e *Error) IsDomain() bool {
	switch e.Kind {
	case KindEmbeddingServiceUnavailable, KindEmbeddingServiceError, KindEmbeddingTextTooLong:
		return false
	}
	return true
}

// KindOf extracts the Kind from any error in the chain.
// Returns "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ========================================
// CONSTRUCTORS
// ========================================

func RequiredField(field string) *Error {
	return &Error{
		Kind:    KindRequiredField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func FieldTooLong(field string, limit int) *Error {
	return &Error{
		Kind:    KindFieldTooLong,
		Field:   field,
		Limit:   limit,
		Message: fmt.Sprintf("%s exceeds maximum length of %d characters", field, limit),
	}
}

func InvalidIdentifier(field, value string) *Error {
	return &Error{
		Kind:    KindInvalidIdentifier,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("%s is not a valid UUID: %q", field, value),
	}
}

func TooManyItems(field string, limit int) *Error {
	return &Error{
		Kind:    KindTooManyItems,
		Field:   field,
		Limit:   limit,
		Message: fmt.Sprintf("%s cannot contain more than %d items", field, limit),
	}
}

func DuplicateItem(field, value string) *Error {
	return &Error{
		Kind:    KindDuplicateItem,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("%s contains duplicate entry %q", field, value),
	}
}

func InvalidISBN(value string) *Error {
	return &Error{
		Kind:    KindInvalidISBN,
		Field:   "isbn",
		Value:   value,
		Message: fmt.Sprintf("invalid ISBN format: %q", value),
	}
}

func InvalidBookFormat(value string) *Error {
	return &Error{
		Kind:    KindInvalidBookFormat,
		Field:   "format",
		Value:   value,
		Message: fmt.Sprintf("invalid book format: %q", value),
	}
}

func InvalidBookType(value string) *Error {
	return &Error{
		Kind:    KindInvalidBookType,
		Field:   "type",
		Value:   value,
		Message: fmt.Sprintf("invalid book type: %q", value),
	}
}

func BookNotFound(id string) *Error {
	return &Error{
		Kind:    KindBookNotFound,
		Value:   id,
		Message: "book not found",
	}
}

func AuthorNotFound(name string) *Error {
	return &Error{
		Kind:    KindAuthorNotFound,
		Value:   name,
		Message: "author not found",
	}
}

func CategoryNotFound(name string) *Error {
	return &Error{
		Kind:    KindCategoryNotFound,
		Value:   name,
		Message: "category not found",
	}
}

func BookTypeNotFound(name string) *Error {
	return &Error{
		Kind:    KindBookTypeNotFound,
		Value:   name,
		Message: "book type not found",
	}
}

func DuplicateISBN(isbn string) *Error {
	return &Error{
		Kind:    KindDuplicateISBN,
		Value:   isbn,
		Message: fmt.Sprintf("a book with ISBN %s already exists", isbn),
	}
}

func DuplicateBook() *Error {
	return &Error{
		Kind:    KindDuplicateBook,
		Message: "a book with the same author, title and format already exists",
	}
}

func EmbeddingServiceUnavailable(cause error) *Error {
	return &Error{
		Kind:    KindEmbeddingServiceUnavailable,
		Message: "embedding service is unavailable",
		cause:   cause,
	}
}

func EmbeddingServiceError(cause error) *Error {
	return &Error{
		Kind:    KindEmbeddingServiceError,
		Message: "embedding service request failed",
		cause:   cause,
	}
}

func EmbeddingTextTooLong(length, limit int) *Error {
	return &Error{
		Kind:    KindEmbeddingTextTooLong,
		Limit:   limit,
		Message: fmt.Sprintf("embedding text length %d exceeds maximum of %d characters", length, limit),
	}
}

// ========================================
// HTTP MAPPING
// ========================================

// ToHTTPStatus maps any error to an HTTP status code.
// Every domain kind not listed explicitly is a 400; anything outside the
// taxonomy is a 500.
func ToHTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindDuplicateISBN, KindDuplicateBook:
		return http.StatusConflict
	case KindEmbeddingServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindEmbeddingServiceError:
		return http.StatusInternalServerError
	case KindEmbeddingTextTooLong:
		return http.StatusBadRequest
	default:
		if e.IsDomain() {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// ToErrorCode converts an error to a stable API error code.
func ToErrorCode(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "INTERNAL_ERROR"
	}
	return string(e.Kind)
}
