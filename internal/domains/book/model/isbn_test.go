package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libcatalog-backend/internal/shared/domainerror"
)

func TestNewISBN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantType ISBNType
		wantErr  bool
	}{
		{
			name:     "valid ISBN-10",
			input:    "0306406152",
			want:     "0306406152",
			wantType: ISBNType10,
		},
		{
			name:     "valid ISBN-10 with X check digit",
			input:    "097522980X",
			want:     "097522980X",
			wantType: ISBNType10,
		},
		{
			name:     "valid ISBN-10 lowercase x is normalized",
			input:    "097522980x",
			want:     "097522980X",
			wantType: ISBNType10,
		},
		{
			name:     "valid ISBN-13",
			input:    "9780306406157",
			want:     "9780306406157",
			wantType: ISBNType13,
		},
		{
			name:     "hyphens are stripped",
			input:    "978-0-306-40615-7",
			want:     "9780306406157",
			wantType: ISBNType13,
		},
		{
			name:     "spaces are stripped",
			input:    "978 0 306 40615 7",
			want:     "9780306406157",
			wantType: ISBNType13,
		},
		{
			name:    "ISBN-10 with wrong check digit",
			input:   "0306406153",
			wantErr: true,
		},
		{
			name:    "ISBN-13 with wrong check digit",
			input:   "9780306406158",
			wantErr: true,
		},
		{
			name:    "X in non-final position",
			input:   "0X06406152",
			wantErr: true,
		},
		{
			name:    "X in ISBN-13",
			input:   "978030640615X",
			wantErr: true,
		},
		{
			name:    "wrong length",
			input:   "12345",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "non-digit characters",
			input:   "03064061ab",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isbn, err := NewISBN(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainerror.IsKind(err, domainerror.KindInvalidISBN))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, isbn.Value())
			assert.Equal(t, tt.wantType, isbn.Type())
		})
	}
}

func TestISBNEqual(t *testing.T) {
	a, err := NewISBN("978-0-306-40615-7")
	require.NoError(t, err)
	b, err := NewISBN("9780306406157")
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "same ISBN in different notations should be equal after normalization")
}

func TestISBNHyphenated(t *testing.T) {
	isbn10, err := NewISBN("0306406152")
	require.NoError(t, err)
	assert.Equal(t, "0-306-40615-2", isbn10.Hyphenated())

	isbn13, err := NewISBN("9780306406157")
	require.NoError(t, err)
	assert.Equal(t, "978-0-306-40615-7", isbn13.Hyphenated())
}

func TestISBNJSONRoundTrip(t *testing.T) {
	original, err := NewISBN("9780306406157")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `"9780306406157"`, string(data))

	var decoded ISBN
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded))
}
