package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libcatalog-backend/internal/shared/domainerror"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewAuthor(t *testing.T) {
	t.Run("valid author", func(t *testing.T) {
		a, err := NewAuthor(uuid.NewString(), "  Ursula K. Le Guin ", testTime)
		require.NoError(t, err)
		assert.Equal(t, "Ursula K. Le Guin", a.Name, "name is trimmed")
		assert.Equal(t, testTime, a.CreatedAt)
		assert.Equal(t, testTime, a.UpdatedAt)
	})

	tests := []struct {
		name     string
		id       string
		author   string
		wantKind domainerror.Kind
	}{
		{"bad id", "nope", "Name", domainerror.KindInvalidIdentifier},
		{"empty name", uuid.NewString(), "  ", domainerror.KindRequiredField},
		{"name over limit", uuid.NewString(), strings.Repeat("n", MaxNameLength+1), domainerror.KindFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAuthor(tt.id, tt.author, testTime)
			require.Error(t, err)
			assert.True(t, domainerror.IsKind(err, tt.wantKind))
		})
	}
}

func TestAuthorRename(t *testing.T) {
	a, err := NewAuthor(uuid.NewString(), "Before", testTime)
	require.NoError(t, err)

	later := testTime.Add(time.Hour)
	renamed, err := a.Rename("After", later)
	require.NoError(t, err)

	assert.Equal(t, "After", renamed.Name)
	assert.Equal(t, later, renamed.UpdatedAt)
	assert.Equal(t, "Before", a.Name, "original is untouched")
	assert.True(t, a.Equal(renamed), "rename keeps identity")
}
