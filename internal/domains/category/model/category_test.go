package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libcatalog-backend/internal/shared"
	"libcatalog-backend/internal/shared/domainerror"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewCategory(t *testing.T) {
	t.Run("name is lowercased and trimmed", func(t *testing.T) {
		c, err := NewCategory(uuid.NewString(), "  Science Fiction ", nil, testTime)
		require.NoError(t, err)
		assert.Equal(t, "science fiction", c.Name)
		assert.Nil(t, c.Description)
	})

	t.Run("with description", func(t *testing.T) {
		desc := "Stories about the future."
		c, err := NewCategory(uuid.NewString(), "sci-fi", &desc, testTime)
		require.NoError(t, err)
		require.NotNil(t, c.Description)
		assert.Equal(t, desc, *c.Description)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCategory(uuid.NewString(), " ", nil, testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindRequiredField))
	})

	t.Run("name over limit", func(t *testing.T) {
		_, err := NewCategory(uuid.NewString(), strings.Repeat("a", MaxNameLength+1), nil, testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindFieldTooLong))
	})

	t.Run("description over limit", func(t *testing.T) {
		desc := strings.Repeat("d", MaxDescriptionLength+1)
		_, err := NewCategory(uuid.NewString(), "ok", &desc, testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindFieldTooLong))
	})
}

func TestNormalizeCategoryName(t *testing.T) {
	assert.Equal(t, "fantasy", NormalizeCategoryName("  FANTASY "))
	assert.Equal(t, NormalizeCategoryName("Fantasy"), NormalizeCategoryName(NormalizeCategoryName("Fantasy")),
		"normalization is idempotent")
}

func TestCategoryUpdate(t *testing.T) {
	desc := "old"
	base, err := NewCategory(uuid.NewString(), "base", &desc, testTime)
	require.NoError(t, err)
	later := testTime.Add(time.Hour)

	t.Run("rename only", func(t *testing.T) {
		name := "Renamed"
		c, err := base.Update(&name, shared.NullableString{}, later)
		require.NoError(t, err)
		assert.Equal(t, "renamed", c.Name)
		require.NotNil(t, c.Description)
		assert.Equal(t, "old", *c.Description)
	})

	t.Run("clear description", func(t *testing.T) {
		c, err := base.Update(nil, shared.NullString(), later)
		require.NoError(t, err)
		assert.Nil(t, c.Description)
		assert.Equal(t, "base", c.Name)
	})

	t.Run("original is untouched", func(t *testing.T) {
		_, err := base.Update(nil, shared.NullString(), later)
		require.NoError(t, err)
		require.NotNil(t, base.Description)
		assert.Equal(t, testTime, base.UpdatedAt)
	})
}
