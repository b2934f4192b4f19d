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

func TestNewBookType(t *testing.T) {
	t.Run("name is lowercased", func(t *testing.T) {
		bt, err := NewBookType(uuid.NewString(), " Technical ", testTime)
		require.NoError(t, err)
		assert.Equal(t, TypeTechnical, bt.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewBookType(uuid.NewString(), "", testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindRequiredField))
	})

	t.Run("name over limit", func(t *testing.T) {
		_, err := NewBookType(uuid.NewString(), strings.Repeat("t", MaxNameLength+1), testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindFieldTooLong))
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := NewBookType("nope", "novel", testTime)
		assert.True(t, domainerror.IsKind(err, domainerror.KindInvalidIdentifier))
	})
}

func TestBookTypeRename(t *testing.T) {
	bt, err := NewBookType(uuid.NewString(), TypeNovel, testTime)
	require.NoError(t, err)

	later := testTime.Add(time.Hour)
	renamed, err := bt.Rename("Biography", later)
	require.NoError(t, err)

	assert.Equal(t, TypeBiography, renamed.Name)
	assert.Equal(t, later, renamed.UpdatedAt)
	assert.Equal(t, TypeNovel, bt.Name, "original is untouched")
}
