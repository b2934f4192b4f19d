package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateBookRequest {
	return CreateBookRequest{
		Title:       "Designing Data-Intensive Applications",
		Authors:     []string{"Martin Kleppmann"},
		Description: "The big ideas behind reliable, scalable systems.",
		Type:        "technical",
		Format:      "pdf",
		Categories:  []string{"databases", "distributed systems"},
	}
}

func TestCreateBookRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, validCreateRequest().Validate())
	})

	t.Run("missing fields are reported together", func(t *testing.T) {
		err := CreateBookRequest{}.Validate()
		require.Error(t, err)

		details := ValidationDetails(err)
		assert.GreaterOrEqual(t, len(details), 5, "every missing field should appear: %v", details)
	})

	t.Run("empty author entry", func(t *testing.T) {
		req := validCreateRequest()
		req.Authors = []string{"Martin Kleppmann", ""}
		assert.Error(t, req.Validate())
	})

	t.Run("too many categories", func(t *testing.T) {
		req := validCreateRequest()
		req.Categories = make([]string, MaxCategories+1)
		for i := range req.Categories {
			req.Categories[i] = "cat"
		}
		assert.Error(t, req.Validate())
	})
}

func TestValidationDetailsAreSorted(t *testing.T) {
	err := CreateBookRequest{}.Validate()
	require.Error(t, err)

	details := ValidationDetails(err)
	for i := 1; i < len(details); i++ {
		assert.LessOrEqual(t, details[i-1], details[i], "details must be in stable field order")
	}
}

func TestAvailableOrDefault(t *testing.T) {
	req := validCreateRequest()
	assert.True(t, req.AvailableOrDefault(), "omitted available defaults to true")

	f := false
	req.Available = &f
	assert.False(t, req.AvailableOrDefault())
}

func TestBookResponseShape(t *testing.T) {
	p := validParams()
	isbn, err := NewISBN("9780306406157")
	require.NoError(t, err)
	p.ISBN = &isbn

	b, err := NewBook(p)
	require.NoError(t, err)

	data, err := json.Marshal(b.ToResponse())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"id", "title", "authors", "description", "type", "format", "categories", "isbn", "available", "path", "createdAt", "updatedAt"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "9780306406157", decoded["isbn"])
	assert.NotContains(t, decoded, "embedding", "vectors never leave the persistence layer")
}
