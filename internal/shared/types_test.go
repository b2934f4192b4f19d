package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableStringUnmarshal(t *testing.T) {
	type payload struct {
		Path NullableString `json:"path"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantValue string
	}{
		{
			name:    "absent field",
			body:    `{}`,
			wantSet: false,
		},
		{
			name:    "explicit null",
			body:    `{"path": null}`,
			wantSet: true,
		},
		{
			name:      "value",
			body:      `{"path": "/files/book.pdf"}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "/files/book.pdf",
		},
		{
			name:      "empty string is a value, not null",
			body:      `{"path": ""}`,
			wantSet:   true,
			wantValid: true,
			wantValue: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantSet, p.Path.Set)
			assert.Equal(t, tt.wantValid, p.Path.Valid)
			assert.Equal(t, tt.wantValue, p.Path.Value)
		})
	}
}

func TestNullableStringUnmarshalRejectsNonString(t *testing.T) {
	var n NullableString
	assert.Error(t, json.Unmarshal([]byte(`42`), &n))
}

func TestNullableStringMarshal(t *testing.T) {
	data, err := json.Marshal(StringFrom("x"))
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(data))

	data, err = json.Marshal(NullString())
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}
