package shared

import "encoding/json"

// NullableString distinguishes the three states an optional JSON field can
// be in: absent (unchanged), explicit null (clear), and a value (set).
// A plain *string cannot tell "absent" apart from "null", and the update
// contract for books depends on that difference.
type NullableString struct {
	Set   bool   // field was present in the payload
	Valid bool   // field held a non-null value
	Value string // the value when Valid
}

// UnmarshalJSON is only invoked when the field is present, so Set records
// presence and Valid records null-ness.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Valid = false
		n.Value = ""
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON renders null for cleared values.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// StringFrom builds a set, non-null NullableString. Test helper friendly.
func StringFrom(v string) NullableString {
	return NullableString{Set: true, Valid: true, Value: v}
}

// NullString builds a set-to-null NullableString.
func NullString() NullableString {
	return NullableString{Set: true, Valid: false}
}
