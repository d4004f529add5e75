package dto

import (
	"bytes"
	"encoding/json"
)

// Text is a string field that decodes to "" when the JSON value is not a
// string, so one malformed field never fails the whole manifest.
type Text string

// UnmarshalJSON accepts strings and ignores every other JSON type.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// String returns the plain string value.
func (t Text) String() string {
	return string(t)
}

// decodeIf unmarshals data into v only when data starts with open ('{' or
// '['); any other shape leaves v at its zero value.
func decodeIf(data []byte, open byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != open {
		return nil
	}
	return json.Unmarshal(data, v)
}
