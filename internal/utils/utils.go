package utils

import (
	"encoding/json"
	"io"

	"github.com/oklog/ulid/v2"
)

// NewRunID returns a lexically sortable run identifier.
var NewRunID = func() string {
	return ulid.Make().String()
}

// IsValidRunID reports whether id is a well-formed run identifier.
func IsValidRunID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

func WriteTo(m json.Marshaler, w io.Writer) (int64, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return -1, err
	}
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	return int64(n), nil
}
