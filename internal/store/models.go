// Package store defines the collection storage interface, its file and
// in-memory implementations, and the single-writer guard shared by all backends.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// DecodeError reports persisted content that is not a valid collection.
type DecodeError struct {
	Collection string
	Path       string // JSON path inside the collection, empty for syntax errors
	Err        error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decode %s: %s: %v", e.Collection, e.Path, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a persisted collection body. Blank content is an empty collection.
func Decode(collection string, body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &DecodeError{Collection: collection, Err: err}
	}
	if err := validateCollection(collection, doc); err != nil {
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DecodeError{Collection: collection, Err: err}
	}
	return records, nil
}

// Encode renders records as an indented JSON array with a trailing newline.
func Encode(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return nil, fmt.Errorf("indent collection: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Records marshals typed values into raw collection records.
func Records[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for i := range items {
		b, err := json.Marshal(items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Unmarshal decodes raw collection records into typed values.
func Unmarshal[T any](collection string, records []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, r := range records {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, &DecodeError{Collection: collection, Path: fmt.Sprintf("[%d]", i), Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}
