// Package codec converts entity collections to and from their stored JSON
// form. Dates are written as RFC 3339 strings and absent optional dates are
// omitted.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of decoding a stored collection.
//
// Decoding never fails outright: malformed input yields an empty Records
// slice with Recovered set and Err describing what was wrong, so callers can
// tell corrupt data apart from a collection that is legitimately empty.
type Result[T any] struct {
	Records   []T
	Recovered bool
	Err       error
}

// Encode serializes records as a JSON array. A nil slice encodes as [].
func Encode[T any](records []T) (string, error) {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	return string(b), nil
}

// Decode parses a JSON array produced by Encode.
func Decode[T any](text string) Result[T] {
	if strings.TrimSpace(text) == "" {
		return Result[T]{Records: []T{}}
	}
	var records []T
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return Result[T]{
			Records:   []T{},
			Recovered: true,
			Err:       fmt.Errorf("decoding records: %w", err),
		}
	}
	if records == nil {
		records = []T{}
	}
	return Result[T]{Records: records}
}

// EncodeValue serializes a single record.
func EncodeValue[T any](v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	return string(b), nil
}

// DecodeValueInto parses text over dst. Fields absent from text keep the
// values dst already holds, which lets callers merge stored data over
// defaults. On error dst is left unchanged.
func DecodeValueInto[T any](text string, dst *T) error {
	merged := *dst
	if err := json.Unmarshal([]byte(text), &merged); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	*dst = merged
	return nil
}
