package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList decodes a list response that the backend serves in either of
// two shapes: a bare JSON array, or an object wrapping the array under a
// named field. Both shapes yield the same canonical slice, so nothing
// deeper in the application ever branches on response shape.
//
// fields lists the wrapper field names to try, in order. If none of them is
// present, the first array-valued field found is used as a fallback.
func decodeList[T any](data []byte, fields ...string) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode list wrapper: %w", err)
	}

	for _, f := range fields {
		if raw, ok := wrapper[f]; ok {
			return decodeRawList[T](raw)
		}
	}

	for _, raw := range wrapper {
		if isArray(raw) {
			return decodeRawList[T](raw)
		}
	}

	return nil, fmt.Errorf("decode list: no array field in response")
}

func decodeRawList[T any](raw json.RawMessage) ([]T, error) {
	if isNull(raw) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode wrapped list: %w", err)
	}
	return out, nil
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimLeft(raw, " \t\r\n")
	return len(t) > 0 && t[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
