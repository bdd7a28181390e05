// Package cursor provides opaque pagination token encoding/decoding for
// paged journal reads.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor represents the internal state of a pagination cursor.
type Cursor struct {
	// Seq is the last sequence number the reader has seen, the next
	// page starts above it.
	Seq uint64 `json:"seq"`
	// Journal guards against applying a token to a different recording,
	// it carries the recording's identity string.
	Journal string `json:"journal,omitempty"`
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 string to a cursor.
// Returns an error if the token is invalid or malformed.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	return c, nil
}
