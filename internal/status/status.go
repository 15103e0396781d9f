// Package status parses the session status payload a coding assistant pipes
// to its status line command.
package status

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyInput is returned when stdin carries no bytes at all.
	ErrEmptyInput = errors.New("empty status payload")
	// ErrInvalidJSON is returned when the payload is not well-formed JSON.
	ErrInvalidJSON = errors.New("status payload is not valid JSON")
	// ErrNullPayload is returned when the payload is the JSON literal null.
	ErrNullPayload = errors.New("status payload is null")
)

// Model is the model descriptor reported by the assistant.
type Model struct {
	ID          string
	DisplayName string
}

// Workspace describes where the session runs.
type Workspace struct {
	CurrentDir string
}

// Record is the parsed status payload. Every field is optional; an absent
// or non-string field reads as "".
type Record struct {
	TranscriptPath string
	Model          Model
	Workspace      Workspace
}

// Parse reads the whole stream and parses it as a status payload.
func Parse(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read status payload: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a status payload already held in memory. A document
// that is valid JSON but not an object carries no fields and yields an
// empty Record; only null is rejected.
func ParseBytes(data []byte) (*Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if doc.Type == gjson.Null {
		return nil, ErrNullPayload
	}

	return &Record{
		TranscriptPath: StringField(doc, "transcript_path"),
		Model: Model{
			ID:          StringField(doc, "model", "id"),
			DisplayName: StringField(doc, "model", "display_name"),
		},
		Workspace: Workspace{
			CurrentDir: StringField(doc, "workspace", "current_dir"),
		},
	}, nil
}

// Field walks nested object keys and returns the value found, or a zero
// Result. When an object repeats a key the last occurrence wins.
func Field(doc gjson.Result, keys ...string) gjson.Result {
	cur := doc
	for _, key := range keys {
		if !cur.IsObject() {
			return gjson.Result{}
		}
		var found gjson.Result
		cur.ForEach(func(k, v gjson.Result) bool {
			if k.Str == key {
				found = v
			}
			return true
		})
		cur = found
	}
	return cur
}

// StringField is Field restricted to string values; anything else reads
// as "".
func StringField(doc gjson.Result, keys ...string) string {
	v := Field(doc, keys...)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// modelAccessors lists the payload fields that may name the model, in
// priority order.
var modelAccessors = []func(*Record) string{
	func(r *Record) string { return r.Model.ID },
	func(r *Record) string { return r.Model.DisplayName },
}

// ReportedModel returns the first non-empty model field of the payload:
// model.id, then model.display_name.
func (r *Record) ReportedModel() (string, bool) {
	if r == nil {
		return "", false
	}
	for _, get := range modelAccessors {
		if v := get(r); v != "" {
			return v, true
		}
	}
	return "", false
}

// HasTranscript reports whether the payload points at a transcript file.
func (r *Record) HasTranscript() bool {
	return r != nil && r.TranscriptPath != ""
}
