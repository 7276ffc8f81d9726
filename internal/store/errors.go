package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorruptStore marks persisted bytes that failed schema decoding. The
// reconciler recovers from it internally; callers only ever see it wrapped in
// log output.
var ErrCorruptStore = errors.New("store: corrupt persisted data")

// ErrStorage marks a failed write to the persisted store. Mutations keep
// their in-memory effect when this is returned; the caller decides how to
// warn the user.
var ErrStorage = errors.New("store: persistence failure")

// ValidationError carries per-field messages for a rejected idea draft.
// Nothing is created or mutated when one is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
