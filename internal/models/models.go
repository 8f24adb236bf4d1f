package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies an entity. The zero value means unset.
type ID string

// NewID formats an integer id, used for ids minted from a clock
func NewID(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: id must be a string or number, got %s", ErrValidation, data)
	}
	*id = ID(n.String())
	return nil
}

// Entity is implemented by every collection element that carries an [ID].
type Entity interface {
	Identity() ID    // Identity returns the unique identifier for this entity
	Validate() error // Validate checks if the entity's data is valid and returns an error if not
}

// Find returns the first entity with the given id
func Find[T Entity](items []T, id ID) (T, bool) {
	if i := IndexOf(items, id); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}

// IndexOf returns the position of id in items, or -1
func IndexOf[T Entity](items []T, id ID) int {
	for i, item := range items {
		if item.Identity() == id {
			return i
		}
	}
	return -1
}

// Without returns items minus every entity with the given id, and whether anything was removed.
func Without[T Entity](items []T, id ID) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Identity() != id {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items)
}

// ContainsID reports whether ids holds id
func ContainsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without id, and whether it was present.
func RemoveID(ids []ID, id ID) ([]ID, bool) {
	out := make([]ID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out, len(out) != len(ids)
}

// Timestamp is a time that decodes from an ISO-8601 string or epoch milliseconds.
//
// Values that cannot be parsed decode to the zero time instead of failing.
type Timestamp struct {
	time.Time
}

// Now returns the current time truncated to milliseconds
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

// At wraps t
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	ts.Time = parseTimestamp(data)
	return nil
}

func parseTimestamp(data []byte) time.Time {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return time.Time{}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return time.Time{}
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		return time.Time{}
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
