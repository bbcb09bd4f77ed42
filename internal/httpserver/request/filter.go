// Package request holds the payload whitelisting and required-value
// checks shared by every mutating handler. Bodies are decoded as plain
// maps and trimmed to the columns a route may touch before anything
// reaches the database.
package request

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Error is a validation failure that maps directly to an HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// FilterBody returns exactly the intersection of body's keys and the
// allow list. Keys absent from the allow list never survive, so a
// handler can hand the result straight to an insert or update.
func FilterBody(body map[string]interface{}, keys []string) map[string]interface{} {
	values := map[string]interface{}{}
	for _, key := range keys {
		if v, ok := body[key]; ok {
			values[key] = v
		}
	}
	return values
}

// RequireValues fails on the first key that is absent, nil, or an
// empty string. Empty string counts the same as absent.
func RequireValues(body map[string]interface{}, keys []string) error {
	for _, key := range keys {
		v, ok := body[key]
		if !ok || v == nil || v == "" {
			return &Error{Status: 400, Message: fmt.Sprintf("missing required value: '%s'", key)}
		}
	}
	return nil
}

// Kind names the runtime type a schema field must carry.
type Kind string

const (
	Number Kind = "number"
	String Kind = "string"
	Date   Kind = "date"
)

// Schema is a per-endpoint field contract: which keys a request must
// carry and what runtime type each must have. Dates are strings in
// mm-dd-yyyy form.
type Schema map[string]Kind

// Check picks the schema's keys out of body, requires them all, and
// typechecks each one. It returns the picked subset so the caller
// persists only contracted fields.
func (s Schema) Check(body map[string]interface{}) (map[string]interface{}, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	picked := FilterBody(body, keys)
	if err := RequireValues(picked, keys); err != nil {
		return nil, err
	}
	for key, kind := range s {
		if !matches(kind, picked[key]) {
			return nil, &Error{Status: 400, Message: fmt.Sprintf("wrong data type for: '%s'", key)}
		}
	}
	return picked, nil
}

func matches(kind Kind, v interface{}) bool {
	switch kind {
	case Number:
		switch n := v.(type) {
		case float64, int, int64:
			return true
		case string:
			_, err := strconv.ParseFloat(n, 64)
			return err == nil
		}
		return false
	case String:
		_, ok := v.(string)
		return ok
	case Date:
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse("01-02-2006", s)
		return err == nil
	}
	return false
}
