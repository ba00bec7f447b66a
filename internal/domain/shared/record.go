package shared

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a loosely-structured object as delivered by the data-fetch layer.
// The same concept appears under differently-cased and differently-spelled
// field names depending on the source, so concepts are read through ordered
// accessor-rule lists: the first key holding a usable value wins. Missing or
// malformed values are never an error, only an absent result.
type Record map[string]any

// AsRecord converts a raw value into a Record if it is object-shaped.
func AsRecord(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, true
	case map[string]any:
		return Record(r), true
	default:
		return nil, false
	}
}

// FirstString returns the first key whose value coerces to a non-empty string.
func (r Record) FirstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := CoerceString(r[key]); ok {
			return s, true
		}
	}
	return "", false
}

// FirstFloat returns the first key whose value coerces to a finite number.
func (r Record) FirstFloat(keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, ok := CoerceFloat(r[key]); ok {
			return f, true
		}
	}
	return 0, false
}

// FirstInt returns the first key whose value coerces to an integral number.
func (r Record) FirstInt(keys ...string) (int, bool) {
	if f, ok := r.FirstFloat(keys...); ok {
		return int(f), true
	}
	return 0, false
}

// FirstBool returns the first key holding a boolean.
func (r Record) FirstBool(keys ...string) (bool, bool) {
	for _, key := range keys {
		if b, ok := r[key].(bool); ok {
			return b, true
		}
	}
	return false, false
}

// FirstRecord returns the first key holding a nested object.
func (r Record) FirstRecord(keys ...string) (Record, bool) {
	for _, key := range keys {
		if nested, ok := AsRecord(r[key]); ok {
			return nested, true
		}
	}
	return nil, false
}

// FirstSlice returns the first key holding a non-empty list.
func (r Record) FirstSlice(keys ...string) ([]any, bool) {
	for _, key := range keys {
		if items, ok := r[key].([]any); ok && len(items) > 0 {
			return items, true
		}
	}
	return nil, false
}

// FirstTime returns the first key whose value coerces to a timestamp.
func (r Record) FirstTime(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		if t, ok := CoerceTime(r[key]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceString converts identifier-like values (strings, numbers) into a
// trimmed string. Whitespace-only strings coerce to nothing.
func CoerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	case json.Number:
		return s.String(), true
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}

// CoerceFloat converts numeric-like values (numbers, numeric strings) into a
// finite float64.
func CoerceFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	case json.Number:
		parsed, err := f.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// CoerceTime converts timestamp-like values into a time.Time. Numbers are
// treated as epoch milliseconds, strings as RFC3339. Unparseable values
// coerce to nothing; callers treat the zero time as "earliest possible".
func CoerceTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		trimmed := strings.TrimSpace(t)
		if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return parsed, true
		}
		if millis, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return epochMillis(millis), true
		}
		return time.Time{}, false
	default:
		if millis, ok := CoerceFloat(v); ok {
			return epochMillis(millis), true
		}
		return time.Time{}, false
	}
}

func epochMillis(millis float64) time.Time {
	return time.UnixMilli(int64(millis)).UTC()
}
