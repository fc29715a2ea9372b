package recharge

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a plan or history entry as delivered by the remote API. The
// backend and older clients disagree on field names and casing, so records
// are kept loosely shaped until they are normalized.
type Record map[string]any

// first returns the first field that is present and not null.
func (r Record) first(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstSet returns the first field holding a non-empty value (no empty
// strings, zeros or false).
func (r Record) firstSet(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && isSet(v) {
			return v, true
		}
	}
	return nil, false
}

func isSet(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// NormalizeText renders a field value as comparable text: trimmed, upper
// case, single spaces. Any Unicode space counts as a separator. Nil becomes "".
func NormalizeText(v any) string {
	if v == nil {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToUpper(toText(v))), " ")
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return formatNumber(f)
		}
		return t.String()
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toNumber coerces a field to a number; anything non-numeric is 0.
func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, _ = t.Float64()
	case bool:
		if t {
			f = 1
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// text returns the display text of a field or "" when missing.
func (r Record) text(keys ...string) string {
	v, ok := r.first(keys...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(toText(v))
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// textSet is like text but skips empty values.
func (r Record) textSet(keys ...string) string {
	v, ok := r.firstSet(keys...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(toText(v))
}
