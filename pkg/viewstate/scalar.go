package viewstate

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// json is the serializer used for schema derivation and state merging.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseScalar infers a typed value from a raw string, trying integer, then
// float, then bool, falling back to the string itself. Empty strings stay
// strings: an empty value is a legitimate override, not an absence.
func ParseScalar(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// FormatScalar renders a merged-map value back to its cookie/query string
// form. Non-scalar values (nested objects, arrays, null) yield "", false:
// they have no per-field cookie representation.
func FormatScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	default:
		return "", false
	}
}
