package viewstate

import "sort"

// Fields returns the field set and default values of state type T, derived by
// serializing a zero-value instance. Keys are the JSON field names, values
// the defaults as decoded scalars (numbers arrive as float64).
//
// A type with no serializable fields yields an empty map; there is no error
// path. The field set and defaults are stable across calls for a given type.
func Fields[T any]() map[string]any {
	var zero T

	raw, err := json.Marshal(zero)
	if err != nil {
		return map[string]any{}
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		// T does not serialize to an object (scalar, slice, nil map...).
		return map[string]any{}
	}
	return fields
}

// FieldNames returns T's field names in sorted order.
func FieldNames[T any]() []string {
	fields := Fields[T]()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
