package viewstate

// Unset is the reserved query value that forces a field to its empty
// representation and deletes the field's cookie. It is recognized only in
// query parameters, never in cookies, and is opaque enough not to collide
// with legitimate field values.
const Unset = "__STATEVIEW_UNSET__"

// CookieLookup returns the value of the named cookie, if one exists.
// See persist.FromRequest for the standard implementation over *http.Request.
type CookieLookup func(name string) (string, bool)

// Resolved bundles the typed state with the raw merged scalar map it was
// derived from. The raw map is what cookie persistence writes back and what
// URL construction exposes as sibling-component parameters.
type Resolved[T any] struct {
	// State is the merged, typed view state.
	State T

	// Values maps each field name to its stringified merged value.
	// Empty strings mark fields whose cookies must be deleted.
	Values map[string]string

	// Degraded reports that the merged map could not be deserialized into T
	// and State fell back to the type's full default. A coarse, known
	// precision loss; Values still reflects the per-field merge.
	Degraded bool
}

// Resolve merges T's defaults, the request's cookies, and its query
// parameters into one view state, field by field.
//
// Precedence per field is strict: query > cookie > default. A query value
// equal to Unset forces the field empty regardless of any cookie. Values are
// parsed with type inference (integer, float, bool, string); parse failures
// degrade to string interpretation rather than erroring. Resolve never
// fails: the worst outcome is T's default.
func Resolve[T any](query map[string]string, cookies CookieLookup) Resolved[T] {
	merged := Fields[T]()

	// Cookie overlay.
	if cookies != nil {
		for name := range merged {
			if raw, ok := cookies(name); ok {
				merged[name] = ParseScalar(raw)
			}
		}
	}

	// Query overlay always wins over cookies.
	for name := range merged {
		raw, ok := query[name]
		if !ok {
			continue
		}
		if raw == Unset {
			merged[name] = ""
		} else {
			merged[name] = ParseScalar(raw)
		}
	}

	res := Resolved[T]{Values: stringifyMerged(merged)}

	blob, err := json.Marshal(merged)
	if err != nil {
		res.Degraded = true
		return res
	}
	var state T
	if err := json.Unmarshal(blob, &state); err != nil {
		// Type mismatch after merge: fall back to the full default.
		res.Degraded = true
		var zero T
		res.State = zero
		return res
	}
	res.State = state
	return res
}

// stringifyMerged renders the merged map to per-field strings, dropping
// fields with no scalar representation.
func stringifyMerged(merged map[string]any) map[string]string {
	values := make(map[string]string, len(merged))
	for name, v := range merged {
		if s, ok := FormatScalar(v); ok {
			values[name] = s
		}
	}
	return values
}
