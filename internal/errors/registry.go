package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Registry Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryRegistry,
		Message:  "Duplicate component route",
		Detail:   "Two components were registered for the same (method, path) pair. Each route may have exactly one handler.",
		DocURL:   "https://stateview.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryRegistry,
		Message:  "Component has no handler",
		Detail:   "A component record was registered without a handler function. This is a programming defect, not a runtime condition.",
		DocURL:   "https://stateview.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryRegistry,
		Message:  "Invalid component route path",
		Detail:   "Component route paths must be non-empty and begin with '/'.",
		DocURL:   "https://stateview.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryRegistry,
		Message:  "Registry is frozen",
		Detail:   "Components must be registered during process startup, before the registry snapshot is taken. Runtime mutation is not supported.",
		DocURL:   "https://stateview.dev/docs/errors/E104",
	},

	// ============================================
	// Config Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Cannot read configuration file",
		DocURL:   "https://stateview.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "stateview.json could not be parsed as JSON.",
		DocURL:   "https://stateview.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://stateview.dev/docs/errors/E203",
	},

	// ============================================
	// Startup Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryStartup,
		Message:  "Server failed to start",
		DocURL:   "https://stateview.dev/docs/errors/E301",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
