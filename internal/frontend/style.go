package frontend

import "strings"

// StyleProcessing is the neutral style shown between order creation and the
// deferred status check.
const StyleProcessing = "text-muted"

// StyleUnknown is the fallback for status strings that would not form a
// usable style name.
const StyleUnknown = "status-unknown"

// StatusStyle maps a server status string to a style class. It is total:
// any status the server returns gets a style, known or not. Statuses that
// would produce a malformed class name fall back to StyleUnknown.
func StatusStyle(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return StyleUnknown
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return StyleUnknown
		}
	}
	return "status-" + s
}
