package service

import "strings"

// splitName splits a display name into first and last name. It accepts
// "First Middle Last" and "Last, First" forms; middle names are dropped.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	if i := strings.Index(name, ","); i >= 0 {
		last = strings.TrimSpace(name[:i])
		rest := strings.Fields(name[i+1:])
		if len(rest) > 0 {
			first = rest[0]
		}
		return first, last
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[len(parts)-1]
}
