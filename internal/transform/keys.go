package transform

import (
	"strings"
	"unicode"
)

// The persistence layer stores profile documents with camelCase keys while
// the API speaks snake_case. SnakeKeys and CamelKeys convert decoded JSON
// values between the two conventions, recursing through objects and arrays
// and leaving scalars untouched.

// SnakeKeys returns a copy of v with every object key converted from
// camelCase to snake_case.
func SnakeKeys(v any) any {
	return mapKeys(v, snakeCase)
}

// CamelKeys returns a copy of v with every object key converted from
// snake_case to camelCase.
func CamelKeys(v any) any {
	return mapKeys(v, camelCase)
}

func mapKeys(v any, convert func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[convert(k)] = mapKeys(child, convert)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = mapKeys(child, convert)
		}
		return out
	default:
		return v
	}
}

// snakeCase inserts an underscore before every uppercase rune except a
// leading one, then lowers everything: "monthlySalaryNet" becomes
// "monthly_salary_net". Keys already in snake_case pass through unchanged.
func snakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelCase joins underscore-separated parts, capitalizing each part after
// the first: "monthly_salary_net" becomes "monthlySalaryNet". The first part
// is kept verbatim.
func camelCase(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}
