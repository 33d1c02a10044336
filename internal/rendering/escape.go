package rendering

import "strings"

// CSSValue strips characters that could end a CSS declaration or the
// enclosing style element, so theme tokens can be inlined safely.
func CSSValue(value string) string {
	if value == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(value))

	for _, r := range value {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r':
			continue
		default:
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// AnchorID turns an arbitrary id into a lowercase HTML id made of letters,
// digits and single dashes.
func AnchorID(id string) string {
	var result strings.Builder
	result.Grow(len(id))

	dash := false
	for _, r := range strings.ToLower(id) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			result.WriteRune(r)
			dash = false
		case result.Len() > 0 && !dash:
			result.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}
