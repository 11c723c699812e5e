package sections

import "strings"

// Normalize converts a heading title into a URL-safe section identifier.
// It lowercases and trims the title, collapses every run of characters
// outside [a-z0-9] into a single hyphen and strips leading/trailing hyphens.
// Normalize is total and idempotent.
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte(c)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
