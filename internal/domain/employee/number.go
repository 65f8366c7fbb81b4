package employee

import "strings"

const numberWidth = 5

// NormalizeNumber canonicalizes an external employee number: keep only
// the digits and left-pad with zeros to five characters, so "123" and
// "00123" dedup to the same key. Inputs with no digits at all keep
// their trimmed text but are still padded. Empty input stays empty.
func NormalizeNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	var digits strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}

	base := digits.String()
	if base == "" {
		base = s
	}
	if len(base) >= numberWidth {
		return base
	}
	return strings.Repeat("0", numberWidth-len(base)) + base
}
