package text

import "strings"

// isIllegalXMLChar reports whether r is an ASCII control character that
// XML 1.0 does not allow: 0x00-0x08, 0x0B-0x0C and 0x0E-0x1F.
// Tab, line feed and carriage return are kept.
func isIllegalXMLChar(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r == 0x0B || r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	}
	return false
}

// StripIllegalXMLChars removes the control characters XML 1.0 forbids.
// It returns "" for empty input and is idempotent.
func StripIllegalXMLChars(s string) string {
	if s == "" {
		return ""
	}
	if strings.IndexFunc(s, isIllegalXMLChar) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isIllegalXMLChar(r) {
			return -1
		}
		return r
	}, s)
}
