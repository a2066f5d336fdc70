package utils

import "strings"

// NormalizeSerial brings a generator serial number to a canonical form:
// no whitespace or dashes, upper case.
func NormalizeSerial(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}
