package gather

import "strings"

// namePrefixes rewrites well-known verbose name prefixes. Checked in order;
// the first match wins.
var namePrefixes = []struct{ from, to string }{
	{"Android Support Library", "Support"},
	{"Android Support", "Support"},
	{"org.jetbrains.kotlin:", ""},
}

// NormalizeName shortens known name prefixes.
func NormalizeName(name string) string {
	for _, p := range namePrefixes {
		if rest, ok := strings.CutPrefix(name, p.from); ok {
			return p.to + rest
		}
	}
	return name
}

// NormalizeDescription drops the literal "null" some descriptors carry.
func NormalizeDescription(desc string) string {
	if desc == "null" {
		return ""
	}
	return desc
}
