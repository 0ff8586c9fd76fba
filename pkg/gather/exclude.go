package gather

import (
	"regexp"

	"github.com/matzehuels/noticer/pkg/errors"
)

// selfIDs are never reported; they are this tool's own artifacts.
var selfIDs = map[string]bool{
	"com.mikepenz:aboutlibraries":             true,
	"com.mikepenz:aboutlibraries-definitions": true,
}

// CompileExclusions compiles patterns for whole-string matching against
// unique ids: `com\.foo:.*` matches "com.foo:bar" but not "com.foo.bar:baz".
func CompileExclusions(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid exclusion pattern %q", p)
		}
		out = append(out, re)
	}
	return out, nil
}

// Excluded reports whether uniqueID matches any pattern.
func Excluded(uniqueID string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(uniqueID) {
			return true
		}
	}
	return false
}
