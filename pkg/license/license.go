// Package license models license records, their content hash and the
// enrichment hook that fills in license text from a remote service.
package license

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// License is one deduplicated license record.
//
// Identity is [License.Hash], computed from Name, URL and Year only, so
// enrichment (SPDXID, Content) never changes which entry a library points to.
type License struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Year    string `json:"year,omitempty" yaml:"year,omitempty"`
	SPDXID  string `json:"spdxId,omitempty" yaml:"spdxId,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// New builds a license with surrounding whitespace removed.
func New(name, url, year string) License {
	return License{
		Name: strings.TrimSpace(name),
		URL:  strings.TrimSpace(url),
		Year: strings.TrimSpace(year),
	}
}

// Hash returns the hex SHA-256 of the normalized name, URL and year.
// Identical content always maps to the same key.
func (l License) Hash() string {
	h := sha256.New()
	for _, part := range []string{l.Name, l.URL, l.Year} {
		h.Write([]byte(strings.TrimSpace(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Set is a collection of licenses keyed by hash. Adding the same content
// twice keeps a single entry.
type Set map[string]*License

// NewSet builds a set from licenses.
func NewSet(licenses ...License) Set {
	s := make(Set, len(licenses))
	for _, l := range licenses {
		s.Add(l)
	}
	return s
}

// Add inserts l, replacing any entry with the same hash.
func (s Set) Add(l License) {
	lic := l
	s[lic.Hash()] = &lic
}

// Hashes returns the sorted hashes in the set.
func (s Set) Hashes() []string {
	out := make([]string, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Licenses returns the licenses ordered by hash.
func (s Set) Licenses() []License {
	out := make([]License, 0, len(s))
	for _, h := range s.Hashes() {
		out = append(out, *s[h])
	}
	return out
}

// YearResolver returns the copyright year for a library's license, or ""
// when unknown.
type YearResolver func(uniqueID, url string) string

// NoYear is the default YearResolver. No year source is consulted.
func NoYear(string, string) string { return "" }
