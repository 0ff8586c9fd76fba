// Package library defines the resolved library entity and the result
// container handed to notice renderers.
package library

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/matzehuels/noticer/pkg/descriptor"
	"github.com/matzehuels/noticer/pkg/license"
)

// Library is the resolved metadata of one dependency (or one override entry).
// Libraries are values; nothing mutates them after creation.
type Library struct {
	UniqueID        string                   `json:"uniqueId" yaml:"uniqueId"`
	ArtifactVersion string                   `json:"artifactVersion,omitempty" yaml:"artifactVersion,omitempty"`
	Name            string                   `json:"name" yaml:"name"`
	Description     string                   `json:"description" yaml:"description"`
	Website         string                   `json:"website,omitempty" yaml:"website,omitempty"`
	Developers      []descriptor.Developer   `json:"developers" yaml:"developers"`
	Organization    *descriptor.Organization `json:"organization,omitempty" yaml:"organization,omitempty"`
	SCM             *descriptor.SCM          `json:"scm,omitempty" yaml:"scm,omitempty"`
	Licenses        []string                 `json:"licenses" yaml:"licenses"`
	ArtifactFolder  string                   `json:"-" yaml:"-"`
}

// Result is the output of one gather run: libraries in processing order and
// licenses keyed by hash. Library.Licenses entries always resolve in Licenses.
type Result struct {
	Libraries []Library                  `json:"libraries"`
	Licenses  map[string]license.License `json:"licenses"`
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{Licenses: make(map[string]license.License)}
}

// Add appends lib and upserts its licenses.
func (r *Result) Add(lib Library, licenses ...license.License) {
	r.Libraries = append(r.Libraries, lib)
	r.PutLicenses(licenses...)
}

// PutLicenses upserts licenses by hash; later writes win.
func (r *Result) PutLicenses(licenses ...license.License) {
	for _, l := range licenses {
		r.Licenses[l.Hash()] = l
	}
}

// Find returns all libraries with the given unique id. Override entries may
// produce more than one.
func (r *Result) Find(uniqueID string) []Library {
	var out []Library
	for _, lib := range r.Libraries {
		if lib.UniqueID == uniqueID {
			out = append(out, lib)
		}
	}
	return out
}

// Dangling returns license hashes referenced by libraries but missing from
// Licenses, sorted.
func (r *Result) Dangling() []string {
	seen := make(map[string]bool)
	var out []string
	for _, lib := range r.Libraries {
		for _, h := range lib.Licenses {
			if _, ok := r.Licenses[h]; !ok && !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	sort.Strings(out)
	return out
}

// WriteJSON writes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
