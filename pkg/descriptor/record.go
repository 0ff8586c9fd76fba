package descriptor

import (
	"strings"

	"github.com/matzehuels/noticer/pkg/coord"
)

// Record holds the raw fields read from one descriptor file.
//
// Zero values: empty strings mean the field is absent; nil slices and
// pointers likewise. Parent is nil when no <parent> element exists; a
// non-nil Parent may still have empty fields.
type Record struct {
	GroupID      string
	ArtifactID   string
	Version      string
	Name         string
	Description  string
	HomePage     string
	SCM          *SCM
	Licenses     []RawLicense
	Developers   []Developer
	Organization *Organization
	Parent       *coord.Coordinate
}

// RawLicense is a license declaration as written in the descriptor.
type RawLicense struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Developer is one <developer> entry.
type Developer struct {
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	OrganisationURL string `json:"organisationUrl,omitempty" yaml:"organisationUrl,omitempty"`
}

// Organization is the <organization> element.
type Organization struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SCM is the <scm> element.
type SCM struct {
	Connection          string `json:"connection,omitempty" yaml:"connection,omitempty"`
	DeveloperConnection string `json:"developerConnection,omitempty" yaml:"developerConnection,omitempty"`
	URL                 string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Link returns the most useful repository link: the browsable URL when
// present, otherwise the connection strings.
func (s *SCM) Link() string {
	if s == nil {
		return ""
	}
	for _, v := range []string{s.URL, s.Connection, s.DeveloperConnection} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// HasParent reports whether the descriptor declares a <parent> element.
func (r *Record) HasParent() bool {
	return r.Parent != nil
}

// Coordinate returns the descriptor's own coordinate. groupId and version
// fall back to the parent's, as Maven does.
func (r *Record) Coordinate() coord.Coordinate {
	c := coord.New(r.GroupID, r.ArtifactID, r.Version)
	if r.Parent != nil {
		if c.Group == "" {
			c.Group = r.Parent.Group
		}
		if c.Version == "" {
			c.Version = r.Parent.Version
		}
	}
	return c
}

// UniqueID returns "groupId:artifactId" of the descriptor.
func (r *Record) UniqueID() string {
	return r.Coordinate().UniqueID()
}
