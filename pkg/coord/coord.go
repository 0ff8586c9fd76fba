// Package coord defines dependency coordinates and their unique ids.
package coord

import (
	"strings"

	"github.com/matzehuels/noticer/pkg/errors"
)

// Coordinate identifies one resolved dependency.
//
// Zero values: an empty Coordinate is incomplete ([Coordinate.Complete]
// reports false). Coordinates are values and never mutated after creation.
type Coordinate struct {
	Group    string `json:"groupId"`
	Artifact string `json:"artifactId"`
	Version  string `json:"version,omitempty"`
}

// New builds a coordinate from its parts.
func New(group, artifact, version string) Coordinate {
	return Coordinate{Group: group, Artifact: artifact, Version: version}
}

// UniqueID returns "groupId:artifactId", the version-independent key used
// for deduplication and exclusion.
func (c Coordinate) UniqueID() string {
	return c.Group + ":" + c.Artifact
}

// String returns "groupId:artifactId:version", or the unique id when the
// version is unknown.
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.UniqueID()
	}
	return c.UniqueID() + ":" + c.Version
}

// Complete reports whether group, artifact and version are all set.
func (c Coordinate) Complete() bool {
	return strings.TrimSpace(c.Group) != "" &&
		strings.TrimSpace(c.Artifact) != "" &&
		strings.TrimSpace(c.Version) != ""
}

// Validate checks that the coordinate can be safely mapped to a repository path.
func (c Coordinate) Validate() error {
	if err := errors.ValidateCoordinatePart("groupId", c.Group); err != nil {
		return err
	}
	if err := errors.ValidateCoordinatePart("artifactId", c.Artifact); err != nil {
		return err
	}
	return errors.ValidateVersion(c.Version)
}

// Parse splits "group:artifact" or "group:artifact:version".
func Parse(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid coordinate %q (expected groupId:artifactId[:version])", s)
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// GroupPath converts a groupId to its repository directory form
// ("com.google.guava" → "com/google/guava").
func (c Coordinate) GroupPath() string {
	return strings.ReplaceAll(c.Group, ".", "/")
}

// DescriptorName returns the POM file name, "<artifact>-<version>.pom".
func (c Coordinate) DescriptorName() string {
	return c.Artifact + "-" + c.Version + ".pom"
}
