package locate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/noticer/pkg/coord"
)

// Maven finds descriptors in a local Maven repository rooted at Root.
type Maven struct {
	Root string
}

// Locate returns <Root>/<group path>/<artifact>/<version>/<artifact>-<version>.pom.
func (m Maven) Locate(_ context.Context, c coord.Coordinate) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(m.Root, filepath.FromSlash(c.GroupPath()), c.Artifact, c.Version, c.DescriptorName())
	return existing(path, c)
}

// Gradle finds descriptors in a Gradle module cache rooted at Root
// (the files-2.1 directory).
type Gradle struct {
	Root string
}

// Locate globs <Root>/<group>/<artifact>/<version>/*/<artifact>-<version>.pom
// and returns the first match in lexical order.
func (g Gradle) Locate(_ context.Context, c coord.Coordinate) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	pattern := filepath.Join(g.Root, c.Group, c.Artifact, c.Version, "*", c.DescriptorName())
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, c, g.Root)
}

func existing(path string, c coord.Coordinate) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, c)
		}
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a file", ErrNotFound, path)
	}
	return path, nil
}
