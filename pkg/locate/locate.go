// Package locate maps dependency coordinates to descriptor files on disk.
//
// Three layouts are supported:
//
//   - [Maven]: a local Maven repository (~/.m2/repository), where a POM lives
//     at <group path>/<artifact>/<version>/<artifact>-<version>.pom.
//   - [Gradle]: the Gradle module cache (~/.gradle/caches/modules-2/files-2.1),
//     which adds a content-hash directory: <group>/<artifact>/<version>/<sha1>/<file>.
//   - [Remote]: downloads the POM from a remote repository into a local
//     directory laid out like a Maven repository.
//
// [Chain] tries several locators in order. All locators return [ErrNotFound]
// when they have no descriptor for a coordinate.
package locate

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/noticer/pkg/coord"
)

// ErrNotFound is returned when no descriptor exists for a coordinate.
var ErrNotFound = errors.New("descriptor not found")

// IsNotFound reports whether err means the descriptor does not exist, as
// opposed to a failed lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Locator resolves a coordinate to the path of its descriptor file.
type Locator interface {
	Locate(ctx context.Context, c coord.Coordinate) (string, error)
}

// Func adapts a function to the Locator interface.
type Func func(ctx context.Context, c coord.Coordinate) (string, error)

// Locate calls f.
func (f Func) Locate(ctx context.Context, c coord.Coordinate) (string, error) { return f(ctx, c) }

// Chain tries locators in order and returns the first path found.
type Chain []Locator

// Locate returns the first hit. When every locator misses, the result is
// [ErrNotFound]; when at least one failed for another reason, the first such
// error is returned instead.
func (ch Chain) Locate(ctx context.Context, c coord.Coordinate) (string, error) {
	var firstErr error
	for _, l := range ch {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path, err := l.Locate(ctx, c)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, ErrNotFound) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, c)
}
