package maven

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/noticer/pkg/cache"
	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/integrations"
)

// CentralURL is the default remote repository.
const CentralURL = "https://repo1.maven.org/maven2"

// Descriptor is a downloaded POM together with where it came from.
type Descriptor struct {
	Repository string `json:"repository"` // Repository base URL that served the file
	URL        string `json:"url"`        // Full URL of the POM
	Data       []byte `json:"data"`       // Raw POM bytes
}

// Client downloads descriptors from Maven-layout repositories.
// Responses are cached per repository and coordinate.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	keyer        cache.Keyer
	repositories []string
}

// NewClient creates a client that queries repositories in order.
// An empty repository list means Maven Central only.
func NewClient(c cache.Cache, ttl time.Duration, repositories ...string) *Client {
	if len(repositories) == 0 {
		repositories = []string{CentralURL}
	}
	repos := make([]string, len(repositories))
	for i, r := range repositories {
		repos[i] = strings.TrimSuffix(r, "/")
	}
	return &Client{
		Client:       integrations.NewClient(c, "maven:", ttl, nil),
		keyer:        cache.NewDefaultKeyer(),
		repositories: repos,
	}
}

// Repositories returns the configured repository base URLs.
func (c *Client) Repositories() []string { return c.repositories }

// FetchDescriptor downloads the POM for a complete coordinate from the first
// repository that has it.
//
// Returns:
//   - Descriptor on success
//   - [integrations.ErrNotFound] if no repository has the file
//   - [integrations.ErrNetwork] for HTTP failures of the last repository tried
//   - an [errors.ErrCodeInvalidCoordinate] error for incomplete coordinates
func (c *Client) FetchDescriptor(ctx context.Context, co coord.Coordinate, refresh bool) (*Descriptor, error) {
	if err := co.Validate(); err != nil {
		return nil, err
	}

	var lastErr error = integrations.ErrNotFound
	for _, repo := range c.repositories {
		url := DescriptorURL(repo, co)
		key := c.keyer.DescriptorKey(repo, co.Group, co.Artifact, co.Version)

		var d Descriptor
		err := c.Cached(ctx, key, refresh, &d, func() error {
			data, err := c.GetBytes(ctx, url)
			if err != nil {
				return err
			}
			d = Descriptor{Repository: repo, URL: url, Data: data}
			return nil
		})
		if err == nil {
			return &d, nil
		}
		if !errors.Is(err, integrations.ErrNotFound) {
			lastErr = err
		}
	}
	if errors.Is(lastErr, integrations.ErrNotFound) {
		return nil, fmt.Errorf("%w: descriptor %s", integrations.ErrNotFound, co)
	}
	return nil, lastErr
}

// DescriptorURL returns the POM URL of co in a Maven-layout repository.
func DescriptorURL(repository string, co coord.Coordinate) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimSuffix(repository, "/"), co.GroupPath(), co.Artifact, co.Version, co.DescriptorName())
}
