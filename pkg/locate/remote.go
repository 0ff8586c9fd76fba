package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/integrations"
	"github.com/matzehuels/noticer/pkg/integrations/maven"
)

// Remote downloads descriptors with a Maven client and stores them under
// Dir in Maven repository layout, so the returned path behaves like a local
// hit (including the artifact folder two levels up).
type Remote struct {
	Client  *maven.Client
	Dir     string
	Refresh bool
}

// Locate returns the stored path, downloading the descriptor if it is not
// already present in Dir.
func (r Remote) Locate(ctx context.Context, c coord.Coordinate) (string, error) {
	local := Maven{Root: r.Dir}
	if !r.Refresh {
		if path, err := local.Locate(ctx, c); err == nil {
			return path, nil
		}
	}

	d, err := r.Client.FetchDescriptor(ctx, c, r.Refresh)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, c)
		}
		return "", err
	}

	path := filepath.Join(r.Dir, filepath.FromSlash(c.GroupPath()), c.Artifact, c.Version, c.DescriptorName())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, d.Data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}
