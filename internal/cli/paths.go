package cli

import (
	"errors"
	"path/filepath"

	"github.com/adrg/xdg"
)

// cacheDir returns the noticer cache directory ($XDG_CACHE_HOME/noticer).
func cacheDir() (string, error) {
	if xdg.CacheHome == "" {
		return "", errors.New("cache home not set")
	}
	return filepath.Join(xdg.CacheHome, appName), nil
}

// descriptorDir is where remotely fetched descriptors are stored.
func descriptorDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "descriptors"), nil
}

// defaultConfigFile returns the first noticer/config.toml found in the XDG
// config directories, or "" when there is none.
func defaultConfigFile() string {
	path, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml"))
	if err != nil {
		return ""
	}
	return path
}
