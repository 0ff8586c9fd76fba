package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for the different kinds of cached data.
type Keyer interface {
	// HTTPKey generates a key for a raw HTTP response in a namespace
	// (e.g. "github:", "maven:").
	HTTPKey(namespace, key string) string

	// DescriptorKey generates a key for a downloaded descriptor file.
	DescriptorKey(repository, group, artifact, version string) string

	// LicenseKey generates a key for a remote license lookup of a repository.
	LicenseKey(owner, repo string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// DescriptorKey hashes the repository URL together with the coordinate so
// mirrors never share entries.
func (k *DefaultKeyer) DescriptorKey(repository, group, artifact, version string) string {
	return hashKey("descriptor", repository, group, artifact, version)
}

// LicenseKey returns "license:<owner>/<repo>".
func (k *DefaultKeyer) LicenseKey(owner, repo string) string {
	return "license:" + owner + "/" + repo
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
