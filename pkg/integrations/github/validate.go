package github

import (
	"regexp"

	"github.com/matzehuels/noticer/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateRepoRef checks owner and repo before they are placed in an API path.
// SCM links in descriptors are free text, so extracted parts can be junk.
func ValidateRepoRef(owner, repo string) error {
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid github owner %q", owner)
	}
	if repo == "." || repo == ".." || !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid github repo %q", repo)
	}
	return nil
}
