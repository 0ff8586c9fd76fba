package integrations

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist on the remote service.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for remote requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts the repository URL formats found in descriptors
// (plain URLs, git@, git://, git+ and Maven "scm:git:" connections) to
// canonical HTTPS form and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "scm:git:")
	s = strings.TrimPrefix(s, "scm:")
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// ExtractRepoURL finds the owner and repository name in the first of urls
// that matches re. The re parameter should capture owner (group 1) and repo
// name (group 2). Returns ok=false if no candidate matches.
func ExtractRepoURL(re *regexp.Regexp, urls ...string) (owner, repo string, ok bool) {
	for _, u := range urls {
		if u == "" || strings.Contains(u, "/sponsors/") {
			continue
		}
		if m := re.FindStringSubmatch(NormalizeRepoURL(u)); len(m) >= 3 {
			return m[1], strings.TrimSuffix(m[2], ".git"), true
		}
	}
	return "", "", false
}
