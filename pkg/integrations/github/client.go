package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticer/pkg/cache"
	apperrors "github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/integrations"
	"github.com/matzehuels/noticer/pkg/license"
)

// APIURL is the public GitHub REST endpoint.
const APIURL = "https://api.github.com"

var repoURLPattern = regexp.MustCompile(`https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`)

// Client fetches repository licenses from the GitHub API and reports the
// caller's remaining request quota.
//
// Client implements [license.Enricher] and [license.RateLimiter].
type Client struct {
	*integrations.Client
	Logger  *log.Logger
	baseURL string
	keyer   cache.Keyer
}

var (
	_ license.Enricher    = (*Client)(nil)
	_ license.RateLimiter = (*Client)(nil)
)

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (60 per hour).
func NewClient(c cache.Cache, token string, ttl time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	keyer := cache.NewDefaultKeyer()
	if token != "" {
		headers["Authorization"] = "Bearer " + token
		keyer = cache.NewScopedKeyer(keyer, "token:"+cache.Hash([]byte(token))[:12]+":")
	}
	return &Client{
		Client:  integrations.NewClient(c, "github:", ttl, headers),
		Logger:  log.Default(),
		baseURL: APIURL,
		keyer:   keyer,
	}
}

// RateLimit returns the number of core API requests left for this client's
// credentials. It is never cached.
func (c *Client) RateLimit(ctx context.Context) (license.Budget, error) {
	var data rateLimitResponse
	if err := c.Get(ctx, c.baseURL+"/rate_limit", &data); err != nil {
		return 0, fmt.Errorf("github rate limit: %w", err)
	}
	return license.Budget(data.Resources.Core.Remaining), nil
}

// FetchLicense returns the detected license of owner/repo. The second return
// value is the number of API requests actually made (0 on a cache hit).
func (c *Client) FetchLicense(ctx context.Context, owner, repo string, refresh bool) (*RepoLicense, int, error) {
	return c.fetchLicense(ctx, owner, repo, refresh, cache.RetryAttempts)
}

// fetchLicense makes at most attempts requests (at least one) on a cache miss.
func (c *Client) fetchLicense(ctx context.Context, owner, repo string, refresh bool, attempts int) (*RepoLicense, int, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, 0, err
	}

	calls := 0
	var rl RepoLicense
	err := c.CachedUpTo(ctx, c.keyer.LicenseKey(owner, repo), refresh, attempts, &rl, func() error {
		calls++
		var data licenseResponse
		url := fmt.Sprintf("%s/repos/%s/%s/license", c.baseURL, owner, repo)
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: github license %s/%s", err, owner, repo)
			}
			return err
		}
		content, err := data.decode()
		if err != nil {
			return fmt.Errorf("decode license %s/%s: %w", owner, repo, err)
		}
		rl = RepoLicense{
			Key:     data.License.Key,
			Name:    data.License.Name,
			SPDXID:  data.License.SPDXID,
			URL:     data.HTMLURL,
			Content: content,
		}
		return nil
	})
	if err != nil {
		return nil, calls, err
	}
	return &rl, calls, nil
}

// Enrich fills SPDX id and license text for the licenses in set from the
// repository behind scm. Only GitHub repositories are looked up. Nothing is
// fetched once budget is exhausted; each request made costs one unit and
// retries stop when the budget runs out. A rate-limited answer exhausts the
// budget. Failures are logged and leave set unchanged.
func (c *Client) Enrich(ctx context.Context, uniqueID, scm string, set license.Set, budget license.Budget) license.Budget {
	if budget.Exhausted() || len(set) == 0 {
		return budget
	}
	owner, repo, ok := ExtractURL(scm)
	if !ok {
		return budget
	}

	rl, calls, err := c.fetchLicense(ctx, owner, repo, false, int(budget))
	budget = max(budget-license.Budget(calls), 0)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeRateLimited) {
			budget = 0
		}
		c.logger().Warn("license fetch failed", "library", uniqueID, "repo", owner+"/"+repo, "error", err)
		return budget
	}

	matched := 0
	for _, h := range set.Hashes() {
		l := set[h]
		if len(set) == 1 || rl.Matches(*l) {
			l.SPDXID = rl.SPDXID
			l.Content = rl.Content
			matched++
		}
	}
	c.logger().Debug("license enriched", "library", uniqueID, "spdx", rl.SPDXID, "matched", matched, "budget", budget)
	return budget
}

func (c *Client) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// ExtractURL finds a GitHub owner and repository in the first URL that
// points to github.com. SCM connection strings are accepted.
func ExtractURL(urls ...string) (owner, repo string, ok bool) {
	return integrations.ExtractRepoURL(repoURLPattern, urls...)
}

// Matches reports whether l declares the same license as the repository.
func (r RepoLicense) Matches(l license.License) bool {
	if r.SPDXID != "" && r.SPDXID != "NOASSERTION" {
		if strings.EqualFold(l.SPDXID, r.SPDXID) || strings.EqualFold(strings.TrimSpace(l.Name), r.SPDXID) {
			return true
		}
		if l.URL != "" && strings.Contains(strings.ToLower(l.URL), strings.ToLower(r.SPDXID)) {
			return true
		}
	}
	return r.Name != "" && strings.EqualFold(strings.TrimSpace(l.Name), r.Name)
}

func (d licenseResponse) decode() (string, error) {
	if d.Encoding != "" && d.Encoding != "base64" {
		return d.Content, nil
	}
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(d.Content)
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
