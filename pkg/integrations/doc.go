// Package integrations provides the HTTP plumbing shared by the remote
// collaborators of the gather core.
//
// # Overview
//
// Two remote services are consulted while gathering library metadata:
//
//   - [maven]: Maven-layout repositories, to download descriptors (POM files)
//     that are missing from the local repositories
//   - [github]: the GitHub REST API, to probe the rate limit and to fetch the
//     full license text of a library's source repository
//
// # Client Pattern
//
// Both clients embed [Client], which provides:
//   - Default headers (e.g. Authorization, Accept)
//   - Response caching through a [cache.Cache] with a namespace and TTL
//   - Retries with exponential backoff for transient failures
//
//	c := integrations.NewClient(store, "github:", 24*time.Hour, headers)
//	var out payload
//	err := c.Cached(ctx, key, false, &out, func() error {
//	    return c.Get(ctx, url, &out)
//	})
//
// # Errors
//
// [ErrNotFound] is returned for 404 responses, an [errors.RateLimitedError]
// for 403/429 responses that carry an exhausted rate limit, and [ErrNetwork]
// for everything else (401 additionally carries [errors.ErrCodeUnauthorized]). 5xx responses and transport failures are wrapped with
// [cache.Retryable] so [cache.RetryWithBackoff] retries them.
package integrations
