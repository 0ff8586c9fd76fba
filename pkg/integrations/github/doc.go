// Package github looks up repository licenses on the GitHub API.
//
// # Overview
//
// Descriptors usually only declare a license name and URL. When remote
// fetching is enabled, the gatherer hands each library's license set and SCM
// link to [Client.Enrich], which fetches the repository's detected license
// (GET /repos/{owner}/{repo}/license) and fills in the SPDX id and full text.
//
// # Usage
//
//	client := github.NewClient(store, os.Getenv("GITHUB_TOKEN"), 24*time.Hour)
//	budget, err := client.RateLimit(ctx)
//	if err != nil {
//	    return err
//	}
//	budget = client.Enrich(ctx, "com.squareup.okio:okio", "https://github.com/square/okio", set, budget)
//
// # Rate Limits
//
// Without a token the API allows 60 requests per hour, with a token 5000.
// [Client.RateLimit] reports what is left; [Client.Enrich] takes that value
// as a budget, spends one unit per request and returns the rest. Once the
// budget reaches zero no further requests are made. Cache hits are free.
//
// # Matching
//
// A single-license set is always enriched. Otherwise a license is enriched
// when its name, SPDX id or URL matches the repository's SPDX id, or its name
// equals the repository license name.
package github
