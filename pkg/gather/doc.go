// Package gather resolves library and license metadata for a list of
// dependency coordinates.
//
// # Overview
//
// A [Gatherer] walks the dependencies in input order. For each one it
// locates and parses the descriptor, fills missing fields from the parent
// descriptor, applies exclusion patterns, deduplicates licenses by content
// hash, optionally enriches them from a remote license service and finally
// normalizes names and descriptions. Operator overrides are merged last.
//
// # Usage
//
//	g, err := gather.New(gather.Options{
//	    Locator:    locate.Chain{locate.Maven{Root: m2}, locate.Gradle{Root: gradleCache}},
//	    Exclusions: []string{`com\.example:.*`},
//	})
//	if err != nil {
//	    return err
//	}
//	report, err := g.Gather(ctx, deps)
//
// # Failure Policy
//
// Each dependency produces an [Outcome]: resolved, skipped or failed. A
// descriptor that cannot be located is skipped; one that cannot be read or
// parsed fails. Neither stops the run. Only invalid options, a failed rate
// limit probe and unreadable overrides abort [Gatherer.Gather].
//
// # Remote Budget
//
// With remote license fetching enabled, the budget reported by the
// [license.RateLimiter] is passed through every [license.Enricher] call and
// the returned value feeds the next one. Dependencies are processed strictly
// one after another; the budget is never shared between goroutines.
package gather
