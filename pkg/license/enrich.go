package license

import "context"

// Budget is the number of remote lookups the license service still permits.
// It is a plain value threaded through sequential [Enricher.Enrich] calls;
// it must not be shared between goroutines.
type Budget int

// Exhausted reports whether no remote calls are left.
func (b Budget) Exhausted() bool { return b <= 0 }

// Enricher augments licenses with remotely fetched data.
//
// Enrich may mutate entries of set in place (e.g. fill Content) and returns
// the remaining budget. Implementations must return set unchanged and the
// budget as given once the budget is exhausted.
type Enricher interface {
	Enrich(ctx context.Context, uniqueID, scm string, set Set, budget Budget) Budget
}

// RateLimiter reports the initial remote budget.
type RateLimiter interface {
	RateLimit(ctx context.Context) (Budget, error)
}

// NopEnricher leaves licenses untouched. Used when remote fetching is off.
type NopEnricher struct{}

// Enrich returns budget unchanged.
func (NopEnricher) Enrich(_ context.Context, _, _ string, _ Set, budget Budget) Budget {
	return budget
}
