package gather

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/noticer/pkg/collected"
	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/license"
	"github.com/matzehuels/noticer/pkg/locate"
	"github.com/matzehuels/noticer/pkg/observability"
)

// repo is a throwaway local Maven repository.
type repo struct {
	t    *testing.T
	root string
}

func newRepo(t *testing.T) *repo {
	return &repo{t: t, root: t.TempDir()}
}

func (r *repo) put(c coord.Coordinate, pom string) {
	r.t.Helper()
	path := filepath.Join(r.root, filepath.FromSlash(c.GroupPath()), c.Artifact, c.Version, c.DescriptorName())
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(pom), 0o644))
}

// pom builds a minimal descriptor. extra is inserted verbatim into <project>.
func pom(group, artifact, version, extra string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project>
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
  %s
</project>`, group, artifact, version, extra)
}

func licensesXML(pairs ...string) string {
	var b strings.Builder
	b.WriteString("<licenses>")
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "<license><name>%s</name><url>%s</url></license>", pairs[i], pairs[i+1])
	}
	b.WriteString("</licenses>")
	return b.String()
}

const (
	apacheName = "The Apache Software License, Version 2.0"
	apacheURL  = "https://www.apache.org/licenses/LICENSE-2.0.txt"
)

func deps(coords ...coord.Coordinate) collected.Dependencies {
	out := make(collected.Dependencies, len(coords))
	for i, c := range coords {
		out[i] = collected.Entry{UniqueID: c.UniqueID(), Versions: []string{c.Version}}
	}
	return out
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newGatherer(t *testing.T, r *repo, mutate func(*Options)) *Gatherer {
	t.Helper()
	opts := Options{Locator: locate.Maven{Root: r.root}, Logger: quietLogger()}
	if mutate != nil {
		mutate(&opts)
	}
	g, err := New(opts)
	require.NoError(t, err)
	return g
}

func TestGatherResolvesLibrary(t *testing.T) {
	r := newRepo(t)
	okio := coord.New("com.squareup.okio", "okio", "3.6.0")
	r.put(okio, pom("com.squareup.okio", "okio", "3.6.0", `
  <name>Okio</name>
  <description>A modern I/O library</description>
  <url>https://github.com/square/okio</url>
  `+licensesXML(apacheName, apacheURL)+`
  <developers><developer><name>Square, Inc.</name><organizationUrl>https://squareup.com</organizationUrl></developer></developers>
  <organization><name>Square</name><url>https://squareup.com</url></organization>
  <scm><url>https://github.com/square/okio/</url></scm>`))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(okio))
	require.NoError(t, err)

	require.Len(t, report.Result.Libraries, 1)
	lib := report.Result.Libraries[0]
	assert.Equal(t, "com.squareup.okio:okio", lib.UniqueID)
	assert.Equal(t, "3.6.0", lib.ArtifactVersion)
	assert.Equal(t, "Okio", lib.Name)
	assert.Equal(t, "A modern I/O library", lib.Description)
	assert.Equal(t, "https://github.com/square/okio", lib.Website)
	assert.Equal(t, "Square, Inc.", lib.Developers[0].Name)
	assert.Equal(t, "Square", lib.Organization.Name)
	assert.Equal(t, "https://github.com/square/okio/", lib.SCM.URL)
	assert.Equal(t, filepath.Join(r.root, "com", "squareup", "okio", "okio"), lib.ArtifactFolder)

	want := license.New(apacheName, apacheURL, "")
	assert.Equal(t, []string{want.Hash()}, lib.Licenses)
	assert.Equal(t, want, report.Result.Licenses[want.Hash()])
	assert.Equal(t, Stats{Resolved: 1}, report.Stats)
	assert.Nil(t, report.Budget)
	assert.NotEmpty(t, report.RunID)
}

func TestExclusionIsWholeStringMatch(t *testing.T) {
	r := newRepo(t)
	bar := coord.New("com.foo", "bar", "1.0")
	baz := coord.New("com.foo.bar", "baz", "1.0")
	r.put(bar, pom("com.foo", "bar", "1.0", "<name>Bar</name>"))
	r.put(baz, pom("com.foo.bar", "baz", "1.0", "<name>Baz</name>"))

	g := newGatherer(t, r, func(o *Options) { o.Exclusions = []string{`com\.foo:.*`} })
	report, err := g.Gather(context.Background(), deps(bar, baz))
	require.NoError(t, err)

	assert.Empty(t, report.Result.Find("com.foo:bar"))
	assert.Len(t, report.Result.Find("com.foo.bar:baz"), 1)
	assert.Equal(t, Skipped, report.Outcomes[0].Status)
	assert.Equal(t, "matches exclusion pattern", report.Outcomes[0].Reason)
}

func TestDuplicateUniqueIDProcessedOnce(t *testing.T) {
	r := newRepo(t)
	v1 := coord.New("org.example", "lib", "1.0")
	r.put(v1, pom("org.example", "lib", "1.0", "<name>Lib</name>"))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(v1, v1))
	require.NoError(t, err)

	assert.Len(t, report.Result.Find("org.example:lib"), 1)
	assert.Equal(t, "already handled", report.Outcomes[1].Reason)
	assert.Equal(t, Stats{Resolved: 1, Skipped: 1}, report.Stats)
}

func TestSelfIDsSkipped(t *testing.T) {
	r := newRepo(t)
	self := coord.New("com.mikepenz", "aboutlibraries", "10.0.0")
	defs := coord.New("com.mikepenz", "aboutlibraries-definitions", "10.0.0")
	r.put(self, pom("com.mikepenz", "aboutlibraries", "10.0.0", ""))
	r.put(defs, pom("com.mikepenz", "aboutlibraries-definitions", "10.0.0", ""))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(self, defs))
	require.NoError(t, err)
	assert.Empty(t, report.Result.Libraries)
	assert.Equal(t, 2, report.Stats.Skipped)
}

func TestParentInheritance(t *testing.T) {
	r := newRepo(t)
	parent := coord.New("org.example", "parent", "5")
	child := coord.New("org.example", "child", "1.0")
	r.put(parent, pom("org.example", "parent", "5", `
  <name>Parent Lib</name>
  <url>https://example.org</url>
  `+licensesXML("MIT", "https://opensource.org/licenses/MIT")+`
  <organization><name>Example</name></organization>`))
	r.put(child, `<project>
  <parent><groupId>org.example</groupId><artifactId>parent</artifactId><version>5</version></parent>
  <artifactId>child</artifactId>
  <version>1.0</version>
  <description>Child only</description>
</project>`)

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(child))
	require.NoError(t, err)
	require.Len(t, report.Result.Libraries, 1)

	lib := report.Result.Libraries[0]
	assert.Equal(t, "org.example:child", lib.UniqueID, "groupId comes from <parent>")
	assert.Equal(t, "Parent Lib", lib.Name)
	assert.Equal(t, "Child only", lib.Description)
	assert.Equal(t, "https://example.org", lib.Website)
	assert.Equal(t, "Example", lib.Organization.Name)
	assert.Equal(t, "1.0", lib.ArtifactVersion)
	assert.Equal(t, []string{license.New("MIT", "https://opensource.org/licenses/MIT", "").Hash()}, lib.Licenses)
}

func TestOwnValuesWinOverParent(t *testing.T) {
	r := newRepo(t)
	parent := coord.New("org.example", "parent", "5")
	child := coord.New("org.example", "child", "1.0")
	r.put(parent, pom("org.example", "parent", "5", "<name>Parent Lib</name>"+licensesXML("MIT", "")))
	r.put(child, pom("org.example", "child", "1.0", `
  <parent><groupId>org.example</groupId><artifactId>parent</artifactId><version>5</version></parent>
  <name>Child Lib</name>`+licensesXML("Apache-2.0", "")))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(child))
	require.NoError(t, err)

	lib := report.Result.Libraries[0]
	assert.Equal(t, "Child Lib", lib.Name)
	assert.Equal(t, []string{license.New("Apache-2.0", "", "").Hash()}, lib.Licenses)
}

func TestParentProblemsSkipInheritance(t *testing.T) {
	tests := []struct {
		name   string
		parent string // parent element of the child
		setup  func(r *repo)
	}{
		{
			name:   "incomplete reference",
			parent: "<parent><groupId>org.example</groupId><artifactId>parent</artifactId></parent>",
		},
		{
			name:   "not locatable",
			parent: "<parent><groupId>org.example</groupId><artifactId>gone</artifactId><version>1</version></parent>",
		},
		{
			name:   "unparsable",
			parent: "<parent><groupId>org.example</groupId><artifactId>broken</artifactId><version>1</version></parent>",
			setup: func(r *repo) {
				r.put(coord.New("org.example", "broken", "1"), "this is not xml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepo(t)
			if tt.setup != nil {
				tt.setup(r)
			}
			child := coord.New("org.example", "child", "1.0")
			r.put(child, pom("org.example", "child", "1.0", tt.parent))

			report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(child))
			require.NoError(t, err)
			require.Len(t, report.Result.Libraries, 1)

			lib := report.Result.Libraries[0]
			assert.Equal(t, "org.example:child", lib.Name, "blank name falls back to unique id")
			assert.Empty(t, lib.Licenses)
		})
	}
}

func TestNormalization(t *testing.T) {
	r := newRepo(t)
	v4 := coord.New("com.android.support", "support-v4", "28.0.0")
	r.put(v4, pom("com.android.support", "support-v4", "28.0.0",
		"<name>Android Support Library v4</name><description>null</description>"))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(v4))
	require.NoError(t, err)

	lib := report.Result.Libraries[0]
	assert.Equal(t, "Support v4", lib.Name)
	assert.Equal(t, "", lib.Description)
}

func TestLicensesCollapseByContent(t *testing.T) {
	r := newRepo(t)
	a := coord.New("org.example", "a", "1")
	b := coord.New("org.example", "b", "1")
	r.put(a, pom("org.example", "a", "1", licensesXML(apacheName, apacheURL)))
	r.put(b, pom("org.example", "b", "1", licensesXML(" "+apacheName+" ", apacheURL, apacheName, apacheURL)))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(a, b))
	require.NoError(t, err)

	assert.Len(t, report.Result.Licenses, 1)
	assert.Equal(t, report.Result.Libraries[0].Licenses, report.Result.Libraries[1].Licenses)
	assert.Len(t, report.Result.Libraries[1].Licenses, 1)
}

func TestBadDescriptorIsIsolated(t *testing.T) {
	r := newRepo(t)
	good1 := coord.New("org.example", "good1", "1")
	bad := coord.New("org.example", "bad", "1")
	good2 := coord.New("org.example", "good2", "1")
	r.put(good1, pom("org.example", "good1", "1", "<name>Good 1</name>"))
	r.put(bad, "garbage without any markup")
	r.put(good2, pom("org.example", "good2", "1", "<name>Good 2</name>"))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(good1, bad, good2))
	require.NoError(t, err)

	assert.Len(t, report.Result.Libraries, 2)
	assert.Equal(t, Stats{Resolved: 2, Failed: 1}, report.Stats)

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, bad, failures[0].Coordinate)
	assert.True(t, errors.Is(failures[0].Err, errors.ErrCodeInvalidDescriptor))
}

func TestLeadingGarbageIsRepaired(t *testing.T) {
	r := newRepo(t)
	c := coord.New("org.example", "bom", "1")
	r.put(c, "\uFEFF  "+pom("org.example", "bom", "1", "<name>With BOM</name>"))

	report, err := newGatherer(t, r, nil).Gather(context.Background(), deps(c))
	require.NoError(t, err)
	require.Len(t, report.Result.Libraries, 1)
	assert.Equal(t, "With BOM", report.Result.Libraries[0].Name)
}

func TestMissingDescriptorAndVersionAreSkipped(t *testing.T) {
	r := newRepo(t)
	in := collected.Dependencies{
		{UniqueID: "org.example:missing", Versions: []string{"1"}},
		{UniqueID: "org.example:noversion"},
	}

	report, err := newGatherer(t, r, nil).Gather(context.Background(), in)
	require.NoError(t, err)

	assert.Empty(t, report.Result.Libraries)
	assert.Equal(t, Stats{Skipped: 2}, report.Stats)
	assert.Equal(t, "descriptor not found", report.Outcomes[0].Reason)
	assert.Equal(t, "no resolved version", report.Outcomes[1].Reason)
}

func TestLocatorFailureIsFailedOutcome(t *testing.T) {
	r := newRepo(t)
	okio := coord.New("com.squareup.okio", "okio", "3.6.0")
	missing := coord.New("org.example", "missing", "1")
	r.put(okio, pom("com.squareup.okio", "okio", "3.6.0", "<name>Okio</name>"))

	unreachable := locate.Func(func(_ context.Context, c coord.Coordinate) (string, error) {
		if c.Artifact == "okio" {
			return "", fmt.Errorf("network error: connection refused")
		}
		return "", fmt.Errorf("%w: %s", locate.ErrNotFound, c)
	})
	g := newGatherer(t, r, func(o *Options) {
		o.Locator = locate.Chain{unreachable, locate.Maven{Root: filepath.Join(r.root, "empty")}}
	})

	report, err := g.Gather(context.Background(), deps(okio, missing))
	require.NoError(t, err)

	assert.Equal(t, Stats{Failed: 1, Skipped: 1}, report.Stats)
	assert.Equal(t, Failed, report.Outcomes[0].Status)
	assert.Contains(t, report.Outcomes[0].Err.Error(), "connection refused")
	assert.Equal(t, Skipped, report.Outcomes[1].Status)
	assert.Equal(t, "descriptor not found", report.Outcomes[1].Reason)
}

func TestInvalidCoordinateFails(t *testing.T) {
	r := newRepo(t)
	in := collected.Dependencies{{UniqueID: "com..evil:lib", Versions: []string{"1.0"}}}

	report, err := newGatherer(t, r, nil).Gather(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.Failures(), 1)
	assert.True(t, errors.Is(report.Failures()[0].Err, errors.ErrCodeInvalidCoordinate))
}

// budgetEnricher spends one unit per call while budget remains.
type budgetEnricher struct {
	seen []license.Budget
	ids  []string
}

func (e *budgetEnricher) Enrich(_ context.Context, id, _ string, set license.Set, b license.Budget) license.Budget {
	e.seen = append(e.seen, b)
	e.ids = append(e.ids, id)
	if b.Exhausted() {
		return b
	}
	for _, l := range set {
		l.Content = "text for " + id
	}
	return b - 1
}

type fixedLimit struct {
	budget license.Budget
	err    error
	calls  int
}

func (f *fixedLimit) RateLimit(context.Context) (license.Budget, error) {
	f.calls++
	return f.budget, f.err
}

func TestBudgetIsThreaded(t *testing.T) {
	r := newRepo(t)
	var in []coord.Coordinate
	for _, a := range []string{"a", "b", "c"} {
		c := coord.New("org.example", a, "1")
		r.put(c, pom("org.example", a, "1", licensesXML("License "+a, "")))
		in = append(in, c)
	}
	noLicense := coord.New("org.example", "plain", "1")
	r.put(noLicense, pom("org.example", "plain", "1", ""))
	in = append(in, noLicense)

	enricher := &budgetEnricher{}
	limit := &fixedLimit{budget: 2}
	g := newGatherer(t, r, func(o *Options) {
		o.FetchRemoteLicense = true
		o.Enricher = enricher
		o.RateLimiter = limit
	})

	report, err := g.Gather(context.Background(), deps(in...))
	require.NoError(t, err)

	assert.Equal(t, 1, limit.calls)
	assert.Equal(t, []license.Budget{2, 1, 0}, enricher.seen, "library without licenses is not enriched")
	require.NotNil(t, report.Budget)
	assert.Equal(t, license.Budget(0), *report.Budget)

	enriched := 0
	for _, l := range report.Result.Licenses {
		if l.Content != "" {
			enriched++
		}
	}
	assert.Equal(t, 2, enriched)
}

func TestRemoteFetchDisabledNeverProbes(t *testing.T) {
	r := newRepo(t)
	c := coord.New("org.example", "a", "1")
	r.put(c, pom("org.example", "a", "1", licensesXML("MIT", "")))

	enricher := &budgetEnricher{}
	limit := &fixedLimit{budget: 10}
	g := newGatherer(t, r, func(o *Options) {
		o.Enricher = enricher
		o.RateLimiter = limit
	})

	_, err := g.Gather(context.Background(), deps(c))
	require.NoError(t, err)
	assert.Zero(t, limit.calls)
	assert.Empty(t, enricher.seen)
}

func TestRateLimitProbeFailureIsFatal(t *testing.T) {
	r := newRepo(t)
	g := newGatherer(t, r, func(o *Options) {
		o.FetchRemoteLicense = true
		o.Enricher = &budgetEnricher{}
		o.RateLimiter = &fixedLimit{err: fmt.Errorf("connection refused")}
	})

	_, err := g.Gather(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNetwork))
}

type panicEnricher struct{}

func (panicEnricher) Enrich(_ context.Context, id, _ string, _ license.Set, b license.Budget) license.Budget {
	if id == "org.example:boom" {
		panic("enricher exploded")
	}
	return b
}

func TestPanicBecomesFailedOutcome(t *testing.T) {
	r := newRepo(t)
	boom := coord.New("org.example", "boom", "1")
	fine := coord.New("org.example", "fine", "1")
	r.put(boom, pom("org.example", "boom", "1", licensesXML("MIT", "")))
	r.put(fine, pom("org.example", "fine", "1", licensesXML("MIT", "")))

	g := newGatherer(t, r, func(o *Options) {
		o.FetchRemoteLicense = true
		o.Enricher = panicEnricher{}
		o.RateLimiter = &fixedLimit{budget: 5}
	})

	report, err := g.Gather(context.Background(), deps(boom, fine))
	require.NoError(t, err)
	assert.Equal(t, Stats{Resolved: 1, Failed: 1}, report.Stats)
	assert.True(t, errors.Is(report.Failures()[0].Err, errors.ErrCodeInternal))
	assert.Len(t, report.Result.Find("org.example:fine"), 1)
}

func TestYearResolver(t *testing.T) {
	r := newRepo(t)
	c := coord.New("org.example", "a", "1")
	r.put(c, pom("org.example", "a", "1", licensesXML("MIT", "https://opensource.org/licenses/MIT")))

	g := newGatherer(t, r, func(o *Options) {
		o.Year = func(id, url string) string { return "2024" }
	})
	report, err := g.Gather(context.Background(), deps(c))
	require.NoError(t, err)

	want := license.New("MIT", "https://opensource.org/licenses/MIT", "2024")
	assert.Equal(t, []string{want.Hash()}, report.Result.Libraries[0].Licenses)
	assert.Equal(t, "2024", report.Result.Licenses[want.Hash()].Year)
}

func writeOverride(t *testing.T, dir, sub, name, content string) {
	t.Helper()
	path := filepath.Join(dir, sub, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOverridesMerge(t *testing.T) {
	r := newRepo(t)
	okio := coord.New("com.squareup.okio", "okio", "3.6.0")
	r.put(okio, pom("com.squareup.okio", "okio", "3.6.0", "<name>Okio</name>"+licensesXML("MIT", "https://opensource.org/licenses/MIT")))

	mit := license.New("MIT", "https://opensource.org/licenses/MIT", "")
	dir := t.TempDir()
	writeOverride(t, dir, "licenses", "mit.yaml", "name: MIT\nurl: https://opensource.org/licenses/MIT\ncontent: Permission is hereby granted\n")
	writeOverride(t, dir, "libraries", "okio.yaml", `
uniqueId: com.squareup.okio:okio
name: Okio (patched)
licenses:
  - `+mit.Hash()+`
  - 0000000000000000000000000000000000000000000000000000000000000000
`)
	writeOverride(t, dir, "libraries", "internal.json", `{"uniqueId": "com.example:internal", "licenses": [{"name": "Proprietary"}]}`)

	g := newGatherer(t, r, func(o *Options) { o.OverrideDir = dir })
	report, err := g.Gather(context.Background(), deps(okio))
	require.NoError(t, err)

	// Override license replaces the resolved one with the same hash.
	assert.Equal(t, "Permission is hereby granted\n", report.Result.Licenses[mit.Hash()].Content)

	// Override library is appended, not merged.
	okios := report.Result.Find("com.squareup.okio:okio")
	require.Len(t, okios, 2)
	assert.Equal(t, "Okio", okios[0].Name)
	assert.Equal(t, "Okio (patched)", okios[1].Name)
	assert.Equal(t, []string{mit.Hash()}, okios[1].Licenses, "unknown hash is dropped")

	internal := report.Result.Find("com.example:internal")
	require.Len(t, internal, 1)
	proprietary := license.New("Proprietary", "", "")
	assert.Equal(t, []string{proprietary.Hash()}, internal[0].Licenses)

	assert.Empty(t, report.Result.Dangling())
	assert.Equal(t, 2, report.Stats.Overrides)
}

func TestInlineOverrideLicenseReplacesResolved(t *testing.T) {
	r := newRepo(t)
	okio := coord.New("com.squareup.okio", "okio", "3.6.0")
	guava := coord.New("com.google.guava", "guava", "32.1.3-jre")
	r.put(okio, pom("com.squareup.okio", "okio", "3.6.0", "<name>Okio</name>"+licensesXML(apacheName, apacheURL)))
	r.put(guava, pom("com.google.guava", "guava", "32.1.3-jre", "<name>Guava</name>"+licensesXML("MIT", "https://opensource.org/licenses/MIT")))

	apache := license.New(apacheName, apacheURL, "")
	mit := license.New("MIT", "https://opensource.org/licenses/MIT", "")
	dir := t.TempDir()
	writeOverride(t, dir, "libraries", "okio.yaml", `
uniqueId: com.squareup.okio:okio
licenses:
  - name: `+apacheName+`
    url: `+apacheURL+`
    spdxId: Apache-2.0
    content: Apache License text
`)
	writeOverride(t, dir, "libraries", "guava.yaml", `
uniqueId: com.google.guava:guava
licenses:
  - name: MIT
    url: https://opensource.org/licenses/MIT
    content: inline text
`)
	writeOverride(t, dir, "licenses", "mit.yaml", "name: MIT\nurl: https://opensource.org/licenses/MIT\ncontent: file text\n")

	g := newGatherer(t, r, func(o *Options) { o.OverrideDir = dir })
	report, err := g.Gather(context.Background(), deps(okio, guava))
	require.NoError(t, err)

	assert.Equal(t, "Apache License text", report.Result.Licenses[apache.Hash()].Content)
	assert.Equal(t, "Apache-2.0", report.Result.Licenses[apache.Hash()].SPDXID)
	assert.Equal(t, "file text", report.Result.Licenses[mit.Hash()].Content, "licenses/ entry wins over inline")
	assert.Len(t, report.Result.Licenses, 2)
}

func TestMalformedOverrideFailsRun(t *testing.T) {
	r := newRepo(t)
	dir := t.TempDir()
	writeOverride(t, dir, "libraries", "bad.yaml", "name: [unclosed")

	g := newGatherer(t, r, func(o *Options) { o.OverrideDir = dir })
	_, err := g.Gather(context.Background(), nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidOverride))
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = New(Options{Locator: locate.Maven{}, FetchRemoteLicense: true})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = New(Options{Locator: locate.Maven{}, Exclusions: []string{"("}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestCancelledContext(t *testing.T) {
	r := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGatherer(t, r, nil).Gather(ctx, deps(coord.New("a", "b", "1")))
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingHooks struct {
	observability.NoopGatherHooks
	mu       sync.Mutex
	statuses []string
	runs     int
}

func (h *recordingHooks) OnDependencyComplete(_ context.Context, id, status string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, id+"="+status)
}

func (h *recordingHooks) OnRunComplete(context.Context, string, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs++
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetGatherHooks(hooks)
	defer observability.Reset()

	r := newRepo(t)
	a := coord.New("org.example", "a", "1")
	r.put(a, pom("org.example", "a", "1", ""))

	_, err := newGatherer(t, r, nil).Gather(context.Background(), deps(a, coord.New("org.example", "missing", "1")))
	require.NoError(t, err)

	assert.Equal(t, []string{"org.example:a=resolved", "org.example:missing=skipped"}, hooks.statuses)
	assert.Equal(t, 1, hooks.runs)
}
