package gather

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/noticer/pkg/collected"
	"github.com/matzehuels/noticer/pkg/coord"
	"github.com/matzehuels/noticer/pkg/descriptor"
	"github.com/matzehuels/noticer/pkg/errors"
	"github.com/matzehuels/noticer/pkg/library"
	"github.com/matzehuels/noticer/pkg/license"
	"github.com/matzehuels/noticer/pkg/locate"
	"github.com/matzehuels/noticer/pkg/observability"
	"github.com/matzehuels/noticer/pkg/override"
)

// OverrideReader reads operator-supplied entries from an override directory.
type OverrideReader interface {
	ReadLicenses(dir string) ([]license.License, error)
	ReadLibraries(dir string) ([]library.Library, []license.License, error)
}

// Options configures a Gatherer. Only Locator is required.
type Options struct {
	Locator locate.Locator
	Parser  descriptor.Parser // default descriptor.POMParser

	// Exclusions are regular expressions matched against whole unique ids.
	Exclusions []string

	// FetchRemoteLicense enables license enrichment. Enricher and
	// RateLimiter are required when set.
	FetchRemoteLicense bool
	Enricher           license.Enricher
	RateLimiter        license.RateLimiter

	// Year resolves license years; default license.NoYear.
	Year license.YearResolver

	// OverrideDir is merged after all dependencies when non-empty.
	OverrideDir string
	Overrides   OverrideReader // default override.Reader

	Logger *log.Logger
}

// Gatherer resolves dependency metadata. A Gatherer holds no per-run state
// and may be reused, but a single Gather call is strictly sequential.
type Gatherer struct {
	opts       Options
	exclusions []*regexp.Regexp
	logger     *log.Logger
}

// New validates opts and compiles exclusion patterns.
func New(opts Options) (*Gatherer, error) {
	if opts.Locator == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "locator is required")
	}
	if opts.FetchRemoteLicense && (opts.Enricher == nil || opts.RateLimiter == nil) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "remote license fetching needs an enricher and a rate limiter")
	}
	exclusions, err := CompileExclusions(opts.Exclusions)
	if err != nil {
		return nil, err
	}
	if opts.Parser == nil {
		opts.Parser = descriptor.POMParser{}
	}
	if opts.Year == nil {
		opts.Year = license.NoYear
	}
	if opts.Overrides == nil {
		opts.Overrides = override.Reader{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Gatherer{opts: opts, exclusions: exclusions, logger: opts.Logger}, nil
}

// run is the state of one Gather call.
type run struct {
	id      string
	handled map[string]struct{}
	budget  license.Budget
	logger  *log.Logger
}

// Gather resolves deps in order and merges overrides.
//
// Per-dependency problems never fail the run; they are reported as skipped
// or failed outcomes. An error is returned only when the remote budget
// cannot be established, the context is cancelled, or the overrides cannot
// be read.
func (g *Gatherer) Gather(ctx context.Context, deps collected.Dependencies) (report *Report, err error) {
	id := uuid.NewString()
	r := &run{
		id:      id,
		handled: make(map[string]struct{}),
		logger:  g.logger.With("run", id[:8]),
	}
	start := time.Now()
	hooks := observability.Gather()
	hooks.OnRunStart(ctx, r.id, len(deps))
	defer func() {
		libs, lics := 0, 0
		if report != nil {
			libs, lics = len(report.Result.Libraries), len(report.Result.Licenses)
		}
		hooks.OnRunComplete(ctx, r.id, libs, lics, time.Since(start), err)
	}()

	if g.opts.FetchRemoteLicense {
		b, err := g.opts.RateLimiter.RateLimit(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "determine remote license budget")
		}
		r.budget = b
		r.logger.Debug("remote license fetching enabled", "budget", b)
	}
	r.logger.Info("gathering dependencies", "count", len(deps))

	outcomes := make([]Outcome, 0, len(deps))
	for _, entry := range deps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, g.dependency(ctx, r, entry))
	}

	report = &Report{RunID: r.id, Result: library.NewResult(), Outcomes: outcomes}
	for _, o := range outcomes {
		report.Stats.count(o)
		switch o.Status {
		case Resolved:
			report.Result.Add(o.Library, o.Licenses...)
		case Failed:
			r.logger.Error("failed to resolve dependency", "coordinate", o.Coordinate.String(), "error", o.Err)
		}
	}

	if g.opts.OverrideDir != "" {
		n, err := g.mergeOverrides(r, report.Result)
		if err != nil {
			return nil, err
		}
		report.Stats.Overrides = n
	}
	if g.opts.FetchRemoteLicense {
		b := r.budget
		report.Budget = &b
	}

	r.logger.Info("gathered dependencies",
		"libraries", len(report.Result.Libraries),
		"licenses", len(report.Result.Licenses),
		"skipped", report.Stats.Skipped,
		"failed", report.Stats.Failed,
		"duration", time.Since(start).Round(time.Millisecond))
	return report, nil
}

// dependency produces the outcome of one input entry, firing hooks around it.
func (g *Gatherer) dependency(ctx context.Context, r *run, entry collected.Entry) Outcome {
	hooks := observability.Gather()
	hooks.OnDependencyStart(ctx, entry.UniqueID)
	start := time.Now()

	o := g.resolveSafe(ctx, r, entry)

	hooks.OnDependencyComplete(ctx, entry.UniqueID, o.Status.String(), time.Since(start), o.Err)
	if o.Status == Skipped {
		r.logger.Debug("skipped dependency", "id", entry.UniqueID, "reason", o.Reason)
	}
	return o
}

// resolveSafe turns a panic while resolving into a failed outcome.
func (g *Gatherer) resolveSafe(ctx context.Context, r *run, entry collected.Entry) (o Outcome) {
	c, ok := entry.Coordinate()
	if !ok {
		return skipped(c, entry.UniqueID, "no resolved version")
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("panic while resolving", "id", entry.UniqueID, "stack", string(debug.Stack()))
			o = failed(c, entry.UniqueID, errors.New(errors.ErrCodeInternal, "panic: %v", p))
		}
	}()
	return g.resolve(ctx, r, c)
}

func (g *Gatherer) resolve(ctx context.Context, r *run, c coord.Coordinate) Outcome {
	path, err := g.opts.Locator.Locate(ctx, c)
	if err != nil {
		if !locate.IsNotFound(err) {
			return failed(c, c.UniqueID(), fmt.Errorf("locate descriptor: %w", err))
		}
		r.logger.Debug("descriptor not found", "coordinate", c.String(), "error", err)
		return skipped(c, c.UniqueID(), "descriptor not found")
	}

	rec, err := g.read(r, path)
	if err != nil {
		return failed(c, c.UniqueID(), err)
	}

	own := rec.Coordinate()
	if own.Group == "" {
		own.Group = c.Group
	}
	if own.Artifact == "" {
		own.Artifact = c.Artifact
	}
	id := own.UniqueID()

	if Excluded(id, g.exclusions) {
		return skipped(c, id, "matches exclusion pattern")
	}
	if selfIDs[id] {
		return skipped(c, id, "own artifact")
	}
	if _, ok := r.handled[id]; ok {
		return skipped(c, id, "already handled")
	}
	r.handled[id] = struct{}{}

	l := lineage{id: id, own: rec, parent: g.parent(ctx, r, id, rec), logger: r.logger}

	name := NormalizeName(chooseString(l, "name", func(d *descriptor.Record) string { return d.Name }))
	desc := NormalizeDescription(chooseString(l, "description", func(d *descriptor.Record) string { return d.Description }))
	version := chooseString(l, "version", func(d *descriptor.Record) string { return d.Version })
	if version == "" {
		r.logger.Info("failed to identify version", "id", id)
	}
	website := chooseString(l, "homePage", func(d *descriptor.Record) string { return d.HomePage })
	rawLicenses := chooseSlice(l, "licenses", func(d *descriptor.Record) []descriptor.RawLicense { return d.Licenses })
	scm := choosePtr(l, "scm", func(d *descriptor.Record) *descriptor.SCM { return d.SCM })

	set := license.NewSet()
	for _, raw := range rawLicenses {
		lic := license.New(raw.Name, raw.URL, g.opts.Year(id, raw.URL))
		if lic.Name == "" && lic.URL == "" {
			continue
		}
		set.Add(lic)
	}
	if g.opts.FetchRemoteLicense && len(set) > 0 {
		r.budget = g.opts.Enricher.Enrich(ctx, id, scm.Link(), set, r.budget)
		observability.Gather().OnBudget(ctx, int(r.budget))
	}

	if name == "" {
		r.logger.Info("no name found, using unique id", "id", id)
		name = id
	}

	developers := chooseSlice(l, "developers", func(d *descriptor.Record) []descriptor.Developer { return d.Developers })
	if developers == nil {
		developers = []descriptor.Developer{}
	}
	org := choosePtr(l, "organization", func(d *descriptor.Record) *descriptor.Organization { return d.Organization })

	lib := library.Library{
		UniqueID:        id,
		ArtifactVersion: version,
		Name:            name,
		Description:     desc,
		Website:         website,
		Developers:      developers,
		Organization:    org,
		SCM:             scm,
		Licenses:        set.Hashes(),
		ArtifactFolder:  filepath.Dir(filepath.Dir(path)),
	}
	r.logger.Debug("resolved library", "id", id, "version", version, "licenses", len(lib.Licenses))
	return Outcome{Coordinate: c, UniqueID: id, Status: Resolved, Library: lib, Licenses: set.Licenses()}
}

// read loads, repairs and parses the descriptor at path.
func (g *Gatherer) read(r *run, path string) (*descriptor.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read descriptor")
	}
	data, repaired := descriptor.Repair(data)
	if repaired {
		r.logger.Warn("descriptor has leading garbage, trimmed before parsing", "path", path)
	}
	rec, err := g.opts.Parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// parent loads the parent descriptor once. Any problem leaves the child
// without inheritance.
func (g *Gatherer) parent(ctx context.Context, r *run, id string, rec *descriptor.Record) *descriptor.Record {
	if !rec.HasParent() {
		return nil
	}
	p := *rec.Parent
	if !p.Complete() {
		r.logger.Info("parent reference incomplete, skipping inheritance", "id", id, "parent", p.String())
		return nil
	}
	path, err := g.opts.Locator.Locate(ctx, p)
	if err != nil {
		r.logger.Warn("parent descriptor not found", "id", id, "parent", p.String(), "error", err)
		return nil
	}
	parent, err := g.read(r, path)
	if err != nil {
		r.logger.Warn("parent descriptor unreadable", "id", id, "parent", p.String(), "error", err)
		return nil
	}
	return parent
}

// mergeOverrides upserts override licenses and appends override libraries.
// Inline library licenses are upserted first so that an entry in licenses/
// with the same hash wins. Libraries are appended even if the unique id was
// already resolved.
func (g *Gatherer) mergeOverrides(r *run, res *library.Result) (int, error) {
	dir := g.opts.OverrideDir
	lics, err := g.opts.Overrides.ReadLicenses(dir)
	if err != nil {
		return 0, err
	}
	libs, inline, err := g.opts.Overrides.ReadLibraries(dir)
	if err != nil {
		return 0, err
	}
	res.PutLicenses(inline...)
	res.PutLicenses(lics...)

	for _, lib := range libs {
		lib.Licenses = known(r, lib, res.Licenses)
		res.Add(lib)
		r.logger.Debug("added override library", "id", lib.UniqueID)
	}
	r.logger.Info("merged overrides", "dir", dir, "licenses", len(lics), "libraries", len(libs))
	return len(libs), nil
}

// known drops license references that resolve to nothing.
func known(r *run, lib library.Library, licenses map[string]license.License) []string {
	out := make([]string, 0, len(lib.Licenses))
	for _, h := range lib.Licenses {
		if _, ok := licenses[h]; ok {
			out = append(out, h)
			continue
		}
		r.logger.Warn("override references unknown license", "id", lib.UniqueID, "hash", h)
	}
	return out
}
