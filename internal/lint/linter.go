// Package lint implements the entry-point lint pass: a set of
// independent checks over one package manifest and its virtual file
// tree, fanned out concurrently and joined into a single diagnostics
// snapshot. The manifest is immutable for the duration of a pass and
// every check appends to the shared sink only, so tasks never observe
// each other's partial output.
package lint

import (
	"context"
	"runtime"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/report"
	"github.com/packlint/packlint/internal/utils"
)

// Options configure one lint pass
type Options struct {
	// FS is the virtual file tree rooted at the package directory
	FS domain.FileSystem
	// Level is the minimum severity to report
	Level domain.Severity
	// Strict escalates every warning to an error after all checks finish
	Strict bool
	// PackList, when non-nil, restricts resolution to files that would
	// actually be published
	PackList []string
	// Workers bounds the concurrent checks; defaults to NumCPU
	Workers int
	Logger  *utils.Logger
}

// Result is the sole output of a pass: the finalized diagnostics plus
// the parsed manifest, returned for caller convenience
type Result struct {
	Diagnostics []domain.Diagnostic
	Manifest    *manifest.Manifest
}

// Linter runs the checks of one pass
type Linter struct {
	fs       domain.FileSystem
	log      *utils.Logger
	sink     *report.Sink
	packList []string
	level    domain.Severity
	strict   bool
	workers  int

	pkg         *manifest.Manifest
	exportsVal  *manifest.Value
	exportsPath domain.Path
	browserObj  *manifest.Value
}

// New creates a linter for the given options
func New(opts Options) *Linter {
	log := opts.Logger
	if log == nil {
		log = utils.NopLogger()
	}
	level := opts.Level
	if level == "" {
		level = domain.SeveritySuggestion
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Linter{
		fs:       opts.FS,
		log:      log.WithComponent("lint"),
		sink:     report.NewSink(),
		packList: opts.PackList,
		level:    level,
		strict:   opts.Strict,
		workers:  workers,
	}
}

type check struct {
	name string
	fn   func(context.Context)
}

// Run executes the pass. The only pass-fatal conditions are a missing
// or unparseable root manifest and context cancellation; every other
// failure is reported as a diagnostic against its own field without
// aborting sibling checks.
func (l *Linter) Run(ctx context.Context) (*Result, error) {
	pkg, err := manifest.Load(l.fs)
	if err != nil {
		return nil, err
	}
	l.pkg = pkg
	l.exportsVal, l.exportsPath = pkg.PublishedField("exports")
	if b, _ := pkg.PublishedField("browser"); b.IsObject() {
		l.browserObj = b
	}
	l.log = l.log.WithPackage(pkg.Name())

	checks := []check{
		{"main", l.checkMain},
		{"module", l.checkModule},
		{"type", l.checkType},
		{"jsnext", l.checkJSNext},
		{"browser", l.checkBrowser},
		{"bin", l.checkBin},
		{"repository", l.checkRepository},
		{"metadata", l.checkMetadataFields},
		{"dependencies", l.checkDependencies},
		{"publish-config", l.checkPublishConfig},
		{"types-field", l.checkTypesField},
		{"exports", l.checkExports},
		{"imports", l.checkImports},
		{"types-exported", l.checkTypesExported},
	}

	utils.ParallelForEach(ctx, checks, l.workers, func(ctx context.Context, c check) error {
		l.log.WithCheck(c.name).Debug().Msg("Running check")
		c.fn(ctx)
		return nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diags := l.sink.Finalize(l.level, l.strict)
	l.log.Debug().Int("diagnostics", len(diags)).Msg("Pass complete")
	return &Result{Diagnostics: diags, Manifest: pkg}, nil
}

func (l *Linter) emit(code domain.Code, sev domain.Severity, p domain.Path, args map[string]any) {
	l.sink.Add(domain.Diagnostic{Code: code, Severity: sev, Path: p, Args: args})
}

func (l *Linter) error(code domain.Code, p domain.Path, args map[string]any) {
	l.emit(code, domain.SeverityError, p, args)
}

func (l *Linter) warn(code domain.Code, p domain.Path, args map[string]any) {
	l.emit(code, domain.SeverityWarning, p, args)
}

func (l *Linter) suggest(code domain.Code, p domain.Path, args map[string]any) {
	l.emit(code, domain.SeveritySuggestion, p, args)
}
