// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/diff"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options controls a single run of a patch file
type Options struct {
	// Config is the loaded patch file
	Config *config.Config
	// Documents overrides the patch file's documents, resolved against the
	// working directory
	Documents []string
	// Policy overrides the patch file's policy when set
	Policy patch.MatchPolicy
	// DryRun skips writing documents
	DryRun bool
	// Backup keeps a copy of every rewritten document
	Backup bool
	// Diff renders the change of every document
	Diff bool
	// DiffContext is the number of context lines around a change
	DiffContext int
}

// 📄 DocumentResult is the outcome of patching one document
type DocumentResult struct {
	// Path is the document's path on disk
	Path string
	// Report is nil when the document could not be read
	Report *patch.Report
	// Written is set when the document was rewritten
	Written bool
	// Diff holds the rendered change when Options.Diff is set
	Diff string
	// Err is a read or write failure; patch failures live in Report
	Err error
}

// Failed reports whether the document failed because of its patches.
func (r DocumentResult) Failed() bool {
	return r.Report != nil && r.Report.Err() != nil
}

// 🏃 Runner patches documents in parallel
type Runner struct {
	jobs int
}

// 🏗️ NewRunner creates a runner patching up to jobs documents at once.
// A non positive value uses the number of CPUs.
func NewRunner(jobs int) *Runner {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Runner{jobs: jobs}
}

// 🏃 Run applies the patch file to every document. Results are in document
// order. The returned error aggregates read and write failures only; patch
// failures are reported through each DocumentResult.
func (r *Runner) Run(ctx context.Context, opts Options) ([]DocumentResult, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}

	set, err := opts.Config.PatchSet()
	if err != nil {
		return nil, errors.Errorf("building patch set: %w", err)
	}

	policy := opts.Policy
	if policy == "" {
		policy = opts.Config.MatchPolicy()
	}

	baseDir, patterns := opts.Config.BaseDir(), opts.Config.Documents
	if len(opts.Documents) > 0 {
		baseDir, patterns = ".", opts.Documents
	}
	if len(patterns) == 0 {
		return nil, errors.Errorf("no documents to patch: %s declares none", opts.Config.Location())
	}

	paths, err := document.Resolve(ctx, baseDir, patterns)
	if err != nil {
		return nil, errors.Errorf("resolving documents: %w", err)
	}

	logger.Debug().
		Int("documents", len(paths)).
		Int("patches", set.Len()).
		Str("policy", policy.String()).
		Int("jobs", r.jobs).
		Msg("running patch file")

	engine := patch.NewEngine(policy)
	results := make([]DocumentResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runDocument(gctx, engine, set, baseDir, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, errors.Errorf("running documents: %w", err)
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}

	return results, nil
}

// 📝 runDocument reads, patches and writes a single document
func runDocument(ctx context.Context, engine patch.Applier, set *patch.Set, baseDir, path string, opts Options) DocumentResult {
	logger := zerolog.Ctx(ctx).With().Str("document", path).Logger()
	res := DocumentResult{Path: path}

	doc, err := document.Read(ctx, path)
	if err != nil {
		res.Err = errors.Errorf("%s: %w", path, err)
		return res
	}

	report, perr := engine.ApplyTo(displayPath(baseDir, path), doc.Content, set)
	res.Report = report

	if opts.Diff {
		res.Diff = diff.String(report.Path, report.Original, report.Content, opts.DiffContext)
	}

	switch {
	case perr != nil:
		logger.Debug().Err(perr).Msg("not writing document with failed patches")
		return res
	case opts.DryRun:
		logger.Debug().Bool("changed", report.Changed()).Msg("dry run, not writing document")
		return res
	}

	written, err := doc.Write(ctx, report.Content, document.WriteOptions{Backup: opts.Backup})
	if err != nil {
		res.Err = errors.Errorf("%s: %w", path, err)
		return res
	}
	res.Written = written

	return res
}

// displayPath is path relative to baseDir in slash form, the form patch
// file globs are written in.
func displayPath(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
