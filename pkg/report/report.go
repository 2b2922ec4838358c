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

// Package report turns patch run results into console output and an exit
// code.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// Exit codes of a run.
const (
	ExitOK           = 0
	ExitPatchFailure = 1
	ExitError        = 2
)

// 📊 Reporter writes run results through a log.Logger
type Reporter struct {
	logger *log.Logger
	dryRun bool
}

// 🏭 New creates a reporter. dryRun only changes how documents are labeled.
func New(logger *log.Logger, dryRun bool) *Reporter {
	return &Reporter{logger: logger, dryRun: dryRun}
}

// 📝 Report logs every document section followed by the summary table.
func (r *Reporter) Report(ctx context.Context, results []operation.DocumentResult) {
	if len(results) == 0 {
		return
	}
	for _, res := range results {
		r.Document(ctx, res)
	}
	r.logger.LogNewline()
	r.Summary(r.logger, results)
}

// 📄 Document logs one document's patches, its diff and any I/O error.
func (r *Reporter) Document(ctx context.Context, res operation.DocumentResult) {
	if res.Report == nil {
		r.logger.Errorf("%s: %v", res.Path, res.Err)
		return
	}

	rep := res.Report
	r.logger.StartDocument(ctx, log.DocumentOperation{
		Path:    rep.Path,
		Policy:  rep.Policy.String(),
		Patches: len(rep.Results),
		DryRun:  r.dryRun,
	})

	for _, pr := range rep.Results {
		r.logger.LogPatch(ctx, Entry(rep, pr))
	}

	r.logger.EndDocument(ctx)

	if res.Diff != "" {
		_, _ = io.WriteString(r.logger, res.Diff)
	}

	if res.Err != nil {
		r.logger.Error(res.Err.Error())
	}
}

// 🩹 Entry converts a patch result to a log entry.
func Entry(rep *patch.Report, pr patch.Result) log.PatchEntry {
	e := log.PatchEntry{
		ID:          pr.OperationID,
		Occurrences: pr.OccurrencesReplaced,
		Required:    pr.Required,
		IsApplied:   pr.Matched && pr.Problem == nil,
		IsSkipped:   pr.Skipped,
		IsFailed:    rep.IsFailure(pr),
	}
	e.IsError = pr.Problem != nil && !e.IsFailed && rep.Policy.IsStrict()
	e.IsWarning = pr.Problem != nil && !rep.Policy.IsStrict()
	e.Status = Status(pr)
	return e
}

// Status is the short status text of a patch result.
func Status(pr patch.Result) string {
	switch {
	case pr.Skipped:
		return "skipped"
	case errors.Is(pr.Problem, patch.ErrPatchNotFound):
		return "not found"
	case errors.Is(pr.Problem, patch.ErrOccurrenceMismatch):
		return "count mismatch"
	case pr.Problem != nil:
		return "error"
	default:
		return "applied"
	}
}

// 📋 Summary renders a table of every document's outcome to w.
func (r *Reporter) Summary(w io.Writer, results []operation.DocumentResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Document", "Applied", "Missed", "Skipped", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	var applied, missed, skipped int
	for _, res := range results {
		if res.Report == nil {
			table.Append([]string{res.Path, "-", "-", "-", "error"})
			continue
		}

		rep := res.Report
		m := len(rep.Errors()) + len(rep.Warnings())
		applied += rep.Applied()
		missed += m
		skipped += rep.Skipped()

		table.Append([]string{
			rep.Path,
			fmt.Sprintf("%d", rep.Applied()),
			fmt.Sprintf("%d", m),
			fmt.Sprintf("%d", rep.Skipped()),
			r.documentStatus(res),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Documents %d", len(results)),
		fmt.Sprintf("%d", applied),
		fmt.Sprintf("%d", missed),
		fmt.Sprintf("%d", skipped),
		"",
	})

	table.Render()
}

func (r *Reporter) documentStatus(res operation.DocumentResult) string {
	switch {
	case res.Err != nil:
		return "error"
	case res.Failed():
		return "failed"
	case res.Written:
		return "written"
	case res.Report.Changed() && r.dryRun:
		return "would change"
	case res.Report.Changed():
		return "not written"
	default:
		return "unchanged"
	}
}

// 🚦 ExitCode maps a run to the process exit code: ExitError when the run
// could not complete (runErr) or a document had an I/O failure,
// ExitPatchFailure when a required patch failed under strict, ExitOK
// otherwise.
func ExitCode(results []operation.DocumentResult, runErr error) int {
	if runErr != nil {
		return ExitError
	}
	code := ExitOK
	for _, res := range results {
		if res.Err != nil {
			return ExitError
		}
		if res.Failed() {
			code = ExitPatchFailure
		}
	}
	return code
}
