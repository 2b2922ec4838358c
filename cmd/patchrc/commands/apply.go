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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/diff"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/report"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		dryRun   bool
		backup   bool
		showDiff bool
	)

	cmd := &cobra.Command{
		Use:   "apply [documents...]",
		Short: "Apply the patch file to its documents",
		Long: `Apply runs every patch of the patch file, in order, against each document.
It will:
1. Resolve the documents declared by the patch file (or given as arguments)
2. Apply each patch to every occurrence of its search text
3. Report applied, missed and skipped patches
4. Write each changed document, unless a required patch failed under strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())
			logger := log.FromContext(cmd.Context())

			runOpts, err := runOptions(ctx, ro, args)
			if err != nil {
				return err
			}
			runOpts.DryRun = dryRun
			runOpts.Backup = backup
			runOpts.Diff = showDiff || dryRun
			runOpts.DiffContext = diff.DefaultContext

			if dryRun {
				logger.Header("dry run of " + runOpts.Config.Location())
			} else {
				logger.Header("applying " + runOpts.Config.Location())
			}

			results, runErr := ro.Runner().Run(ctx, runOpts)
			report.New(logger, dryRun).Report(ctx, results)

			if err := finish(ctx, ro, results, runErr); err != nil {
				return err
			}

			written := 0
			for _, res := range results {
				if res.Written {
					written++
				}
			}
			if dryRun {
				logger.Successf("%d documents checked, nothing written", len(results))
			} else {
				logger.Successf("%d of %d documents written", written, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report and show the diff without writing documents")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep the previous content of each written document as <path>.orig")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show the diff of every changed document")

	return cmd
}
