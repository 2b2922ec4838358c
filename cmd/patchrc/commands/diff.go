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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/diff"
	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewDiffCmd creates a new diff command
func NewDiffCmd(ro *opts.RootOpts) *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:   "diff [documents...]",
		Short: "Print the changes apply would write",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "diff").Logger().WithContext(cmd.Context())
			logger := log.FromContext(cmd.Context())

			if context < 0 {
				return errors.Errorf("--context must not be negative, got %d", context)
			}

			runOpts, err := runOptions(ctx, ro, args)
			if err != nil {
				return err
			}
			runOpts.DryRun = true
			runOpts.Diff = true
			runOpts.DiffContext = context

			results, runErr := ro.Runner().Run(ctx, runOpts)

			for _, res := range results {
				if res.Diff != "" {
					_, _ = io.WriteString(logger, res.Diff)
				}
				if res.Report == nil {
					continue
				}
				for _, pr := range res.Report.Errors() {
					logger.Errorf("%s: patch %s: %v", res.Report.Path, pr.OperationID, pr.Problem)
				}
				for _, pr := range res.Report.Warnings() {
					logger.Warningf("%s: patch %s: %v", res.Report.Path, pr.OperationID, pr.Problem)
				}
			}

			return finish(ctx, ro, results, runErr)
		},
	}

	cmd.Flags().IntVarP(&context, "context", "U", diff.DefaultContext, "unchanged lines shown around each change")

	return cmd
}
