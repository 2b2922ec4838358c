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
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/report"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [documents...]",
		Short: "Check that every required patch still applies",
		Long: `Check is a strict dry run: nothing is written and the exit code is 1 when
a required patch no longer matches its document. Use it in CI to notice when
upstream changes break a patch file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())
			logger := log.FromContext(cmd.Context())

			runOpts, err := runOptions(ctx, ro, args)
			if err != nil {
				return err
			}
			runOpts.Policy = patch.Strict
			runOpts.DryRun = true

			logger.Header("checking " + runOpts.Config.Location())

			results, runErr := ro.Runner().Run(ctx, runOpts)
			report.New(logger, true).Report(ctx, results)

			if err := finish(ctx, ro, results, runErr); err != nil {
				return err
			}

			logger.Successf("all required patches apply to %d documents", len(results))
			return nil
		},
	}

	return cmd
}
