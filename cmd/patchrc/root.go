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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"

	// registers the github: patch file references
	_ "github.com/walteh/patchrc/pkg/remote/github"
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Apply ordered literal text patches to files",
		Long: `patchrc applies a patch file, an ordered list of "replace this exact text
with that text" operations, to a set of documents. Patch files are YAML, JSON
or HCL, stored locally or referenced as github:<owner>/<repo>/<path>[@ref].`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), ro.Debug)
			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewApplyCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewDiffCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", ".patchrc.yaml", "patch file path or github:<owner>/<repo>/<path>[@ref]")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&ro.Policy, "policy", "", "override the patch file's match policy (strict|lenient)")
	cmd.PersistentFlags().IntVarP(&ro.Jobs, "jobs", "j", 0, "documents patched in parallel (default number of CPUs)")
}

// setupLogging returns ctx carrying a zerolog logger writing to w. Without
// debug the console output of pkg/log is the only output.
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
