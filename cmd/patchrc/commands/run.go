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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// ErrPatchesFailed is returned when a required patch failed under strict.
var ErrPatchesFailed = errors.Base("required patches failed")

// runOptions loads the patch file and builds the runner options shared by
// every command.
func runOptions(ctx context.Context, ro *opts.RootOpts, documents []string) (operation.Options, error) {
	ro.ExitCode = report.ExitError

	cfg, err := ro.LoadConfig(ctx)
	if err != nil {
		return operation.Options{}, err
	}

	log.NewUserLogger(ctx).WithWriter(log.FromContext(ctx)).LogStateChange("loaded " + cfg.String())

	policy, err := ro.MatchPolicy()
	if err != nil {
		return operation.Options{}, errors.Errorf("parsing --policy: %w", err)
	}

	return operation.Options{
		Config:    cfg,
		Documents: documents,
		Policy:    policy,
	}, nil
}

// finish records the exit code of a run and turns it into the command's
// error.
func finish(ctx context.Context, ro *opts.RootOpts, results []operation.DocumentResult, runErr error) error {
	ro.ExitCode = report.ExitCode(results, runErr)

	zerolog.Ctx(ctx).Debug().
		Int("documents", len(results)).
		Int("exit_code", ro.ExitCode).
		Msg("run finished")

	switch ro.ExitCode {
	case report.ExitError:
		if runErr == nil {
			runErr = errors.New("documents could not be patched")
		}
		return runErr
	case report.ExitPatchFailure:
		failed := 0
		for _, res := range results {
			if res.Failed() {
				failed++
			}
		}
		return errors.Errorf("%d of %d documents: %w", failed, len(results), ErrPatchesFailed)
	}
	return nil
}
