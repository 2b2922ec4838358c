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

package opts

import (
	"context"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// ConfigFile is a local patch file path or a remote reference
	ConfigFile string
	Debug      bool
	// Policy overrides the patch file's policy when set
	Policy string
	// Jobs bounds how many documents are patched at once
	Jobs int

	// ExitCode is set by the command that ran
	ExitCode int
}

// LoadConfig loads the patch file named by ConfigFile.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading patch file %s: %w", o.ConfigFile, err)
	}
	return cfg, nil
}

// MatchPolicy is the --policy override, empty when unset.
func (o *RootOpts) MatchPolicy() (patch.MatchPolicy, error) {
	if o.Policy == "" {
		return "", nil
	}
	return patch.ParseMatchPolicy(o.Policy)
}

// Runner creates a document runner honoring --jobs.
func (o *RootOpts) Runner() *operation.Runner {
	return operation.NewRunner(o.Jobs)
}
