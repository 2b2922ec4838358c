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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for patch file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🩹 Patch is a single search/replace entry as written in a patch file
type Patch struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Search   string   `json:"search" yaml:"search"`
	Replace  string   `json:"replace" yaml:"replace"`
	Required *bool    `json:"required,omitempty" yaml:"required,omitempty"` // defaults to true
	Expect   int      `json:"expect,omitempty" yaml:"expect,omitempty"`
	Files    []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// IsRequired reports whether the patch is required; unset means required.
func (p Patch) IsRequired() bool {
	return p.Required == nil || *p.Required
}

// 📚 Config represents a complete patch file
type Config struct {
	Policy    string   `json:"policy,omitempty" yaml:"policy,omitempty"`
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty"`
	Patches   []Patch  `json:"patches" yaml:"patches"`

	location string
}

// 🎯 Load loads a patch file from a local path or a remote reference
// (see package remote).
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading patch file")

	var (
		data []byte
		name = path
		err  error
	)

	if remote.IsReference(path) {
		ref, perr := remote.ParseReference(path)
		if perr != nil {
			return nil, perr
		}
		name = ref.Path
		data, err = remote.Fetch(ctx, ref)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Errorf("reading patch file: %w", err)
	}

	cfg, err := Parse(ctx, name, data)
	if err != nil {
		return nil, err
	}
	cfg.location = path

	logger.Debug().
		Str("path", path).
		Int("patches", len(cfg.Patches)).
		Int("documents", len(cfg.Documents)).
		Msg("patch file loaded")

	return cfg, nil
}

// Parse parses data with the parser registered for filename and validates
// the result.
func Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	p := GetParser(filename)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", filename)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing patch file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating patch file: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	policy, err := patch.ParseMatchPolicy(cfg.Policy)
	if err != nil {
		return err
	}
	cfg.Policy = string(policy)

	for i, doc := range cfg.Documents {
		if strings.TrimSpace(doc) == "" {
			return errors.Errorf("documents[%d] is empty", i)
		}
	}

	if _, err := cfg.PatchSet(); err != nil {
		return err
	}

	return nil
}

// MatchPolicy returns the configured policy.
func (cfg *Config) MatchPolicy() patch.MatchPolicy {
	policy, err := patch.ParseMatchPolicy(cfg.Policy)
	if err != nil {
		return patch.Strict
	}
	return policy
}

// PatchSet builds the ordered patch set declared by the file.
func (cfg *Config) PatchSet() (*patch.Set, error) {
	ops := make([]patch.Operation, 0, len(cfg.Patches))
	for _, p := range cfg.Patches {
		ops = append(ops, patch.Operation{
			ID:          p.ID,
			Search:      p.Search,
			Replacement: p.Replace,
			Required:    p.IsRequired(),
			Expect:      p.Expect,
			Files:       p.Files,
		})
	}
	return patch.NewSet(ops...)
}

// Location returns where the config was loaded from.
func (cfg *Config) Location() string {
	return cfg.location
}

// BaseDir is the directory documents are resolved against: the patch file's
// directory for local files, the working directory otherwise.
func (cfg *Config) BaseDir() string {
	if cfg.location == "" || remote.IsReference(cfg.location) {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%d patches, %s) -> %s", cfg.location, len(cfg.Patches), cfg.MatchPolicy(), strings.Join(cfg.Documents, ", "))
}
