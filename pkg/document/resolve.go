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

package document

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Resolve expands document paths and doublestar globs relative to baseDir.
//
// Results keep the order of patterns; matches of a single glob are sorted.
// A path is only returned once. Every pattern must match at least one file,
// and backups or temp files left by a previous run are never returned.
func Resolve(ctx context.Context, baseDir string, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := map[string]bool{}
	var out []string

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
		sort.Strings(matches)

		kept := 0
		for _, m := range matches {
			if isArtifact(m) {
				continue
			}
			kept++
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}

		if kept == 0 {
			return nil, errors.Errorf("no documents match %q", pattern)
		}

		logger.Debug().Str("pattern", pattern).Int("matches", kept).Msg("resolved documents")
	}

	return out, nil
}

func isArtifact(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, BackupSuffix) {
		return true
	}
	return strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp")
}
