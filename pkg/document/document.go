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

// Package document reads the documents patchrc rewrites and writes them back.
package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BackupSuffix is appended to a document's path for its pre-patch copy.
const BackupSuffix = ".orig"

// 📄 Document is one file's content, read once and written once per run
type Document struct {
	Path    string
	Content string

	mode     os.FileMode
	checksum string
}

// WriteOptions controls how a document is written back
type WriteOptions struct {
	// Backup keeps the previous content next to the document as
	// <path>.orig before it is replaced.
	Backup bool
}

// 📖 Read loads the document at path.
func Read(ctx context.Context, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("reading document: %s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("document read")

	return &Document{
		Path:     path,
		Content:  string(content),
		mode:     info.Mode().Perm(),
		checksum: calculateChecksum(content),
	}, nil
}

// 💾 Write replaces the document's content on disk with content. Nothing is
// written when content equals what was read; the returned bool reports
// whether the file changed.
func (d *Document) Write(ctx context.Context, content string, opts WriteOptions) (bool, error) {
	if content == d.Content {
		zerolog.Ctx(ctx).Debug().Str("path", d.Path).Msg("document unchanged, skipping write")
		return false, nil
	}

	if opts.Backup {
		if err := WriteFileAtomic(d.Path+BackupSuffix, []byte(d.Content), d.mode); err != nil {
			return false, errors.Errorf("writing backup: %w", err)
		}
	}

	if err := WriteFileAtomic(d.Path, []byte(content), d.mode); err != nil {
		return false, errors.Errorf("writing document: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", d.Path).
		Str("old_checksum", d.checksum).
		Str("new_checksum", calculateChecksum([]byte(content))).
		Msg("document written")

	d.Content = content
	d.checksum = calculateChecksum([]byte(content))
	return true, nil
}

// WriteFileAtomic writes data to a temp file in path's directory and renames
// it over path, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0644
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
