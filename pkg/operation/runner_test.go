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

package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/patch"
)

const patchFile = `
policy: strict
documents:
  - "ui/*.xaml"
patches:
  - id: padding
    search: 'Padding="4"'
    replace: 'Padding="8"'
  - id: title
    search: 'Title="Editor"'
    replace: 'Title="PlantUML Editor"'
    files: ["ui/MainWindow.xaml"]
`

func setupTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func loadConfig(t *testing.T, dir, content string) *config.Config {
	t.Helper()
	path := filepath.Join(dir, ".patchrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err, "loading patch file")
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_Run(t *testing.T) {
	const (
		mainWindow = `<Window Title="Editor"><Grid Padding="4"/></Window>`
		dialog     = `<Window Title="Editor"><Border Padding="4"/></Window>`
	)

	tests := []struct {
		name        string
		files       map[string]string
		opts        Options
		wantWritten []bool
		wantFailed  []bool
		wantContent map[string]string
	}{
		{
			name: "applies_and_writes",
			files: map[string]string{
				"ui/MainWindow.xaml": mainWindow,
				"ui/Dialog.xaml":     dialog,
			},
			wantWritten: []bool{true, true},
			wantFailed:  []bool{false, false},
			wantContent: map[string]string{
				"ui/Dialog.xaml":     `<Window Title="Editor"><Border Padding="8"/></Window>`,
				"ui/MainWindow.xaml": `<Window Title="PlantUML Editor"><Grid Padding="8"/></Window>`,
			},
		},
		{
			name: "dry_run_writes_nothing",
			files: map[string]string{
				"ui/MainWindow.xaml": mainWindow,
			},
			opts:        Options{DryRun: true},
			wantWritten: []bool{false},
			wantFailed:  []bool{false},
			wantContent: map[string]string{"ui/MainWindow.xaml": mainWindow},
		},
		{
			name: "strict_failure_is_not_written",
			files: map[string]string{
				"ui/MainWindow.xaml": `<Window Title="Editor"><Grid/></Window>`,
			},
			wantWritten: []bool{false},
			wantFailed:  []bool{true},
			wantContent: map[string]string{"ui/MainWindow.xaml": `<Window Title="Editor"><Grid/></Window>`},
		},
		{
			name: "lenient_override_writes_partial_result",
			files: map[string]string{
				"ui/MainWindow.xaml": `<Window Title="Editor"><Grid/></Window>`,
			},
			opts:        Options{Policy: patch.Lenient},
			wantWritten: []bool{true},
			wantFailed:  []bool{false},
			wantContent: map[string]string{"ui/MainWindow.xaml": `<Window Title="PlantUML Editor"><Grid/></Window>`},
		},
		{
			name: "already_patched_is_unchanged",
			files: map[string]string{
				"ui/Dialog.xaml": `<Window Title="PlantUML Editor"><Border Padding="8"/></Window>`,
			},
			opts:        Options{Policy: patch.Lenient},
			wantWritten: []bool{false},
			wantFailed:  []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTree(t, tt.files)
			tt.opts.Config = loadConfig(t, dir, patchFile)

			results, err := NewRunner(2).Run(context.Background(), tt.opts)
			require.NoError(t, err)
			require.Len(t, results, len(tt.wantWritten))

			for i, res := range results {
				assert.NoError(t, res.Err)
				assert.Equal(t, tt.wantWritten[i], res.Written, "written %s", res.Path)
				assert.Equal(t, tt.wantFailed[i], res.Failed(), "failed %s", res.Path)
			}

			for name, want := range tt.wantContent {
				assert.Equal(t, want, readFile(t, filepath.Join(dir, filepath.FromSlash(name))), name)
			}
		})
	}
}

func TestRunner_FileFilterSkips(t *testing.T) {
	dir := setupTree(t, map[string]string{
		"ui/Dialog.xaml": `<Border Padding="4"/>`,
	})
	cfg := loadConfig(t, dir, patchFile)

	results, err := NewRunner(1).Run(context.Background(), Options{Config: cfg, DryRun: true})
	require.NoError(t, err)
	require.Len(t, results, 1)

	report := results[0].Report
	require.NotNil(t, report)
	assert.Equal(t, "ui/Dialog.xaml", report.Path)
	assert.Equal(t, 1, report.Applied())
	assert.Equal(t, 1, report.Skipped())
	assert.False(t, results[0].Failed())
}

func TestRunner_ResultsKeepDocumentOrder(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 20; i++ {
		files[fmt.Sprintf("ui/View%02d.xaml", i)] = `<Grid Padding="4"/>`
	}
	dir := setupTree(t, files)
	cfg := loadConfig(t, dir, `
policy: lenient
documents: ["ui/*.xaml"]
patches:
  - search: 'Padding="4"'
    replace: 'Padding="8"'
`)

	results, err := NewRunner(4).Run(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	require.Len(t, results, 20)

	for i, res := range results {
		assert.Equal(t, filepath.Join(dir, "ui", fmt.Sprintf("View%02d.xaml", i)), res.Path)
		assert.True(t, res.Written)
	}
}

func TestRunner_Backup(t *testing.T) {
	dir := setupTree(t, map[string]string{
		"ui/MainWindow.xaml": `<Window Title="Editor"><Grid Padding="4"/></Window>`,
	})
	cfg := loadConfig(t, dir, patchFile)

	results, err := NewRunner(1).Run(context.Background(), Options{Config: cfg, Backup: true})
	require.NoError(t, err)
	require.True(t, results[0].Written)

	backup := readFile(t, filepath.Join(dir, "ui", "MainWindow.xaml"+document.BackupSuffix))
	assert.Equal(t, `<Window Title="Editor"><Grid Padding="4"/></Window>`, backup)
}

func TestRunner_Diff(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := setupTree(t, map[string]string{
		"ui/Dialog.xaml": "<Window>\n<Border Padding=\"4\"/>\n</Window>\n",
	})
	cfg := loadConfig(t, dir, patchFile)

	results, err := NewRunner(1).Run(context.Background(), Options{Config: cfg, DryRun: true, Diff: true, DiffContext: 1})
	require.NoError(t, err)

	assert.Equal(t,
		"--- a/ui/Dialog.xaml\n+++ b/ui/Dialog.xaml\n@@ -1 +1 @@\n <Window>\n-<Border Padding=\"4\"/>\n+<Border Padding=\"8\"/>\n </Window>\n",
		results[0].Diff)
}

func TestRunner_Errors(t *testing.T) {
	t.Run("missing_config", func(t *testing.T) {
		_, err := NewRunner(1).Run(context.Background(), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config is required")
	})

	t.Run("no_documents_declared", func(t *testing.T) {
		dir := t.TempDir()
		cfg := loadConfig(t, dir, "patches:\n  - search: a\n    replace: b\n")
		_, err := NewRunner(1).Run(context.Background(), Options{Config: cfg})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no documents to patch")
	})

	t.Run("unmatched_glob", func(t *testing.T) {
		dir := setupTree(t, map[string]string{"ui/Other.txt": "x"})
		cfg := loadConfig(t, dir, patchFile)
		_, err := NewRunner(1).Run(context.Background(), Options{Config: cfg})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolving documents")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		dir := setupTree(t, map[string]string{"ui/MainWindow.xaml": "x"})
		cfg := loadConfig(t, dir, patchFile)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewRunner(1).Run(ctx, Options{Config: cfg})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunner_DocumentsOverride(t *testing.T) {
	dir := setupTree(t, map[string]string{
		"ui/MainWindow.xaml": `<Grid Padding="4"/>`,
	})
	cfg := loadConfig(t, t.TempDir(), patchFile)
	target := filepath.Join(dir, "ui", "MainWindow.xaml")

	results, err := NewRunner(1).Run(context.Background(), Options{
		Config:    cfg,
		Documents: []string{target},
		Policy:    patch.Lenient,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, target, results[0].Path)
	assert.Equal(t, `<Grid Padding="8"/>`, readFile(t, target))
}
