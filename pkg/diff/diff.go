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

// Package diff renders line diffs between a document and its patched form.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 2

// Op is the kind of a diff line
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is a single line of a diff, without its trailing newline
type Line struct {
	Op   Op
	Text string
}

// 📊 Stats counts inserted and deleted lines
type Stats struct {
	Added   int
	Removed int
}

func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Removed)
}

// Lines computes a line-level diff from one text to another.
func Lines(from, to string) []Line {
	enc := newLineEncoder()
	a, b := enc.encode(from), enc.encode(to)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(a, b, false)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}
		for _, r := range d.Text {
			out = append(out, Line{Op: op, Text: enc.lines[r]})
		}
	}
	return out
}

// lineEncoder maps every distinct line to one rune so lines diff as units.
type lineEncoder struct {
	runes map[string]rune
	lines map[rune]string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{runes: map[string]rune{}, lines: map[rune]string{}}
}

func (e *lineEncoder) encode(text string) []rune {
	split := splitLines(text)
	out := make([]rune, 0, len(split))
	for _, line := range split {
		r, ok := e.runes[line]
		if !ok {
			r = lineRune(len(e.runes))
			e.runes[line] = r
			e.lines[r] = line
		}
		out = append(out, r)
	}
	return out
}

// lineRune is the i-th valid rune, skipping the surrogate range so the
// encoding survives conversion to and from strings.
func lineRune(i int) rune {
	r := rune(i)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

// Count returns the line stats of a diff.
func Count(lines []Line) Stats {
	var s Stats
	for _, l := range lines {
		switch l.Op {
		case Insert:
			s.Added++
		case Delete:
			s.Removed++
		}
	}
	return s
}

// 🖨️ Render writes the changed lines of from -> to with context lines
// around each change, in a unified-diff like layout. Colors follow
// color.NoColor.
func Render(w io.Writer, path, from, to string, context int) (Stats, error) {
	lines := Lines(from, to)
	stats := Count(lines)
	if stats.Added == 0 && stats.Removed == 0 {
		return stats, nil
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n",
		color.New(color.Bold).Sprintf("--- a/%s", path),
		color.New(color.Bold).Sprintf("+++ b/%s", path)); err != nil {
		return stats, err
	}

	visible := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			visible[j] = true
		}
	}

	var (
		add = color.New(color.FgGreen)
		del = color.New(color.FgRed)
		sep = color.New(color.FgCyan)
	)

	oldLine, newLine := 1, 1
	gap := true
	for i, l := range lines {
		if !visible[i] {
			gap = true
		} else {
			if gap {
				if _, err := fmt.Fprintln(w, sep.Sprintf("@@ -%d +%d @@", oldLine, newLine)); err != nil {
					return stats, err
				}
				gap = false
			}

			var err error
			switch l.Op {
			case Insert:
				_, err = fmt.Fprintln(w, add.Sprint("+"+l.Text))
			case Delete:
				_, err = fmt.Fprintln(w, del.Sprint("-"+l.Text))
			default:
				_, err = fmt.Fprintln(w, " "+l.Text)
			}
			if err != nil {
				return stats, err
			}
		}

		switch l.Op {
		case Insert:
			newLine++
		case Delete:
			oldLine++
		default:
			oldLine++
			newLine++
		}
	}

	return stats, nil
}

// String is Render into a string.
func String(path, from, to string, context int) string {
	var sb strings.Builder
	_, _ = Render(&sb, path, from, to, context)
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
