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

package patch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrPatchNotFound means a patch's search text was absent from the content
	// at the time the patch was attempted.
	ErrPatchNotFound = errors.Base("patch not found")

	// ErrOccurrenceMismatch means a patch matched a different number of times
	// than its Expect count.
	ErrOccurrenceMismatch = errors.Base("unexpected occurrence count")

	// ErrEmptySearchPattern is returned when a patch with an empty search text
	// is added to a Set.
	ErrEmptySearchPattern = errors.Base("empty search pattern")

	// ErrDuplicatePatchID is returned when two patches in a Set share an id.
	ErrDuplicatePatchID = errors.Base("duplicate patch id")

	// ErrInvalidFilePattern is returned for malformed file globs.
	ErrInvalidFilePattern = errors.Base("invalid file pattern")
)

// 🎚️ MatchPolicy controls what an unmatched required patch means for a run
type MatchPolicy string

const (
	// Strict fails the run (after every patch was attempted) when a required
	// patch does not match.
	Strict MatchPolicy = "strict"
	// Lenient never fails; unmatched patches are only reported.
	Lenient MatchPolicy = "lenient"
)

// ParseMatchPolicy parses a policy name. The empty string means Strict.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Strict:
		return Strict, nil
	case Lenient:
		return Lenient, nil
	default:
		return "", errors.Errorf("unknown match policy %q (want %q or %q)", s, Strict, Lenient)
	}
}

func (p MatchPolicy) String() string {
	if p == "" {
		return string(Strict)
	}
	return string(p)
}

// IsStrict reports whether unmatched required patches fail the run.
func (p MatchPolicy) IsStrict() bool {
	return p != Lenient
}

// 🩹 Operation is a single literal search and replace rule
type Operation struct {
	// ID names the patch in reports. Empty means positional ("#<index>").
	ID string

	// Search is the exact text to find. Must not be empty.
	Search string

	// Replacement replaces every occurrence of Search.
	Replacement string

	// Required patches fail a strict run when they do not match.
	Required bool

	// Expect, when positive, is the exact number of occurrences the patch
	// must find.
	Expect int

	// Files restricts the patch to documents matching any of these doublestar
	// globs. Empty applies everywhere.
	Files []string
}

// AppliesTo reports whether the patch targets the document at path.
func (o Operation) AppliesTo(path string) bool {
	if len(o.Files) == 0 || path == "" {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range o.Files {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		// allow bare names like "*.xaml" to match in any directory
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
				return true
			}
		}
	}
	return false
}

func (o Operation) validate() error {
	if o.Search == "" {
		return ErrEmptySearchPattern
	}
	if o.Expect < 0 {
		return errors.Errorf("expect must not be negative, got %d", o.Expect)
	}
	for _, pattern := range o.Files {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%q: %w", pattern, ErrInvalidFilePattern)
		}
	}
	return nil
}

// 📚 Set is an ordered, immutable collection of patches
type Set struct {
	ops []Operation
}

// NewSet validates the operations and returns them as a Set. Operations
// without an id get their positional id. Order is preserved.
func NewSet(ops ...Operation) (*Set, error) {
	seen := make(map[string]int, len(ops))
	set := &Set{ops: make([]Operation, 0, len(ops))}

	for i, op := range ops {
		if op.ID == "" {
			op.ID = PositionalID(i)
		}
		if err := op.validate(); err != nil {
			return nil, errors.Errorf("patch %s: %w", op.ID, err)
		}
		if prev, ok := seen[op.ID]; ok {
			return nil, errors.Errorf("patch %s (index %d and %d): %w", op.ID, prev, i, ErrDuplicatePatchID)
		}
		seen[op.ID] = i

		op.Files = append([]string(nil), op.Files...)
		set.ops = append(set.ops, op)
	}

	return set, nil
}

// MustNewSet is NewSet for statically declared patches; it panics on error.
func MustNewSet(ops ...Operation) *Set {
	set, err := NewSet(ops...)
	if err != nil {
		panic(err)
	}
	return set
}

// PositionalID is the id given to the patch at index i when none is set.
func PositionalID(i int) string {
	return fmt.Sprintf("#%d", i)
}

// Len returns the number of patches.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ops)
}

// Operations returns a copy of the patches in declared order.
func (s *Set) Operations() []Operation {
	if s == nil {
		return nil
	}
	out := make([]Operation, len(s.ops))
	copy(out, s.ops)
	return out
}
