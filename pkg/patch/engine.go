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
	"strings"
)

// 🔌 Applier applies a patch set to a document's content
type Applier interface {
	// ApplyTo applies set to content. path selects which patches apply (see
	// Operation.Files); it is never opened.
	ApplyTo(path string, content string, set *Set) (*Report, error)
}

var _ Applier = (*Engine)(nil)

// ⚙️ Engine applies patches in declared order to the running content.
//
// Every occurrence of a patch's search text is replaced, not only the first.
// A short or common search string can therefore rewrite text the author did
// not mean to touch; use Operation.Expect to pin the count.
//
// Engine holds no state besides its policy and is safe for concurrent use.
type Engine struct {
	policy MatchPolicy
}

// NewEngine creates an engine for the given policy.
func NewEngine(policy MatchPolicy) *Engine {
	if policy == "" {
		policy = Strict
	}
	return &Engine{policy: policy}
}

// Apply applies every patch in set to content.
func (e *Engine) Apply(content string, set *Set) (*Report, error) {
	return e.ApplyTo("", content, set)
}

// ApplyTo implements Applier.
//
// The returned report is always complete, with one result per patch in set
// order. Under a strict policy the error aggregates every required patch that
// did not match, and is only produced after all patches were attempted.
func (e *Engine) ApplyTo(path string, content string, set *Set) (*Report, error) {
	report := &Report{
		Path:     path,
		Policy:   e.policy,
		Original: content,
		Results:  make([]Result, 0, set.Len()),
	}

	current := content
	for i, op := range set.Operations() {
		res := Result{
			OperationID: op.ID,
			Index:       i,
			Required:    op.Required,
		}

		if !op.AppliesTo(path) {
			res.Skipped = true
			report.Results = append(report.Results, res)
			continue
		}

		count := strings.Count(current, op.Search)
		if count > 0 {
			current = strings.ReplaceAll(current, op.Search, op.Replacement)
		}

		res.OccurrencesReplaced = count
		res.Matched = count > 0

		switch {
		case count == 0:
			res.Problem = ErrPatchNotFound
		case op.Expect > 0 && count != op.Expect:
			res.Problem = ErrOccurrenceMismatch
		}

		report.Results = append(report.Results, res)
	}

	report.Content = current
	return report, report.Err()
}

// Apply is a shorthand for NewEngine(policy).Apply(content, set).
func Apply(content string, set *Set, policy MatchPolicy) (*Report, error) {
	return NewEngine(policy).Apply(content, set)
}
