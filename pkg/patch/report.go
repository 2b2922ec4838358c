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
	"gitlab.com/tozd/go/errors"
)

// 📊 Result records what a single patch did during one pass
type Result struct {
	OperationID         string
	Index               int
	OccurrencesReplaced int
	Matched             bool
	Required            bool
	Skipped             bool // filtered out by the patch's Files globs

	// Problem is ErrPatchNotFound or ErrOccurrenceMismatch when the patch
	// did not do what it declared, nil otherwise. It is set under both
	// policies; the policy decides whether it fails the run.
	Problem error
}

// 🧾 Report is the ordered record of one application pass
type Report struct {
	Path     string
	Policy   MatchPolicy
	Original string
	Content  string
	Results  []Result
}

// Changed reports whether the final content differs from the original.
func (r *Report) Changed() bool {
	return r.Original != r.Content
}

// Applied returns the number of patches that matched at least once.
func (r *Report) Applied() int {
	n := 0
	for _, res := range r.Results {
		if res.Matched {
			n++
		}
	}
	return n
}

// Skipped returns the number of patches filtered out for this document.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// IsFailure reports whether res fails the run under the report's policy.
func (r *Report) IsFailure(res Result) bool {
	return res.Problem != nil && res.Required && r.Policy.IsStrict()
}

// Failures returns the results that fail the run, in patch order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if r.IsFailure(res) {
			out = append(out, res)
		}
	}
	return out
}

// Errors returns the results reported as errors: every problem under
// strict, required or not. Only Failures among them fail the run.
func (r *Report) Errors() []Result {
	if !r.Policy.IsStrict() {
		return nil
	}
	var out []Result
	for _, res := range r.Results {
		if res.Problem != nil {
			out = append(out, res)
		}
	}
	return out
}

// Warnings returns the results with a problem under lenient, where problems
// are never errors.
func (r *Report) Warnings() []Result {
	if r.Policy.IsStrict() {
		return nil
	}
	var out []Result
	for _, res := range r.Results {
		if res.Problem != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err aggregates every failure into one error, or returns nil.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}

	errs := make([]error, 0, len(failures))
	for _, res := range failures {
		errs = append(errs, errors.Errorf("patch %s: %w", res.OperationID, res.Problem))
	}

	if len(failures) == 1 {
		return errs[0]
	}
	return errors.Errorf("%d required patches failed: %w", len(failures), errors.Join(errs...))
}
