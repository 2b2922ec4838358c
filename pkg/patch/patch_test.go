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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestNewSet(t *testing.T) {
	tests := []struct {
		name      string
		ops       []Operation
		wantIDs   []string
		wantError error
		wantMsg   string
	}{
		{
			name:    "positional_ids",
			ops:     []Operation{{Search: "a"}, {Search: "b"}},
			wantIDs: []string{"#0", "#1"},
		},
		{
			name:    "explicit_ids",
			ops:     []Operation{{ID: "header", Search: "a"}, {Search: "b"}},
			wantIDs: []string{"header", "#1"},
		},
		{
			name:      "empty_search",
			ops:       []Operation{{Search: "a"}, {Replacement: "b"}},
			wantError: ErrEmptySearchPattern,
			wantMsg:   "patch #1",
		},
		{
			name:      "duplicate_ids",
			ops:       []Operation{{ID: "x", Search: "a"}, {ID: "x", Search: "b"}},
			wantError: ErrDuplicatePatchID,
			wantMsg:   "index 0 and 1",
		},
		{
			name:      "explicit_id_colliding_with_positional",
			ops:       []Operation{{Search: "a"}, {ID: "#0", Search: "b"}},
			wantError: ErrDuplicatePatchID,
		},
		{
			name:      "invalid_glob",
			ops:       []Operation{{Search: "a", Files: []string{"[abc"}}},
			wantError: ErrInvalidFilePattern,
		},
		{
			name:    "negative_expect",
			ops:     []Operation{{Search: "a", Expect: -1}},
			wantMsg: "expect must not be negative",
		},
		{
			name:    "empty",
			ops:     nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(tt.ops...)
			if tt.wantError != nil || tt.wantMsg != "" {
				require.Error(t, err)
				if tt.wantError != nil {
					assert.True(t, errors.Is(err, tt.wantError), "got %v", err)
				}
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}

			require.NoError(t, err)
			ids := []string{}
			for _, op := range set.Operations() {
				ids = append(ids, op.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), set.Len())
		})
	}
}

func TestSet_OperationsIsACopy(t *testing.T) {
	files := []string{"*.xaml"}
	set := MustNewSet(Operation{ID: "a", Search: "x", Files: files})

	ops := set.Operations()
	ops[0].Search = "mutated"
	files[0] = "*.md"

	again := set.Operations()
	assert.Equal(t, "x", again[0].Search)
	assert.Equal(t, []string{"*.xaml"}, again[0].Files)
}

func TestMustNewSet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewSet(Operation{})
	})
}

func TestParseMatchPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MatchPolicy
		wantErr bool
	}{
		{in: "", want: Strict},
		{in: "strict", want: Strict},
		{in: " Lenient ", want: Lenient},
		{in: "loose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMatchPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown match policy")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPolicy_IsStrict(t *testing.T) {
	assert.True(t, Strict.IsStrict())
	assert.True(t, MatchPolicy("").IsStrict())
	assert.False(t, Lenient.IsStrict())
	assert.Equal(t, "strict", MatchPolicy("").String())
}
