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

// Package remote loads patch files that live in remote repositories.
//
// A remote reference has the form
//
//	<provider>:<owner>/<repo>/<path>[@ref]
//
// for example "github:walteh/patchrc/patches/chat-ui.yaml@main".
package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Provider{}
)

// RegisterProvider makes a provider available under name.
func RegisterProvider(name string, provider Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = provider
}

// GetProvider returns the provider registered under name.
func GetProvider(name string) (Provider, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	provider, ok := registry[name]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("provider %s not found, options: %s", name, strings.Join(options, ", "))
	}
	return provider, nil
}

// Provider fetches raw files from a remote repository host (e.g. GitHub)
type Provider interface {
	// Name returns the name of the provider (e.g. "github")
	Name() string
	// Fetch returns the raw content of the referenced file
	Fetch(ctx context.Context, ref Reference) ([]byte, error)
}

// 🔗 Reference points at a single file in a remote repository
type Reference struct {
	Provider string
	Owner    string
	Repo     string
	Path     string
	Ref      string // branch, tag or commit; empty means the default branch
}

// IsReference reports whether s looks like a remote reference rather than a
// local path.
func IsReference(s string) bool {
	i := strings.Index(s, ":")
	if i <= 1 {
		// "C:\..." style paths have a single letter before the colon
		return false
	}
	scheme := s[:i]
	for _, r := range scheme {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return !strings.HasPrefix(s[i+1:], "//")
}

// ParseReference parses "<provider>:<owner>/<repo>/<path>[@ref]".
func ParseReference(s string) (Reference, error) {
	if !IsReference(s) {
		return Reference{}, errors.Errorf("invalid remote reference %q", s)
	}

	provider, rest, _ := strings.Cut(s, ":")

	var ref string
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest, ref = rest[:at], rest[at+1:]
		if ref == "" {
			return Reference{}, errors.Errorf("invalid remote reference %q: empty ref after @", s)
		}
	}

	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Reference{}, errors.Errorf("invalid remote reference %q: want %s:<owner>/<repo>/<path>[@ref]", s, provider)
	}

	return Reference{
		Provider: provider,
		Owner:    parts[0],
		Repo:     parts[1],
		Path:     parts[2],
		Ref:      ref,
	}, nil
}

func (r Reference) String() string {
	s := fmt.Sprintf("%s:%s/%s/%s", r.Provider, r.Owner, r.Repo, r.Path)
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}

// Fetch resolves the provider for ref and fetches the file.
func Fetch(ctx context.Context, ref Reference) ([]byte, error) {
	provider, err := GetProvider(ref.Provider)
	if err != nil {
		return nil, err
	}

	data, err := provider.Fetch(ctx, ref)
	if err != nil {
		return nil, errors.Errorf("fetching %s: %w", ref, err)
	}
	return data, nil
}
