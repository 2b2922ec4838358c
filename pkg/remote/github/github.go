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

package github

import (
	"context"
	"os"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.RegisterProvider("github", NewProvider())
}

// ContentsClient is the part of the GitHub API the provider needs
type ContentsClient interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// 🎯 Provider implements remote.Provider for GitHub
type Provider struct {
	client ContentsClient
}

var _ remote.Provider = (*Provider)(nil)

// 🏭 NewProvider creates a GitHub provider, authenticated with GITHUB_TOKEN
// when it is set.
func NewProvider() *Provider {
	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}
	return NewProviderWithClient(client.Repositories)
}

// NewProviderWithClient creates a provider on top of an existing client.
func NewProviderWithClient(client ContentsClient) *Provider {
	return &Provider{client: client}
}

// Name returns the name of the provider
func (p *Provider) Name() string {
	return "github"
}

// 🔍 Fetch retrieves a single file's contents
func (p *Provider) Fetch(ctx context.Context, ref remote.Reference) ([]byte, error) {
	zerolog.Ctx(ctx).Debug().
		Str("owner", ref.Owner).
		Str("repo", ref.Repo).
		Str("path", ref.Path).
		Str("ref", ref.Ref).
		Msg("fetching remote patch file")

	if ref.Owner == "" || ref.Repo == "" || ref.Path == "" {
		return nil, errors.Errorf("invalid reference %s", ref)
	}

	var opts *github.RepositoryContentGetOptions
	if ref.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref.Ref}
	}

	file, dir, _, err := p.client.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		return nil, errors.Errorf("getting file content: %w", err)
	}
	if file == nil {
		return nil, errors.Errorf("%s is a directory with %d entries, not a file", ref.Path, len(dir))
	}

	data, err := file.GetContent()
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return []byte(data), nil
}
