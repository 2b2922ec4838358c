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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL.
//
// Patches are "patch" blocks labelled with their id:
//
//	patch "chat-header" {
//	  search  = "<Button Content=\"New Chat\"/>"
//	  replace = "<Button Content=\"New\"/>"
//	}
//
// Heredocs keep their trailing newline; it is part of the search text.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "patchrc.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"strict":  cty.StringVal("strict"),
			"lenient": cty.StringVal("lenient"),
		},
	}

	// Define HCL schema
	type hclPatch struct {
		ID       string   `hcl:"id,label"`
		Search   string   `hcl:"search"`
		Replace  string   `hcl:"replace"`
		Required *bool    `hcl:"required,optional"`
		Expect   *int     `hcl:"expect,optional"`
		Files    []string `hcl:"files,optional"`
	}
	type hclConfig struct {
		Policy    *string    `hcl:"policy,optional"`
		Documents []string   `hcl:"documents,optional"`
		Patches   []hclPatch `hcl:"patch,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Documents: hclCfg.Documents,
	}
	if hclCfg.Policy != nil {
		cfg.Policy = *hclCfg.Policy
	}
	for _, p := range hclCfg.Patches {
		entry := Patch{
			ID:       p.ID,
			Search:   p.Search,
			Replace:  p.Replace,
			Required: p.Required,
			Files:    p.Files,
		}
		if p.Expect != nil {
			entry.Expect = *p.Expect
		}
		cfg.Patches = append(cfg.Patches, entry)
	}

	return cfg, nil
}
