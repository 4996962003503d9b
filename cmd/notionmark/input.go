// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/notionmark"
)

// document is a parsed input file.
type document struct {
	meta   frontMatter
	blocks []*notionmark.Block
}

// frontMatter is the optional YAML header of an input file.
type frontMatter struct {
	Title string `yaml:"title"`

	// NormalizeUnicode overrides the parse.normalize_unicode setting when present.
	NormalizeUnicode *bool `yaml:"normalize_unicode"`
}

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// splitFrontMatter separates a leading "---" delimited YAML header from the body.
// Input without a header is returned unchanged.
func splitFrontMatter(data []byte) (frontMatter, []byte, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta, yamlFrontMatter)
	if err != nil {
		return frontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, body, nil
}

// readDocument reads and parses the file named in args,
// or standard input if there is none.
func (a *app) readDocument(cmd *cobra.Command, args []string) (*document, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	a.logger.Debug("read input", "name", name, "size", humanize.Bytes(uint64(len(data))))

	doc := new(document)
	body := data
	if a.cfg.Parse.FrontMatter {
		doc.meta, body, err = splitFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	p := notionmark.NewParser(bytes.NewReader(body))
	p.NormalizeUnicode = a.cfg.Parse.NormalizeUnicode
	if doc.meta.NormalizeUnicode != nil {
		p.NormalizeUnicode = *doc.meta.NormalizeUnicode
	}
	for {
		b, err := p.NextBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc.blocks = append(doc.blocks, b)
	}
	a.logger.Debug("parsed input", "name", name, "title", doc.meta.Title, "blocks", humanize.Comma(int64(len(doc.blocks))))
	return doc, nil
}
