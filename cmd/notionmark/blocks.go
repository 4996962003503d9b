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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"zombiezen.com/go/notionmark"
	"zombiezen.com/go/notionmark/internal/config"
	"zombiezen.com/go/notionmark/internal/notionschema"
)

func newBlocksCmd(a *app) *cobra.Command {
	var validate, highlight bool
	c := &cobra.Command{
		Use:   "blocks [FILE]",
		Short: "Print Notion block objects as JSON",
		Long: `Blocks converts the input into Notion block objects.
By default the blocks are wrapped in a {"children": [...]} payload
suitable for appending to a page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(cmd, args)
			if err != nil {
				return err
			}
			data, err := encodeBlocks(doc.blocks, a.cfg.Output, validate)
			if err != nil {
				return err
			}
			if highlight {
				return highlightJSON(cmd.OutOrStdout(), data)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("write blocks: %w", err)
			}
			return nil
		},
	}
	d := config.Default()
	c.Flags().Bool("children", d.Output.Children, "wrap blocks in a children payload")
	c.Flags().String("indent", d.Output.Indent, "JSON indentation (empty for compact output)")
	c.Flags().BoolVar(&validate, "validate", true, "check the output against the Notion block schema")
	c.Flags().BoolVar(&highlight, "highlight", false, "color the JSON for display in a terminal")
	return c
}

// encodeBlocks returns the JSON encoding of blocks followed by a newline.
func encodeBlocks(blocks []*notionmark.Block, opts config.OutputConfig, validate bool) ([]byte, error) {
	payload := notionmark.ChildrenPayload(blocks)
	if validate {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := notionschema.ValidatePayload(data); err != nil {
			return nil, err
		}
	}

	var v any = payload
	if !opts.Children {
		v = payload.Children
	}
	var data []byte
	var err error
	if opts.Indent == "" {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", opts.Indent)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
