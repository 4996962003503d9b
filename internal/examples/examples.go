// Copyright 2023 Ross Light
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

// Package examples provides a corpus of dialect inputs
// along with the blocks and HTML they are expected to produce.
package examples

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Example is a single input document and its expected output.
type Example struct {
	Name     string  `json:"name"`
	Markdown string  `json:"markdown"`
	Blocks   []Block `json:"blocks"`
	HTML     string  `json:"html"`
}

// Block is the expected shape of a parsed block.
// Kind is the Notion block type name, like "heading_2".
type Block struct {
	Kind    string `json:"kind"`
	Checked bool   `json:"checked,omitempty"`
	Spans   []Span `json:"spans"`
}

// Span is the expected shape of a span.
// Flags that are absent are false.
type Span struct {
	Content       string `json:"content"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Code          bool   `json:"code,omitempty"`
}

//go:embed examples.json
var examplesData []byte

// Load returns the examples in the corpus.
func Load() ([]Example, error) {
	var corpus []Example
	if err := json.Unmarshal(examplesData, &corpus); err != nil {
		return nil, fmt.Errorf("load examples: %w", err)
	}
	return corpus, nil
}
