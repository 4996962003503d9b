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

package notionmark

import (
	"encoding/json"
	"fmt"
)

// jsonAnnotations is the wire form of [Annotations].
type jsonAnnotations struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Code          bool  `json:"code"`
	Color         Color `json:"color"`
}

type jsonLink struct {
	URL string `json:"url"`
}

type jsonText struct {
	Content string    `json:"content"`
	Link    *jsonLink `json:"link"`
}

type jsonRichText struct {
	Type        string          `json:"type"`
	Text        jsonText        `json:"text"`
	Annotations jsonAnnotations `json:"annotations"`
	PlainText   string          `json:"plain_text"`
	Href        *string         `json:"href"`
}

// MarshalJSON encodes the annotations as a Notion annotations object.
func (a Annotations) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonAnnotations(a))
}

// MarshalJSON encodes the span as a Notion rich text object of type "text".
func (s Span) MarshalJSON() ([]byte, error) {
	rt := jsonRichText{
		Type:        "text",
		Text:        jsonText{Content: s.Content},
		Annotations: jsonAnnotations(s.Annotations),
		PlainText:   s.Content,
	}
	if s.HasLink() {
		link := s.Link
		rt.Text.Link = &jsonLink{URL: link}
		rt.Href = &link
	}
	return json.Marshal(rt)
}

type jsonBlockBody struct {
	RichText []Span   `json:"rich_text"`
	Checked  *bool    `json:"checked,omitempty"`
	Children []*Block `json:"children,omitempty"`
}

// MarshalJSON encodes the block as a Notion block object.
func (b *Block) MarshalJSON() ([]byte, error) {
	if !b.Kind().IsValid() {
		return nil, fmt.Errorf("marshal block: %w", &InvalidBlockKindError{Kind: b.Kind()})
	}
	body := jsonBlockBody{
		RichText: b.Spans(),
		Children: b.Children(),
	}
	if body.RichText == nil {
		body.RichText = []Span{}
	}
	if b.Kind() == ToDoKind {
		checked := b.Checked()
		body.Checked = &checked
	}
	typ := b.Kind().String()
	return json.Marshal(map[string]any{
		"object": "block",
		"type":   typ,
		typ:      body,
	})
}

// Payload is the request body for appending blocks to a Notion page or block.
type Payload struct {
	Children []*Block `json:"children"`
}

// ChildrenPayload wraps blocks in a [Payload].
func ChildrenPayload(blocks []*Block) Payload {
	if blocks == nil {
		blocks = []*Block{}
	}
	return Payload{Children: blocks}
}
