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
package notionmark

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/notionmark/internal/notionschema"
)

func TestMarshalJSON(t *testing.T) {
	linked, err := NewBlock(QuoteKind, NewSpan("site", "https://example.com/", Annotations{
		Underline: true,
		Color:     ColorRed,
	}))
	if err != nil {
		t.Fatal(err)
	}
	parent := ParseLine("> More")
	if err := parent.AppendChild(ParseLine("hidden")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "Span",
			value: plain("hi"),
			want: `{
				"type": "text",
				"text": {"content": "hi", "link": null},
				"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
				"plain_text": "hi",
				"href": null
			}`,
		},
		{
			name:  "ToDo",
			value: ParseLine("[] Buy **milk**"),
			want: `{
				"object": "block",
				"type": "to_do",
				"to_do": {
					"rich_text": [
						{
							"type": "text",
							"text": {"content": "Buy ", "link": null},
							"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
							"plain_text": "Buy ",
							"href": null
						},
						{
							"type": "text",
							"text": {"content": "milk", "link": null},
							"annotations": {"bold": true, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
							"plain_text": "milk",
							"href": null
						},
						{
							"type": "text",
							"text": {"content": "", "link": null},
							"annotations": {"bold": true, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
							"plain_text": "",
							"href": null
						}
					],
					"checked": false
				}
			}`,
		},
		{
			name:  "LinkAndColor",
			value: linked,
			want: `{
				"object": "block",
				"type": "quote",
				"quote": {
					"rich_text": [
						{
							"type": "text",
							"text": {"content": "site", "link": {"url": "https://example.com/"}},
							"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": true, "code": false, "color": "red"},
							"plain_text": "site",
							"href": "https://example.com/"
						}
					]
				}
			}`,
		},
		{
			name:  "Children",
			value: ChildrenPayload([]*Block{parent}),
			want: `{
				"children": [
					{
						"object": "block",
						"type": "toggle",
						"toggle": {
							"rich_text": [
								{
									"type": "text",
									"text": {"content": "More", "link": null},
									"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
									"plain_text": "More",
									"href": null
								}
							],
							"children": [
								{
									"object": "block",
									"type": "paragraph",
									"paragraph": {
										"rich_text": [
											{
												"type": "text",
												"text": {"content": "hidden", "link": null},
												"annotations": {"bold": false, "italic": false, "strikethrough": false, "underline": false, "code": false, "color": "default"},
												"plain_text": "hidden",
												"href": null
											}
										]
									}
								}
							]
						}
					}
				]
			}`,
		},
		{
			name:  "EmptyPayload",
			value: ChildrenPayload(nil),
			want:  `{"children": []}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := json.Marshal(test.value)
			if err != nil {
				t.Fatal("json.Marshal:", err)
			}
			var gotValue, wantValue any
			if err := json.Unmarshal(got, &gotValue); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(test.want), &wantValue); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(wantValue, gotValue); diff != "" {
				t.Errorf("json.Marshal(...) = %s; (-want +got):\n%s", got, diff)
			}
		})
	}
}

func TestMarshalJSONInvalidKind(t *testing.T) {
	_, err := json.Marshal(&Block{kind: 99, spans: []Span{plain("x")}})
	var kindErr *InvalidBlockKindError
	if !errors.As(err, &kindErr) {
		t.Errorf("json.Marshal(...) error = %v; want *InvalidBlockKindError", err)
	}
}

func TestMarshalJSONSchema(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.name, func(t *testing.T) {
			blocks := Parse(test.input)
			if err := blocks[0].AppendChild(NewToDo(true, NewSpan("child", "https://example.com/", Annotations{Color: ColorPinkBackground}))); err != nil {
				t.Fatal(err)
			}
			data, err := json.Marshal(ChildrenPayload(blocks))
			if err != nil {
				t.Fatal("json.Marshal:", err)
			}
			if err := notionschema.ValidatePayload(data); err != nil {
				t.Errorf("Parse(%q): %v", test.input, err)
			}
		})
	}
}
