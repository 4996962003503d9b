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
// Package htmlcheck reports structural problems in rendered HTML fragments.
package htmlcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never have an end tag.
var voidElements = map[atom.Atom]struct{}{
	atom.Area:   {},
	atom.Br:     {},
	atom.Col:    {},
	atom.Embed:  {},
	atom.Hr:     {},
	atom.Img:    {},
	atom.Input:  {},
	atom.Link:   {},
	atom.Meta:   {},
	atom.Source: {},
	atom.Wbr:    {},
}

// Balanced reports an error if b contains an end tag
// that does not close the most recently opened element,
// or if any element is left open at the end of b.
func Balanced(b []byte) error {
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var open []string
	for {
		switch tok.Next() {
		case html.ErrorToken:
			if err := tok.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize html: %w", err)
			}
			if len(open) > 0 {
				return fmt.Errorf("unclosed <%s>", open[len(open)-1])
			}
			return nil
		case html.StartTagToken:
			name, _ := tok.TagName()
			if _, void := voidElements[atom.Lookup(name)]; !void {
				open = append(open, string(name))
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if len(open) == 0 {
				return fmt.Errorf("unexpected </%s>", name)
			}
			if top := open[len(open)-1]; top != string(name) {
				return fmt.Errorf("</%s> closes <%s>", name, top)
			}
			open = open[:len(open)-1]
		}
	}
}
