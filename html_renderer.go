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
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts blocks into HTML.
//
// Consecutive bulleted list items are grouped into a single list.
// Toggle blocks become <details> elements with their children inside.
// Span colors are rendered as class names of the form "color-NAME",
// for example "color-red_background".
type HTMLRenderer struct {
	// If IgnoreColor is true, the renderer does not emit color classes.
	IgnoreColor bool
}

// RenderHTML writes the given sequence of blocks
// to the given writer as HTML
// using the default options for [HTMLRenderer].
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, blocks []*Block) error {
	return new(HTMLRenderer).Render(w, blocks)
}

// Render writes the given sequence of blocks
// to the given writer as HTML.
// It will return the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, blocks []*Block) error {
	state := &renderState{HTMLRenderer: r}
	for i, b := range blocks {
		state.dst = state.dst[:0]
		if i > 0 && !(state.inList && b.Kind() == BulletedListItemKind) {
			state.closeList()
			state.dst = append(state.dst, '\n')
		}
		state.block(b)
		if i == len(blocks)-1 {
			state.closeList()
		}
		if _, err := w.Write(state.dst); err != nil {
			return fmt.Errorf("render blocks to html: %w", err)
		}
	}
	return nil
}

// AppendBlock appends the rendered HTML of a single block to dst
// and returns the resulting byte slice.
// A bulleted list item is rendered as a complete one-item list.
func (r *HTMLRenderer) AppendBlock(dst []byte, block *Block) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
	}
	state.block(block)
	state.closeList()
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst    []byte
	inList bool
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) openTagClass(name atom.Atom, class string) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, ` class="`...)
	r.dst = escapeHTML(r.dst, class)
	r.dst = append(r.dst, `">`...)
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeList() {
	if r.inList {
		r.closeTag(atom.Ul)
		r.inList = false
	}
}

func (r *renderState) block(block *Block) {
	switch block.Kind() {
	case ParagraphKind:
		r.openTag(atom.P)
		r.spans(block)
		r.closeTag(atom.P)
	case Heading1Kind, Heading2Kind, Heading3Kind:
		var tagName atom.Atom
		switch block.HeadingLevel() {
		case 1:
			tagName = atom.H1
		case 2:
			tagName = atom.H2
		default:
			tagName = atom.H3
		}
		r.openTag(tagName)
		r.spans(block)
		r.closeTag(tagName)
	case ToDoKind:
		r.openTagClass(atom.P, "to-do")
		r.dst = append(r.dst, `<input type="checkbox" disabled`...)
		if block.Checked() {
			r.dst = append(r.dst, ` checked`...)
		}
		r.dst = append(r.dst, '>')
		r.spans(block)
		r.closeTag(atom.P)
	case ToggleKind:
		r.openTag(atom.Details)
		r.openTag(atom.Summary)
		r.spans(block)
		r.closeTag(atom.Summary)
		r.children(block)
		r.closeTag(atom.Details)
		return
	case BulletedListItemKind:
		if !r.inList {
			r.openTag(atom.Ul)
			r.inList = true
		}
		r.openTag(atom.Li)
		r.spans(block)
		r.children(block)
		r.closeTag(atom.Li)
		return
	case QuoteKind:
		r.openTag(atom.Blockquote)
		r.spans(block)
		r.closeTag(atom.Blockquote)
	}
	r.children(block)
}

func (r *renderState) children(parent *Block) {
	if parent.ChildCount() == 0 {
		return
	}
	// Children are rendered with their own list state
	// so that a parent's list is not continued inside them.
	inList := r.inList
	r.inList = false
	for _, c := range parent.Children() {
		if !(r.inList && c.Kind() == BulletedListItemKind) {
			r.closeList()
		}
		r.block(c)
	}
	r.closeList()
	r.inList = inList
}

func (r *renderState) spans(block *Block) {
	for _, s := range block.Spans() {
		r.span(s)
	}
}

// span writes a single span.
// Formatting elements nest in a fixed order:
// link, color, strong, em, s, u, code.
func (r *renderState) span(s Span) {
	if s.Content == "" {
		return
	}
	var closers []atom.Atom
	if s.HasLink() {
		r.dst = append(r.dst, `<a href="`...)
		r.dst = escapeHTML(r.dst, NormalizeURI(s.Link))
		r.dst = append(r.dst, `">`...)
		closers = append(closers, atom.A)
	}
	ann := s.Annotations
	if ann.Color != ColorDefault && !r.IgnoreColor {
		r.openTagClass(atom.Span, "color-"+ann.Color.String())
		closers = append(closers, atom.Span)
	}
	for _, f := range [...]struct {
		set bool
		tag atom.Atom
	}{
		{ann.Bold, atom.Strong},
		{ann.Italic, atom.Em},
		{ann.Strikethrough, atom.S},
		{ann.Underline, atom.U},
		{ann.Code, atom.Code},
	} {
		if f.set {
			r.openTag(f.tag)
			closers = append(closers, f.tag)
		}
	}
	r.dst = escapeHTML(r.dst, s.Content)
	for i := len(closers) - 1; i >= 0; i-- {
		r.closeTag(closers[i])
	}
}

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// escapeHTML appends the HTML-escaped version of a string to a byte slice.
func escapeHTML(dst []byte, src string) []byte {
	return append(dst, htmlEscaper.Replace([]byte(src))...)
}

// NormalizeURI percent-encodes any characters in a string
// that are not reserved or unreserved URI characters.
// This is used for transforming span links into strings suitable for href attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
