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

// Package format provides a function to write blocks
// back out in the notionmark Markdown dialect.
package format

import (
	"io"

	"zombiezen.com/go/notionmark"
)

// Format writes the given blocks to the given writer,
// one line per block, separated by "\n".
// Children are written on the lines following their parent,
// since the dialect has no nesting.
//
// The dialect cannot express everything a block can hold:
// to-do blocks are always written unchecked,
// and underline, color, and links are dropped.
// Text is not escaped, so content containing delimiter characters
// will not parse back to the same blocks.
func Format(w io.Writer, blocks []*notionmark.Block) error {
	ww := &errWriter{w: w}
	n := 0
	notionmark.Walk(blocks, &notionmark.WalkOptions{
		Pre: func(c *notionmark.Cursor) bool {
			if n > 0 {
				ww.WriteString("\n")
			}
			n++
			writeBlock(ww, c.Block())
			return ww.err == nil
		},
	})
	return ww.err
}

func writeBlock(w *errWriter, b *notionmark.Block) {
	if marker := blockMarker(b.Kind()); marker != "" {
		w.WriteString(marker)
		w.WriteString(" ")
	}
	for _, s := range b.Spans() {
		if s.Content == "" {
			continue
		}
		markers := inlineMarkers(s.Annotations)
		for _, m := range markers {
			w.WriteString(m)
		}
		w.WriteString(s.Content)
		for i := len(markers) - 1; i >= 0; i-- {
			w.WriteString(markers[i])
		}
	}
}

// blockMarker returns the delimiter that introduces a block of the given kind
// or the empty string for paragraphs.
func blockMarker(kind notionmark.BlockKind) string {
	for _, d := range notionmark.Delimiters() {
		if d.Block == kind {
			return d.Marker
		}
	}
	return ""
}

// inlineMarkers returns the delimiters for the formatting in ann,
// in delimiter table order.
func inlineMarkers(ann notionmark.Annotations) []string {
	var markers []string
	for _, d := range notionmark.Delimiters() {
		var set bool
		switch d.Format {
		case notionmark.FormatBold:
			set = ann.Bold
		case notionmark.FormatItalic:
			set = ann.Italic
		case notionmark.FormatStrikethrough:
			set = ann.Strikethrough
		case notionmark.FormatCode:
			set = ann.Code
		}
		if set {
			markers = append(markers, d.Marker)
		}
	}
	return markers
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
