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
	"sort"
	"strings"
)

// InlineFormat is a bit set of the inline formatting a delimiter applies.
type InlineFormat uint8

const (
	FormatBold InlineFormat = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatCode
)

// apply sets the flags in a that correspond to the bits in f.
func (f InlineFormat) apply(a *Annotations) {
	a.Bold = a.Bold || f&FormatBold != 0
	a.Italic = a.Italic || f&FormatItalic != 0
	a.Strikethrough = a.Strikethrough || f&FormatStrikethrough != 0
	a.Code = a.Code || f&FormatCode != 0
}

// A Delimiter is a marker in the input text.
// Exactly one of Format or Block is non-zero:
// inline delimiters format the text they are attached to,
// block delimiters select the kind of block a line becomes.
type Delimiter struct {
	Marker string
	Format InlineFormat
	Block  BlockKind
}

// delimiterTable is ordered.
// Line classification picks the last block delimiter in this order
// that appears anywhere in the line.
var delimiterTable = [...]Delimiter{
	{Marker: "**", Format: FormatBold},
	{Marker: "_", Format: FormatItalic},
	{Marker: "~", Format: FormatStrikethrough},
	{Marker: "`", Format: FormatCode},
	{Marker: "#", Block: Heading1Kind},
	{Marker: "##", Block: Heading2Kind},
	{Marker: "###", Block: Heading3Kind},
	{Marker: "[]", Block: ToDoKind},
	{Marker: ">", Block: ToggleKind},
	{Marker: "+", Block: BulletedListItemKind},
	{Marker: "'", Block: QuoteKind},
}

// delimitersByLength is delimiterTable sorted longest marker first,
// so that a marker is always tried before any of its prefixes.
var delimitersByLength = func() []Delimiter {
	d := append([]Delimiter(nil), delimiterTable[:]...)
	sort.SliceStable(d, func(i, j int) bool {
		return len(d[i].Marker) > len(d[j].Marker)
	})
	return d
}()

// Delimiters returns the markers the parser recognizes, in table order.
func Delimiters() []Delimiter {
	return append([]Delimiter(nil), delimiterTable[:]...)
}

// delimiterAt returns the longest delimiter that starts at s[i:].
func delimiterAt(s string, i int) (Delimiter, bool) {
	for _, d := range delimitersByLength {
		if strings.HasPrefix(s[i:], d.Marker) {
			return d, true
		}
	}
	return Delimiter{}, false
}

// splitSegments splits line immediately before every delimiter,
// leaving the delimiter at the start of the following segment.
// At each position only the longest matching delimiter is considered
// and the scan resumes after it, so "###" is a single marker.
// A delimiter at the very start of the line does not create a leading empty segment.
// An empty line yields a single empty segment.
func splitSegments(line string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(line); {
		d, ok := delimiterAt(line, i)
		if !ok {
			i++
			continue
		}
		if i > start {
			segments = append(segments, line[start:i])
			start = i
		}
		i += len(d.Marker)
	}
	return append(segments, line[start:])
}

// cleanSegments returns a copy of segments with word-boundary delimiters removed.
// The block marker that opens the line is dropped along with at most one following space.
// After that, a delimiter followed by a comma is replaced by the comma,
// and a delimiter followed by a space is replaced by a single space.
// Segments that end up empty are kept, so indices still line up with segments.
func cleanSegments(segments []string) []string {
	cleaned := make([]string, len(segments))
	for i, s := range segments {
		if i == 0 {
			s = trimLeadingBlockMarker(s)
		}
		for _, d := range delimitersByLength {
			s = strings.ReplaceAll(s, d.Marker+",", ",")
			s = strings.ReplaceAll(s, d.Marker+" ", " ")
		}
		cleaned[i] = s
	}
	return cleaned
}

func trimLeadingBlockMarker(s string) string {
	if len(s) == 0 {
		return s
	}
	d, ok := delimiterAt(s, 0)
	if !ok || d.Block == 0 {
		return s
	}
	s = s[len(d.Marker):]
	return strings.TrimPrefix(s, " ")
}

// stripInline removes every delimiter from a cleaned segment
// and returns the remaining text together with the formatting
// the inline delimiters found in it call for.
// Removal repeats until no delimiter remains,
// since removing one marker can join the halves of another (as in "*[]*").
func stripInline(segment string) (string, Annotations) {
	var ann Annotations
	for changed := true; changed; {
		changed = false
		for _, d := range delimitersByLength {
			if !strings.Contains(segment, d.Marker) {
				continue
			}
			segment = strings.ReplaceAll(segment, d.Marker, "")
			d.Format.apply(&ann)
			changed = true
		}
	}
	return segment, ann
}

// classifyLine reports the block kind selected by the block delimiters in line.
// Every block delimiter is tested for presence anywhere in the line,
// in table order, and the last one found wins.
// This means "[] ## task" is a to-do and "> a + b" is a bulleted list item.
func classifyLine(line string) (kind BlockKind, ok bool) {
	for _, d := range delimiterTable {
		if d.Block != 0 && strings.Contains(line, d.Marker) {
			kind = d.Block
			ok = true
		}
	}
	return kind, ok
}
