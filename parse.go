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

// Package notionmark converts a lightweight, line-oriented Markdown dialect
// into Notion-style blocks.
//
// Every line of input becomes exactly one [Block].
// A line's block kind is chosen by the block markers it contains:
//
//	#  ##  ###   heading levels 1 to 3
//	[]           to-do (unchecked)
//	>            toggle
//	+            bulleted list item
//	'            quote
//
// Lines with no block marker are paragraphs, and blank lines are empty paragraphs.
// Within a line, "**" (bold), "_" (italic), "~" (strikethrough),
// and "`" (code) split the text into [Span] values with their own [Annotations].
// There is no marker for underline.
package notionmark

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Parse converts text into blocks, one per line.
// Lines are separated by "\n";
// a "\r" immediately before the separator is not part of the line.
func Parse(text string) []*Block {
	if strings.IndexByte(text, 0) >= 0 {
		// Contains one or more NUL bytes.
		// Replace with Unicode replacement character.
		text = strings.ReplaceAll(text, "\x00", "\ufffd")
	}
	lines := strings.Split(text, "\n")
	blocks := make([]*Block, 0, len(lines))
	for i, line := range lines {
		if i < len(lines)-1 {
			line = strings.TrimSuffix(line, "\r")
		}
		blocks = append(blocks, ParseLine(line))
	}
	return blocks
}

// ParseLine converts a single line of text into a block.
// The line should not contain a line break.
func ParseLine(line string) *Block {
	kind, ok := classifyLine(line)
	if !ok {
		kind = ParagraphKind
	}
	b, err := assemble(cleanSegments(splitSegments(line)), kind, false)
	if err != nil {
		// classifyLine only returns kinds from the delimiter table.
		panic(err)
	}
	return b
}

// ParseLineAs converts a single line of text into a block of the given kind,
// ignoring any block markers in the line for the purposes of classification.
// checked sets the initial state of a [ToDoKind] block
// and is ignored for other kinds.
// ParseLineAs returns an [*InvalidBlockKindError] if kind is not valid.
func ParseLineAs(line string, kind BlockKind, checked bool) (*Block, error) {
	return assemble(cleanSegments(splitSegments(line)), kind, checked)
}

// assemble builds a block from cleaned segments.
// The first segment becomes the block's first span
// and each subsequent segment is appended as its own span.
func assemble(segments []string, kind BlockKind, checked bool) (*Block, error) {
	var b *Block
	for i, seg := range segments {
		content, ann := stripInline(seg)
		span := NewSpan(content, "", ann)
		if i == 0 {
			var err error
			b, err = newBlock(kind, checked, span)
			if err != nil {
				return nil, err
			}
			continue
		}
		b.appendSpan(span)
	}
	return b, nil
}

// A Parser reads lines from an [io.Reader] and converts each into a [Block].
// Unless NormalizeUnicode is set,
// a Parser yields the same blocks as [Parse] does for the full input.
type Parser struct {
	// If NormalizeUnicode is true,
	// each line is converted to Unicode Normalization Form C before parsing.
	NormalizeUnicode bool

	buf      []byte // unconsumed input
	parsePos int    // parse position within buf
	lineno   int    // line number of the last line read

	r    io.Reader
	err  error // non-nil indicates there is no more data after end of buf
	done bool  // true once the final line has been returned
}

// NewParser returns a parser that reads from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// Line returns the 1-based line number of the block
// most recently returned by [*Parser.NextBlock].
func (p *Parser) Line() int {
	return p.lineno
}

// NextBlock reads the next line and converts it into a block.
// At the end of input, NextBlock returns [io.EOF].
// Since a trailing line break is followed by an empty line,
// input that ends in "\n" produces a final empty paragraph.
func (p *Parser) NextBlock() (*Block, error) {
	if p.done {
		return nil, io.EOF
	}
	line, err := p.readline()
	if err != nil {
		p.done = true
		return nil, err
	}
	if bytes.IndexByte(line, 0) >= 0 {
		line = bytes.ReplaceAll(line, []byte{0}, []byte("\ufffd"))
	}
	if p.NormalizeUnicode {
		line = norm.NFC.Bytes(line)
	}
	return ParseLine(string(line)), nil
}

// readline reads the next line of input without its line ending,
// growing p.buf as necessary.
// It sets p.done when it returns the last line of the input.
func (p *Parser) readline() ([]byte, error) {
	const (
		chunkSize   = 8 * 1024
		maxLineSize = 1024 * 1024
	)

	eolStart, eolEnd := -1, -1
	for {
		if i := bytes.IndexByte(p.buf[p.parsePos:], '\n'); i >= 0 {
			eolEnd = p.parsePos + i + 1
			eolStart = eolEnd - 1
			break
		}

		// If there are no more line endings available,
		// but we're at EOF, the rest of the buffer is the last line.
		if p.err != nil {
			if p.err != io.EOF {
				return nil, fmt.Errorf("line %d: %w", p.lineno+1, p.err)
			}
			eolStart = len(p.buf)
			eolEnd = len(p.buf)
			p.done = true
			break
		}

		if len(p.buf)-p.parsePos >= maxLineSize {
			return nil, fmt.Errorf("line %d: line too long", p.lineno+1)
		}

		// Drop consumed bytes before reading more.
		if p.parsePos > 0 {
			n := copy(p.buf, p.buf[p.parsePos:])
			p.buf = p.buf[:n]
			p.parsePos = 0
		}
		newSize := len(p.buf) + chunkSize
		if cap(p.buf) < newSize {
			newbuf := make([]byte, len(p.buf), newSize)
			copy(newbuf, p.buf)
			p.buf = newbuf
		}
		var n int
		n, p.err = p.r.Read(p.buf[len(p.buf):newSize])
		p.buf = p.buf[:len(p.buf)+n]
	}

	line := p.buf[p.parsePos:eolStart]
	if eolEnd > eolStart {
		line = bytes.TrimSuffix(line, []byte("\r"))
	}
	p.parsePos = eolEnd
	p.lineno++
	return line, nil
}
