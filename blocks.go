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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Block is a structural element of a document,
// created from a single line of input.
// Blocks are immutable once parsed,
// except that a top-level block may be given children with [*Block.AppendChild].
type Block struct {
	kind     BlockKind
	spans    []Span
	checked  bool
	children []*Block
	isChild  bool
}

// Kind returns the type of block
// or zero if the block is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Spans returns the block's inline text in reading order.
// The returned slice must not be modified.
func (b *Block) Spans() []Span {
	if b == nil {
		return nil
	}
	return b.spans
}

// SpanCount returns the number of spans in the block.
// Calling SpanCount on nil returns 0.
func (b *Block) SpanCount() int {
	if b == nil {
		return 0
	}
	return len(b.spans)
}

// Span returns the i'th span of the block.
func (b *Block) Span(i int) Span {
	return b.spans[i]
}

// Text returns the concatenated content of the block's spans.
func (b *Block) Text() string {
	sb := new(strings.Builder)
	for _, s := range b.Spans() {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// Checked reports whether a [ToDoKind] block is checked.
// It returns false for any other kind of block.
func (b *Block) Checked() bool {
	return b.Kind() == ToDoKind && b.checked
}

// HeadingLevel returns the 1-based level of a heading block
// or zero if the block is not a heading.
func (b *Block) HeadingLevel() int {
	return b.Kind().HeadingLevel()
}

// Children returns the block's child blocks.
// The returned slice must not be modified.
func (b *Block) Children() []*Block {
	if b == nil {
		return nil
	}
	return b.children
}

// ChildCount returns the number of children the block has.
// Calling ChildCount on nil returns 0.
func (b *Block) ChildCount() int {
	if b == nil {
		return 0
	}
	return len(b.children)
}

// Child returns the i'th child of the block.
func (b *Block) Child(i int) *Block {
	return b.children[i]
}

// ErrNestedChildren is returned by [*Block.AppendChild]
// when appending would nest blocks more than one level deep.
var ErrNestedChildren = errors.New("blocks may only be nested one level deep")

// AppendChild adds child to the end of b's children.
// Children cannot themselves have children,
// so AppendChild returns [ErrNestedChildren]
// if b is already a child of another block
// or child already has children.
func (b *Block) AppendChild(child *Block) error {
	if child == nil {
		return fmt.Errorf("append child to %v: nil block", b.Kind())
	}
	if b == child {
		return fmt.Errorf("append child to %v: block cannot contain itself", b.Kind())
	}
	if b.isChild || child.isChild || len(child.children) > 0 {
		return fmt.Errorf("append %v to %v: %w", child.Kind(), b.Kind(), ErrNestedChildren)
	}
	child.isChild = true
	b.children = append(b.children, child)
	return nil
}

func (b *Block) appendSpan(s Span) {
	b.spans = append(b.spans, s)
}

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	Heading1Kind
	Heading2Kind
	Heading3Kind
	ToDoKind
	ToggleKind
	BulletedListItemKind
	QuoteKind

	maxBlockKind = QuoteKind
)

var blockKindNames = [...]string{
	ParagraphKind:        "paragraph",
	Heading1Kind:         "heading_1",
	Heading2Kind:         "heading_2",
	Heading3Kind:         "heading_3",
	ToDoKind:             "to_do",
	ToggleKind:           "toggle",
	BulletedListItemKind: "bulleted_list_item",
	QuoteKind:            "quote",
}

// String returns the block type name used by the Notion API,
// like "paragraph" or "heading_2".
func (kind BlockKind) String() string {
	if !kind.IsValid() {
		return "BlockKind(" + strconv.Itoa(int(kind)) + ")"
	}
	return blockKindNames[kind]
}

// IsValid reports whether kind is one of the defined block kinds.
func (kind BlockKind) IsValid() bool {
	return ParagraphKind <= kind && kind <= maxBlockKind
}

// HeadingLevel returns the 1-based level of a heading kind
// or zero if kind is not a heading kind.
func (kind BlockKind) HeadingLevel() int {
	switch kind {
	case Heading1Kind:
		return 1
	case Heading2Kind:
		return 2
	case Heading3Kind:
		return 3
	default:
		return 0
	}
}

// HeadingKind returns the block kind for a heading of the given level.
// Only levels 1 through 3 are supported.
func HeadingKind(level int) (BlockKind, error) {
	switch level {
	case 1:
		return Heading1Kind, nil
	case 2:
		return Heading2Kind, nil
	case 3:
		return Heading3Kind, nil
	default:
		return 0, fmt.Errorf("heading level %d out of range [1, 3]", level)
	}
}

// InvalidBlockKindError is returned when a block is requested
// with a kind that is not one of the defined [BlockKind] values.
type InvalidBlockKindError struct {
	Kind BlockKind
}

func (e *InvalidBlockKindError) Error() string {
	return "invalid block kind " + e.Kind.String()
}

// NewBlock returns a new block of the given kind
// whose first span is first.
// To-do blocks created by NewBlock are unchecked.
func NewBlock(kind BlockKind, first Span) (*Block, error) {
	return newBlock(kind, false, first)
}

// NewToDo returns a new [ToDoKind] block whose first span is first.
func NewToDo(checked bool, first Span) *Block {
	b, err := newBlock(ToDoKind, checked, first)
	if err != nil {
		panic(err)
	}
	return b
}

// newBlock is the single constructor every block goes through.
// checked is ignored for kinds other than ToDoKind.
func newBlock(kind BlockKind, checked bool, first Span) (*Block, error) {
	b := &Block{
		kind:  kind,
		spans: []Span{first},
	}
	switch kind {
	case ParagraphKind, Heading1Kind, Heading2Kind, Heading3Kind:
	case ToDoKind:
		b.checked = checked
	case ToggleKind, BulletedListItemKind, QuoteKind:
	default:
		return nil, &InvalidBlockKindError{Kind: kind}
	}
	return b, nil
}
