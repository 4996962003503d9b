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

// Package preview renders blocks for display in a terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"zombiezen.com/go/notionmark"
)

// A Renderer draws blocks with terminal styling.
type Renderer struct {
	// Renderer is the lipgloss renderer used to build styles.
	// If nil, lipgloss.DefaultRenderer() is used.
	Renderer *lipgloss.Renderer

	// If Width is positive, lines are word-wrapped to fit in Width columns.
	Width int
}

// indentWidth is the number of columns children are indented by.
const indentWidth = 2

// Render writes one line per block to w,
// or more if the block does not fit in r.Width.
// Children appear below their parent, indented.
func (r *Renderer) Render(w io.Writer, blocks []*notionmark.Block) error {
	lr := r.Renderer
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	var err error
	notionmark.Walk(blocks, &notionmark.WalkOptions{
		Pre: func(c *notionmark.Cursor) bool {
			indent := strings.Repeat(" ", c.Depth()*indentWidth)
			body := renderBlock(lr, c.Block())
			if r.Width > 0 {
				body = wordwrap.String(body, max(r.Width-len(indent), 1))
				body = strings.ReplaceAll(body, "\n", "\n"+indent)
			}
			_, err = io.WriteString(w, indent+body+"\n")
			return err == nil
		},
		Post: func(c *notionmark.Cursor) bool {
			return err == nil
		},
	})
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}

func renderBlock(lr *lipgloss.Renderer, b *notionmark.Block) string {
	sb := new(strings.Builder)
	sb.WriteString(glyph(lr, b))
	base := lr.NewStyle()
	switch b.Kind() {
	case notionmark.Heading1Kind, notionmark.Heading2Kind, notionmark.Heading3Kind:
		base = base.Bold(true)
	case notionmark.QuoteKind:
		base = base.Italic(true)
	case notionmark.ToDoKind:
		if b.Checked() {
			base = base.Strikethrough(true).Faint(true)
		}
	}
	for _, s := range b.Spans() {
		if s.Content == "" {
			continue
		}
		sb.WriteString(spanStyle(base, s.Annotations).Render(s.Content))
		if s.HasLink() {
			sb.WriteString(lr.NewStyle().Faint(true).Render(" <" + s.Link + ">"))
		}
	}
	return sb.String()
}

// glyph returns the prefix that marks the kind of a block.
func glyph(lr *lipgloss.Renderer, b *notionmark.Block) string {
	marker := lr.NewStyle().Foreground(lipgloss.Color("245"))
	switch b.Kind() {
	case notionmark.Heading1Kind, notionmark.Heading2Kind, notionmark.Heading3Kind:
		return marker.Render(strings.Repeat("#", b.HeadingLevel())) + " "
	case notionmark.ToDoKind:
		if b.Checked() {
			return marker.Render("[x]") + " "
		}
		return marker.Render("[ ]") + " "
	case notionmark.ToggleKind:
		return marker.Render("▸") + " "
	case notionmark.BulletedListItemKind:
		return marker.Render("•") + " "
	case notionmark.QuoteKind:
		return marker.Render("│") + " "
	default:
		return ""
	}
}

func spanStyle(base lipgloss.Style, ann notionmark.Annotations) lipgloss.Style {
	style := base
	if ann.Bold {
		style = style.Bold(true)
	}
	if ann.Italic {
		style = style.Italic(true)
	}
	if ann.Strikethrough {
		style = style.Strikethrough(true)
	}
	if ann.Underline {
		style = style.Underline(true)
	}
	if ann.Code {
		style = style.Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236"))
	}
	if c, ok := terminalColors[ann.Color]; ok {
		if ann.Color.IsBackground() {
			style = style.Background(c)
		} else {
			style = style.Foreground(c)
		}
	}
	return style
}

// terminalColors maps span colors to ANSI 256-color codes.
var terminalColors = map[notionmark.Color]lipgloss.Color{
	notionmark.ColorGray:             "245",
	notionmark.ColorBrown:            "130",
	notionmark.ColorOrange:           "208",
	notionmark.ColorYellow:           "220",
	notionmark.ColorGreen:            "34",
	notionmark.ColorBlue:             "33",
	notionmark.ColorPurple:           "135",
	notionmark.ColorPink:             "205",
	notionmark.ColorRed:              "160",
	notionmark.ColorGrayBackground:   "238",
	notionmark.ColorBrownBackground:  "94",
	notionmark.ColorOrangeBackground: "166",
	notionmark.ColorYellowBackground: "178",
	notionmark.ColorGreenBackground:  "22",
	notionmark.ColorBlueBackground:   "24",
	notionmark.ColorPurpleBackground: "54",
	notionmark.ColorPinkBackground:   "169",
	notionmark.ColorRedBackground:    "88",
}
