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
	"fmt"
	"strconv"
)

// Color is an enumeration of the text colors a [Span] can carry.
// The zero value is [ColorDefault].
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorBrown
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorPink
	ColorRed
	ColorGrayBackground
	ColorBrownBackground
	ColorOrangeBackground
	ColorYellowBackground
	ColorGreenBackground
	ColorBlueBackground
	ColorPurpleBackground
	ColorPinkBackground
	ColorRedBackground

	numColors
)

var colorNames = [numColors]string{
	ColorDefault:          "default",
	ColorGray:             "gray",
	ColorBrown:            "brown",
	ColorOrange:           "orange",
	ColorYellow:           "yellow",
	ColorGreen:            "green",
	ColorBlue:             "blue",
	ColorPurple:           "purple",
	ColorPink:             "pink",
	ColorRed:              "red",
	ColorGrayBackground:   "gray_background",
	ColorBrownBackground:  "brown_background",
	ColorOrangeBackground: "orange_background",
	ColorYellowBackground: "yellow_background",
	ColorGreenBackground:  "green_background",
	ColorBlueBackground:   "blue_background",
	ColorPurpleBackground: "purple_background",
	ColorPinkBackground:   "pink_background",
	ColorRedBackground:    "red_background",
}

// String returns the color's name as used by the Notion API,
// like "red" or "blue_background".
func (c Color) String() string {
	if c >= numColors {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	return colorNames[c]
}

// IsBackground reports whether c is one of the "*_background" colors.
func (c Color) IsBackground() bool {
	return ColorGrayBackground <= c && c < numColors
}

// ParseColor returns the color with the given name.
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name {
			return Color(c), nil
		}
	}
	return ColorDefault, fmt.Errorf("parse color: unknown color %q", name)
}

// MarshalText returns the color's name.
func (c Color) MarshalText() ([]byte, error) {
	if c >= numColors {
		return nil, fmt.Errorf("marshal color: invalid value %d", uint8(c))
	}
	return []byte(colorNames[c]), nil
}

// UnmarshalText parses a color name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Annotations is the set of formatting applied to a [Span].
// The zero value has every flag unset and uses [ColorDefault].
type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Color         Color
}

// IsZero reports whether a is the default annotation set.
func (a Annotations) IsZero() bool {
	return a == Annotations{}
}

// AnnotationsFromMap resolves a partial annotation map,
// as produced by decoding loosely-typed JSON or YAML.
// Recognized keys are "bold", "italic", "strikethrough", "underline", "code", and "color".
// Absent keys, flags whose values are not booleans,
// and colors that are not known color names all resolve to their defaults.
// Unrecognized keys are ignored.
func AnnotationsFromMap(m map[string]any) Annotations {
	flag := func(key string) bool {
		b, _ := m[key].(bool)
		return b
	}
	a := Annotations{
		Bold:          flag("bold"),
		Italic:        flag("italic"),
		Strikethrough: flag("strikethrough"),
		Underline:     flag("underline"),
		Code:          flag("code"),
	}
	switch v := m["color"].(type) {
	case string:
		a.Color, _ = ParseColor(v)
	case Color:
		if v < numColors {
			a.Color = v
		}
	}
	return a
}

// Span is a run of inline text inside a [Block]
// that carries its own formatting.
type Span struct {
	// Content is the text of the span with any markup removed.
	Content string
	// Link is the URL the span links to
	// or the empty string if the span is not a link.
	Link string
	// Annotations is the formatting applied to Content.
	Annotations Annotations
}

// NewSpan returns a span with the given content, link, and annotations.
func NewSpan(content, link string, ann Annotations) Span {
	return Span{
		Content:     content,
		Link:        link,
		Annotations: ann,
	}
}

// HasLink reports whether the span links to a URL.
func (s Span) HasLink() bool {
	return s.Link != ""
}
