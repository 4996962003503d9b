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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/notionmark/internal/htmlcheck"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty",
			input: "",
			want:  "<p></p>",
		},
		{
			name:  "HeadingAndParagraph",
			input: "# Title\nBody",
			want:  "<h1>Title</h1>\n<p>Body</p>",
		},
		{
			name:  "List",
			input: "+ a\n+ b\nc",
			want:  "<ul><li>a</li><li>b</li></ul>\n<p>c</p>",
		},
		{
			name:  "SplitList",
			input: "+ a\n\n+ b",
			want:  "<ul><li>a</li></ul>\n<p></p>\n<ul><li>b</li></ul>",
		},
		{
			name:  "ToDo",
			input: "[] task",
			want:  `<p class="to-do"><input type="checkbox" disabled>task</p>`,
		},
		{
			name:  "Escaping",
			input: `'q <b & "x"`,
			want:  "<blockquote>q &lt;b &amp; &quot;x&quot;</blockquote>",
		},
		{
			name:  "Inline",
			input: "This is **bold** and _italic_",
			want:  "<p>This is <strong>bold</strong> and <em>italic</em></p>",
		},
		{
			name:  "StrikeAndCode",
			input: "~gone~ and `code`",
			want:  "<p><s>gone</s> and <code>code</code></p>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(strings.Builder)
			if err := RenderHTML(buf, Parse(test.input)); err != nil {
				t.Error("RenderHTML:", err)
			}
			if diff := cmp.Diff(test.want, buf.String()); diff != "" {
				t.Errorf("RenderHTML(Parse(%q)) (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestRenderHTMLChildren(t *testing.T) {
	toggle := ParseLine("> More")
	for _, line := range []string{"+ x", "y"} {
		if err := toggle.AppendChild(ParseLine(line)); err != nil {
			t.Fatal(err)
		}
	}
	item := ParseLine("+ a")
	if err := item.AppendChild(ParseLine("'q")); err != nil {
		t.Fatal(err)
	}
	para := ParseLine("p")
	if err := para.AppendChild(ParseLine("c")); err != nil {
		t.Fatal(err)
	}

	buf := new(strings.Builder)
	if err := RenderHTML(buf, []*Block{toggle, item, para}); err != nil {
		t.Error("RenderHTML:", err)
	}
	want := "<details><summary>More</summary><ul><li>x</li></ul><p>y</p></details>\n" +
		"<ul><li>a<blockquote>q</blockquote></li></ul>\n" +
		"<p>p</p><p>c</p>"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestHTMLRendererSpans(t *testing.T) {
	b, err := NewBlock(ParagraphKind, NewSpan("site", "https://example.com/a b", Annotations{
		Bold:  true,
		Color: ColorRed,
	}))
	if err != nil {
		t.Fatal(err)
	}
	b.appendSpan(NewSpan("", "https://example.com/", Annotations{Underline: true}))
	b.appendSpan(NewSpan("u", "", Annotations{Underline: true}))

	tests := []struct {
		name     string
		renderer *HTMLRenderer
		want     string
	}{
		{
			name:     "Default",
			renderer: &HTMLRenderer{},
			want:     `<p><a href="https://example.com/a%20b"><span class="color-red"><strong>site</strong></span></a><u>u</u></p>`,
		},
		{
			name:     "IgnoreColor",
			renderer: &HTMLRenderer{IgnoreColor: true},
			want:     `<p><a href="https://example.com/a%20b"><strong>site</strong></a><u>u</u></p>`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := string(test.renderer.AppendBlock(nil, b))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppendBlock(t *testing.T) {
	tests := []struct {
		block *Block
		want  string
	}{
		{ParseLine("+ a"), "<ul><li>a</li></ul>"},
		{NewToDo(true, plain("done")), `<p class="to-do"><input type="checkbox" disabled checked>done</p>`},
		{ParseLine("## Sub"), "<h2>Sub</h2>"},
		{ParseLine("### Sub"), "<h3>Sub</h3>"},
	}
	for _, test := range tests {
		got := string(new(HTMLRenderer).AppendBlock([]byte("x"), test.block))
		if want := "x" + test.want; got != want {
			t.Errorf("AppendBlock([]byte(\"x\"), %v block) = %q; want %q", test.block.Kind(), got, want)
		}
	}
}

func TestRenderHTMLWriteError(t *testing.T) {
	wantErr := errors.New("bork")
	err := RenderHTML(failWriter{wantErr}, Parse("a\nb"))
	if !errors.Is(err, wantErr) {
		t.Errorf("RenderHTML(...) = %v; want %v", err, wantErr)
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"", ""},
		{"https://example.com/", "https://example.com/"},
		{"a b", "a%20b"},
		{"http://a/ä", "http://a/%C3%A4"},
		{"%zz", "%25zz"},
		{"%2F", "%2F"},
		{"%2f", "%2f"},
		{"%", "%25"},
		{"x?q=1&r=(2)", "x?q=1&r=(2)"},
	}
	for _, test := range tests {
		if got := NormalizeURI(test.s); got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func FuzzRenderHTML(f *testing.F) {
	f.Add("# Title\n+ a\n+ b\nThis is **bold** and _italic_")
	f.Add("[] task <b>\n' quote & \"x\"")
	f.Add(">**Toggle** `code` :")

	f.Fuzz(func(t *testing.T, input string) {
		buf := new(strings.Builder)
		if err := RenderHTML(buf, Parse(input)); err != nil {
			t.Fatal("RenderHTML:", err)
		}
		if err := htmlcheck.Balanced([]byte(buf.String())); err != nil {
			t.Errorf("RenderHTML(Parse(%q)) = %q: %v", input, buf, err)
		}
	})
}
