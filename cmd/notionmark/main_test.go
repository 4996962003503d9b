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
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the command with the given arguments and standard input
// in an empty working directory.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestBlocks(t *testing.T) {
	stdout, _, err := run(t, "# Hi\n[] task", "blocks", "--indent=")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stdout, "\n"), "compact output should be one line")

	var got struct {
		Children []map[string]any `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Children, 2)
	assert.Equal(t, "heading_1", got.Children[0]["type"])
	assert.Equal(t, "to_do", got.Children[1]["type"])
	body, ok := got.Children[1]["to_do"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, body["checked"])
}

func TestBlocksWithoutPayload(t *testing.T) {
	stdout, _, err := run(t, "' quote", "blocks", "--children=false")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "[\n  {"), "output = %q", stdout)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "quote", got[0]["type"])
}

func TestBlocksHighlight(t *testing.T) {
	plain, _, err := run(t, "+ **hi**", "blocks")
	require.NoError(t, err)
	colored, _, err := run(t, "+ **hi**", "blocks", "--highlight")
	require.NoError(t, err)
	assert.NotEqual(t, plain, colored)
	assert.JSONEq(t, plain, ansi.Strip(colored))
}

func TestHTML(t *testing.T) {
	stdout, _, err := run(t, "# Hi\n+ a\n+ **b**", "html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>\n<ul><li>a</li><li><strong>b</strong></li></ul>\n", stdout)
}

func TestFmt(t *testing.T) {
	stdout, _, err := run(t, "##Two\n[]x\nplain", "fmt")
	require.NoError(t, err)
	assert.Equal(t, "## Two\n[] x\nplain\n", stdout)
}

func TestFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("+ from file"), 0o644))

	stdout, _, err := run(t, "ignored", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "+ from file\n", stdout)

	_, _, err = run(t, "", "fmt", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestFrontMatter(t *testing.T) {
	const input = "---\ntitle: Groceries\n---\n+ eggs"

	stdout, _, err := run(t, input, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "+ eggs\n", stdout)

	stdout, _, err = run(t, input, "fmt", "--front-matter=false")
	require.NoError(t, err)
	assert.Equal(t, input+"\n", stdout)

	stdout, _, err = run(t, input, "preview")
	require.NoError(t, err)
	assert.Equal(t, "Groceries\n\n• eggs\n", ansi.Strip(stdout))
}

func TestNormalizeUnicode(t *testing.T) {
	const input = "cafe\u0301"

	stdout, _, err := run(t, input, "fmt", "--nfc")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9\n", stdout)

	stdout, _, err = run(t, "---\nnormalize_unicode: true\n---\n"+input, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9\n", stdout)

	stdout, _, err = run(t, input, "fmt")
	require.NoError(t, err)
	assert.Equal(t, input+"\n", stdout)
}

func TestPreview(t *testing.T) {
	stdout, _, err := run(t, "[] task\n> more", "preview")
	require.NoError(t, err)
	assert.Equal(t, "[ ] task\n▸ more\n", ansi.Strip(stdout))
}

func TestPreviewWidth(t *testing.T) {
	stdout, _, err := run(t, "one two three four five", "preview", "--width=10")
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree four\nfive\n", ansi.Strip(stdout))
}

func TestConfig(t *testing.T) {
	stdout, _, err := run(t, "", "config", "--nfc")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "info", got["log_level"])
	parse, ok := got["parse"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, parse["normalize_unicode"])
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  ignore_color: true\n"), 0o644))

	stdout, _, err := run(t, "", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ignore_color: true")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("NOTIONMARK_LOG_LEVEL", "loud")
	_, _, err := run(t, "x", "fmt")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := run(t, "a\nb", "fmt", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "read input")
	assert.Contains(t, stderr, "size=")

	_, stderr, err = run(t, "a\nb", "fmt")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "notionmark dev\n", stdout)
}

// chdir changes the working directory to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Error(err)
		}
	})
}
