package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ezerfernandes/codetabs/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = "# Hello\n" +
	"\n" +
	"```go\nfmt.Println(1)\n```\n" +
	"\n" +
	"<!-- MULTILANG_START -->\n" +
	"```python\nprint(1)\n```\n" +
	"<!-- LANG_DIVIDER -->\n" +
	"```cpp\nint x = 1;\n```\n" +
	"<!-- MULTILANG_END -->\n"

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := cmd.Run(args, strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestPreprocessStdin(t *testing.T) {
	t.Parallel()

	out, status, err := run(t, article, "preprocess")
	require.NoError(t, err)

	assert.Contains(t, out, "```go\nfmt.Println(1)\n```")
	assert.Contains(t, out, "```multilang\n"+`[{"language":"python","code":"print(1)"},{"language":"cpp","code":"int x = 1;"}]`+"\n```")
	assert.NotContains(t, out, "MULTILANG_START")
	assert.Equal(t, "1 region(s) rewritten\n", status)
}

func TestPreprocessOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.md")
	outFile := filepath.Join(dir, "out.md")

	require.NoError(t, os.WriteFile(in, []byte(article), 0o600))

	out, status, err := run(t, "", "preprocess", "-q", "-o", outFile, in)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, status)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "```multilang\n")
}

func TestPreprocessMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "", "preprocess", filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, article, "render")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, `<div class="multilang" data-default="python">`)
	assert.Contains(t, out, `<div class="code" data-lang="go">`)
}

func TestRenderTerm(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, article, "render", "--format", "term", "--style", "notty")
	require.NoError(t, err)

	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "C++")
	assert.NotContains(t, out, "multilang")
}

func TestRenderTermConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "codetabs.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("render:\n  term_style: notty\n  width: 20\n"), 0o600))

	paragraph := strings.TrimSpace(strings.Repeat("lorem ", 30)) + "\n"

	out, _, err := run(t, paragraph, "render", "--config", cfgFile, "--format", "term")
	require.NoError(t, err)

	var text []string

	for _, line := range strings.Split(out, "\n") {
		if len(strings.TrimSpace(line)) != 0 {
			text = append(text, line)
		}

		assert.LessOrEqual(t, len(line), 30, line)
	}

	assert.GreaterOrEqual(t, len(text), 6)
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, article, "render", "--format", "pdf")
	require.ErrorContains(t, err, "unknown output format")
}

func TestTabs(t *testing.T) {
	t.Parallel()

	out, status, err := run(t, article, "tabs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"#", "Line", "Kind", "Lang", "Label"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "3", "block", "go", "Go"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "7", "tab", "python", "Python"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "7", "tab", "cpp", "C++"}, strings.Fields(lines[3]))
	assert.Equal(t, "3 samples\n", status)
}

const regionFirst = "# Hello\n" +
	"\n" +
	"<!-- MULTILANG_START -->\n" +
	"```python\nprint(1)\n```\n" +
	"<!-- LANG_DIVIDER -->\n" +
	"```cpp\nint x = 1;\n```\n" +
	"<!-- MULTILANG_END -->\n" +
	"\n" +
	"```go\nfmt.Println(1)\n```\n"

func TestTabsSourceLines(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, regionFirst, "tabs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"0", "3", "tab", "python", "Python"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "3", "tab", "cpp", "C++"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "13", "block", "go", "Go"}, strings.Fields(lines[3]))
}

func TestTabsFilter(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, article, "tabs", "--lang", "c*")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"2", "7", "tab", "cpp", "C++"}, strings.Fields(lines[1]))
}

func TestTabsEmpty(t *testing.T) {
	t.Parallel()

	out, status, err := run(t, "just text\n", "tabs")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "no code samples found\n", status)
}

func TestExecPerSample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out, _, err := run(t, article, "exec", "-q", "--dir", dir, "--", "echo", "{lang}", "{index}")
	require.NoError(t, err)
	assert.Equal(t, "go 0\npython 1\ncpp 2\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "sample_1.py"))
	require.NoError(t, err)
	assert.Equal(t, "print(1)", string(data))
}

func TestExecStatusSourceLines(t *testing.T) {
	t.Parallel()

	_, status, err := run(t, regionFirst, "exec", "--dir", t.TempDir(), "--lang", "go", "--", "true")
	require.NoError(t, err)
	assert.Equal(t, "--- sample 2 (go) : L13 ---\n", status)
}

func TestExecFilter(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, article, "exec", "-q", "--dir", t.TempDir(), "--lang", "py*", "--", "echo", "{lang}")
	require.NoError(t, err)
	assert.Equal(t, "python\n", out)
}

func TestExecBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	out, _, err := run(t, article, "exec", "-q", "--dir", dir, "--batch", "--", "echo", "{}")
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		filepath.Join(abs, "sample_0.go"),
		filepath.Join(abs, "sample_1.py"),
		filepath.Join(abs, "sample_2.cpp"),
	}, " ")+"\n", out)
}

func TestExecFailures(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, article, "exec", "-q", "--dir", t.TempDir(), "--", "exit", "3")
	require.ErrorContains(t, err, "3 sample(s) failed")
}

func TestExecMissingCommand(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, article, "exec", "--dir", t.TempDir())
	require.ErrorContains(t, err, "command is required")
}

func TestTooManyArgs(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "", "exec", "a.md", "b.md", "--", "true")
	require.ErrorContains(t, err, "at most one input file")
}
