package multilang_test

import (
	"strings"
	"testing"

	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fence = "```"

func region(parts ...string) string {
	return multilang.StartMarker + "\n" +
		strings.Join(parts, "\n"+multilang.DividerMarker+"\n") +
		"\n" + multilang.EndMarker
}

func code(lang, body string) string {
	return fence + lang + "\n" + body + "\n" + fence
}

// payload returns the decoded body of the only multilang fence in out.
func payload(t *testing.T, out string) multilang.Region {
	t.Helper()

	open := fence + multilang.Lang + "\n"

	require.Equal(t, 1, strings.Count(out, open))

	start := strings.Index(out, open) + len(open)
	end := strings.Index(out[start:], "\n"+fence)
	require.GreaterOrEqual(t, end, 0)

	blocks, err := multilang.Decode([]byte(out[start : start+end]))
	require.NoError(t, err)

	return blocks
}

func TestPreprocessExample(t *testing.T) {
	t.Parallel()

	in := "<!-- MULTILANG_START -->\n```python\nprint(1)\n```\n<!-- LANG_DIVIDER -->\n```cpp\nint x=1;\n```\n<!-- MULTILANG_END -->"

	out := multilang.Preprocess(in)

	assert.Equal(t, "```multilang\n"+`[{"language":"python","code":"print(1)"},{"language":"cpp","code":"int x=1;"}]`+"\n```", out)
	assert.Equal(t, multilang.Region{
		{Language: "python", Code: "print(1)"},
		{Language: "cpp", Code: "int x=1;"},
	}, payload(t, out))
}

func TestPreprocessIdentity(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"# Title\nSome text",
		"```go\nfmt.Println()\n```",
		multilang.EndMarker + " stray end",
		multilang.StartMarker + " never closed " + code("go", "x"),
	} {
		assert.Equal(t, in, multilang.Preprocess(in))
	}
}

func TestPreprocessNoFenceKeepsRegion(t *testing.T) {
	t.Parallel()

	in := "intro\n" + region("just some prose, no code") + "\noutro"

	assert.Equal(t, in, multilang.Preprocess(in))
}

func TestPreprocessSkipsMalformedParts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  multilang.Region
	}{
		{
			name:  "first part prose",
			parts: []string{"prose", code("java", "int a;")},
			want:  multilang.Region{{Language: "java", Code: "int a;"}},
		},
		{
			name:  "untagged fence",
			parts: []string{fence + "\nplain\n" + fence, code("go", "x := 1")},
			want:  multilang.Region{{Language: "go", Code: "x := 1"}},
		},
		{
			name:  "unclosed fence",
			parts: []string{code("ruby", "puts 1"), fence + "rust\nfn main() {}"},
			want:  multilang.Region{{Language: "ruby", Code: "puts 1"}},
		},
		{
			name:  "first fence only",
			parts: []string{code("python", "a") + "\n" + code("python", "b")},
			want:  multilang.Region{{Language: "python", Code: "a"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, payload(t, multilang.Preprocess(region(tt.parts...))))
		})
	}
}

func TestPreprocessTrimming(t *testing.T) {
	t.Parallel()

	body := "def f():\n\n    return 1"
	in := region(fence + "python\n\n\n  " + body + "  \n\n" + fence)

	blocks := payload(t, multilang.Preprocess(in))
	require.Len(t, blocks, 1)
	assert.Equal(t, body, blocks[0].Code)
}

func TestPreprocessIndependentRegions(t *testing.T) {
	t.Parallel()

	bad := region("no code here")
	good := region(code("go", "a"), code("c", "b"))
	in := "# A\n" + bad + "\n\ntext\n\n" + good + "\n# B\n"

	out := multilang.Preprocess(in)

	assert.True(t, strings.HasPrefix(out, "# A\n"+bad+"\n\ntext\n\n"))
	assert.True(t, strings.HasSuffix(out, "\n# B\n"))
	assert.NotContains(t, out, multilang.EndMarker+"\n# B")
	assert.Equal(t, multilang.Region{
		{Language: "go", Code: "a"},
		{Language: "c", Code: "b"},
	}, payload(t, out))
}

func TestPreprocessSecondPassIsNoop(t *testing.T) {
	t.Parallel()

	once := multilang.Preprocess(region(code("go", "a")))

	assert.Equal(t, once, multilang.Preprocess(once))
}

func TestPreprocessKeepsHTMLCharacters(t *testing.T) {
	t.Parallel()

	out := multilang.Preprocess(region(code("cpp", "#include <vector>\nif (a && b) {}")))

	assert.Contains(t, out, `#include <vector>\nif (a && b) {}`)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	in := region(code("go", "a")) + "\n" + region("prose") + "\n" + region(code("py", "b"), code("js", "c"))

	regions := multilang.Extract(in)
	require.Len(t, regions, 2)
	assert.Equal(t, "go", regions[0][0].Language)
	assert.Equal(t, []string{"py", "js"}, []string{regions[1][0].Language, regions[1][1].Language})
}

func TestMatches(t *testing.T) {
	t.Parallel()

	first := region(code("go", "a"))
	in := "intro\n" + first + "\n" + region("prose") + "\n"

	matches := multilang.Matches(in)
	require.Len(t, matches, 1)
	assert.Equal(t, len("intro\n"), matches[0].Start)
	assert.Equal(t, len("intro\n")+len(first), matches[0].End)
	assert.Equal(t, multilang.Region{{Language: "go", Code: "a"}}, matches[0].Blocks)
}
