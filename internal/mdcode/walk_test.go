package mdcode_test

import (
	"errors"
	"testing"

	"github.com/ezerfernandes/codetabs/internal/mdcode"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "# Title\n" +
	"\n" +
	"```go file=main.go\n" +
	"package main\n" +
	"```\n" +
	"\n" +
	"text\n" +
	"\n" +
	"```python {\"title\": \"demo\"}\n" +
	"print(1)\n" +
	"print(2)\n" +
	"```\n"

func TestUnfence(t *testing.T) {
	t.Parallel()

	blocks, err := mdcode.Unfence([]byte(doc))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, "go", blocks[0].Lang)
	assert.Equal(t, "main.go", blocks[0].Meta.Get("file"))
	assert.Equal(t, "package main\n", string(blocks[0].Code))
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, 5, blocks[0].EndLine)

	assert.Equal(t, "python", blocks[1].Lang)
	assert.Equal(t, "demo", blocks[1].Meta.Get("title"))
	assert.Equal(t, "print(1)\nprint(2)\n", string(blocks[1].Code))
	assert.Equal(t, 9, blocks[1].StartLine)
	assert.Equal(t, 12, blocks[1].EndLine)
}

func TestUnfenceNoBlocks(t *testing.T) {
	t.Parallel()

	blocks, err := mdcode.Unfence([]byte("# nothing\n\nhere\n"))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestWalkStops(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	calls := 0

	err := mdcode.Walk([]byte(doc), func(*mdcode.Block) error {
		calls++

		return errBoom
	})

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestBlockSamples(t *testing.T) {
	t.Parallel()

	src := multilang.Preprocess(multilang.StartMarker + "\n```go\na\n```\n" +
		multilang.DividerMarker + "\n```c\nb\n```\n" + multilang.EndMarker + "\n\n```sh\nls\n```\n")

	blocks, err := mdcode.Unfence([]byte(src))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	require.True(t, blocks[0].IsMultilang())

	samples, err := blocks[0].Samples()
	require.NoError(t, err)
	assert.Equal(t, multilang.Region{{Language: "go", Code: "a"}, {Language: "c", Code: "b"}}, samples)

	samples, err = blocks[1].Samples()
	require.NoError(t, err)
	assert.Equal(t, multilang.Region{{Language: "sh", Code: "ls\n"}}, samples)
}

func TestMetaGet(t *testing.T) {
	t.Parallel()

	var nilMeta mdcode.Meta

	assert.Equal(t, "", nilMeta.Get("file"))
	assert.Equal(t, "3", mdcode.Meta{"n": 3}.Get("n"))
}
