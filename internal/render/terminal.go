package render

import (
	"bytes"

	"github.com/charmbracelet/glamour"
	"github.com/ezerfernandes/codetabs/internal/mdcode"
	"github.com/ezerfernandes/codetabs/internal/metrics"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Terminal renders Markdown for a terminal. Tab groups cannot be shown there,
// so each language of a multilang fence is printed in turn under its label.
type Terminal struct {
	tr *glamour.TermRenderer
}

// NewTerminal returns a terminal renderer wrapping at width columns. An empty
// style picks one from the terminal background.
func NewTerminal(width int, style string) (*Terminal, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}

	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return &Terminal{tr: tr}, nil
}

// Render returns the terminal rendering of a preprocessed Markdown document.
func (t *Terminal) Render(source []byte) (string, error) {
	out, err := t.tr.RenderBytes(Expand(source))
	if err != nil {
		return "", err
	}

	metrics.ArticlesRendered.WithLabelValues("term").Inc()

	return string(out), nil
}

// Expand rewrites every multilang fence of source into one labelled fence per
// language. Fences whose payload cannot be decoded become an error notice.
// Only fences the Markdown parser sees are expanded, so a multilang fence
// quoted inside another code block is left alone.
func Expand(source []byte) []byte {
	var blocks []*mdcode.Block

	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok || !entering || string(fcb.Language(source)) != multilang.Lang {
			return ast.WalkContinue, nil
		}

		if block, err := mdcode.NewBlock(fcb, source); err == nil {
			blocks = append(blocks, block)
		}

		return ast.WalkSkipChildren, nil
	})

	if len(blocks) == 0 {
		return source
	}

	offsets := lineOffsets(source)

	var (
		res bytes.Buffer
		idx int
	)

	for _, block := range blocks {
		start, end := lineSpan(offsets, len(source), block.StartLine, block.EndLine)
		if start < idx {
			continue
		}

		res.Write(source[idx:start])
		res.Write(expandBlock(block))

		idx = end
	}

	res.Write(source[idx:])

	return res.Bytes()
}

func expandBlock(block *mdcode.Block) []byte {
	samples, err := block.Samples()
	if err != nil {
		metrics.RenderErrors.Inc()

		return []byte("> Error rendering code block")
	}

	var buf bytes.Buffer

	for i, sample := range samples {
		if i > 0 {
			buf.WriteString("\n\n")
		}

		buf.WriteString("**" + multilang.DisplayName(sample.Language) + "**\n\n")
		buf.WriteString("```" + sample.Language + "\n" + sample.Code + "\n```")
	}

	return buf.Bytes()
}

// lineOffsets returns the byte offset at which every line of source starts.
func lineOffsets(source []byte) []int {
	offsets := []int{0}

	for i, c := range source {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// lineSpan returns the byte range covering 1-based lines first..last, without
// the line break that ends the last one.
func lineSpan(offsets []int, size, first, last int) (int, int) {
	start := offsets[first-1]
	end := size

	if last < len(offsets) {
		end = offsets[last] - 1
	}

	return start, end
}
