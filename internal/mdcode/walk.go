package mdcode

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var reInfo = regexp.MustCompile(`\s*(\w+)\s*(.*)\s*`)

// Walker is a callback invoked for each fenced code block found in a Markdown
// document. Returning an error stops the walk.
type Walker func(block *Block) error

// Walk parses a Markdown document and calls walker for every fenced code
// block, in document order.
func Walk(source []byte, walker Walker) error {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	return ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok || entering {
			return ast.WalkContinue, nil
		}

		block, err := NewBlock(fcb, source)
		if err != nil {
			return ast.WalkStop, err
		}

		if err := walker(block); err != nil {
			return ast.WalkStop, err
		}

		return ast.WalkContinue, nil
	})
}

// NewBlock builds a Block from a parsed fenced code block node.
func NewBlock(fcb *ast.FencedCodeBlock, source []byte) (*Block, error) {
	lang, meta, err := extractInfo(fcb, source)
	if err != nil {
		return nil, err
	}

	block := &Block{Lang: lang, Meta: meta, Code: extractCode(fcb, source)}
	block.StartLine, block.EndLine = extractLines(fcb, source)

	return block, nil
}

func extractLines(fcb *ast.FencedCodeBlock, source []byte) (int, int) {
	var startLine, endLine int

	lines := fcb.Lines()

	switch {
	case fcb.Info != nil:
		startLine = lineAt(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		startLine = lineAt(source, lines.At(0).Start) - 1
	}

	if lines.Len() > 0 {
		endLine = lineAt(source, lines.At(lines.Len()-1).Stop)
	} else if startLine > 0 {
		endLine = startLine + 1
	}

	return startLine, endLine
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

func extractCode(fcb *ast.FencedCodeBlock, source []byte) []byte {
	var buff bytes.Buffer

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		buff.Write(seg.Value(source))
	}

	return buff.Bytes()
}

func extractInfo(fcb *ast.FencedCodeBlock, source []byte) (string, Meta, error) {
	if fcb.Info == nil {
		return "", nil, nil
	}

	return parseInfo(fcb.Info.Segment.Value(source))
}

func parseInfo(info []byte) (string, Meta, error) {
	all := reInfo.FindSubmatch(info)
	if all == nil {
		return "", nil, nil
	}

	meta, err := parseMeta(bytes.TrimSpace(all[2]))

	return string(all[1]), meta, err
}
