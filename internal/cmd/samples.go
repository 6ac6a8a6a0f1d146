package cmd

import (
	"bytes"

	"github.com/ezerfernandes/codetabs/internal/mdcode"
	"github.com/ezerfernandes/codetabs/internal/multilang"
)

// sample is one code sample of a document: a plain fenced block, or one
// language of a multilang block. line is the opening line in the source the
// user wrote, before preprocessing.
type sample struct {
	index int
	line  int
	block *mdcode.Block
	multilang.CodeBlock
}

// walkSamples preprocesses source and calls fn for every sample passing
// filter. Multilang blocks that cannot be decoded are reported and skipped.
func walkSamples(source []byte, opts *options, fn func(s *sample) error) error {
	index := 0
	content := string(source)
	lines := newLineMap(source, multilang.Matches(content))
	preprocessed := []byte(multilang.Preprocess(content))

	return mdcode.Walk(preprocessed, func(block *mdcode.Block) error {
		line := lines.source(block.StartLine)

		samples, err := block.Samples()
		if err != nil {
			opts.status("warning: skipping block at line %d: %v\n", line, err)

			return nil
		}

		for _, cb := range samples {
			s := &sample{index: index, line: line, block: block, CodeBlock: cb}
			index++

			if opts.filter != nil && !opts.filter(cb.Language, block.Meta) {
				continue
			}

			if err := fn(s); err != nil {
				return err
			}
		}

		return nil
	})
}

// rewrittenLines locates one rewritten region: lines start..end of the
// preprocessed document hold the multilang fence that replaced source lines
// srcStart..srcEnd.
type rewrittenLines struct {
	start, end       int
	srcStart, srcEnd int
}

// lineMap translates line numbers of the preprocessed document back to the
// source document.
type lineMap []rewrittenLines

// fenceLines is the number of line breaks inside a multilang fence. The JSON
// payload never contains a raw newline.
const fenceLines = 2

func newLineMap(source []byte, matches []multilang.Match) lineMap {
	var (
		m     lineMap
		shift int
	)

	for _, match := range matches {
		srcStart := bytes.Count(source[:match.Start], []byte{'\n'}) + 1
		srcEnd := srcStart + bytes.Count(source[match.Start:match.End], []byte{'\n'})
		start := srcStart - shift

		m = append(m, rewrittenLines{start: start, end: start + fenceLines, srcStart: srcStart, srcEnd: srcEnd})
		shift = srcEnd - (start + fenceLines)
	}

	return m
}

func (m lineMap) source(line int) int {
	shift := 0

	for _, r := range m {
		switch {
		case line < r.start:
			return line + shift
		case line < r.end:
			return r.srcStart + line - r.start
		case line == r.end:
			return r.srcEnd
		}

		shift = r.srcEnd - r.end
	}

	return line + shift
}
