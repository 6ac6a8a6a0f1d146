// Package mdcode walks the fenced code blocks of a Markdown document.
package mdcode

import "github.com/ezerfernandes/codetabs/internal/multilang"

// Block is one fenced code block. Lines are 1-based and refer to the opening
// and closing fence lines.
type Block struct {
	Lang      string
	Meta      Meta
	Code      []byte
	StartLine int
	EndLine   int
}

// Blocks is a list of fenced code blocks in document order.
type Blocks []*Block

// IsMultilang reports whether the block carries a multilang payload.
func (b *Block) IsMultilang() bool {
	return b.Lang == multilang.Lang
}

// Samples returns the code samples carried by the block: the decoded
// variants of a multilang block, or the block itself otherwise.
func (b *Block) Samples() (multilang.Region, error) {
	if !b.IsMultilang() {
		return multilang.Region{{Language: b.Lang, Code: string(b.Code)}}, nil
	}

	return multilang.Decode(b.Code)
}
