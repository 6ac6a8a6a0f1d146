package multilang

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CodeBlock is one language variant of a code sample.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Region is the ordered list of variants recovered from one multi-language
// region. The first block is the default tab.
type Region []CodeBlock

// ErrInvalidPayload is returned by [Decode] when a multilang fence body is not
// a usable list of code blocks.
var ErrInvalidPayload = errors.New("invalid multilang payload")

// Encode serializes r as compact JSON. HTML characters are left unescaped so
// the payload reads the same as the samples it carries. U+2028 and U+2029 are
// still escaped and invalid UTF-8 is replaced with U+FFFD.
func Encode(r Region) (string, error) {
	if r == nil {
		r = Region{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(r); err != nil {
		return "", err
	}

	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Decode parses the body of a multilang fence.
func Decode(payload []byte) (Region, error) {
	var r Region

	if err := json.Unmarshal(bytes.TrimSpace(payload), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if len(r) == 0 {
		return nil, fmt.Errorf("%w: no code blocks", ErrInvalidPayload)
	}

	for i, block := range r {
		if len(block.Language) == 0 {
			return nil, fmt.Errorf("%w: block %d has no language", ErrInvalidPayload, i)
		}
	}

	return r, nil
}
