// Package multilang rewrites multi-language code regions of an article into
// single "multilang" fences that a renderer shows as a tabbed code viewer.
//
// A region looks like this:
//
//	<!-- MULTILANG_START -->
//	```python
//	print(1)
//	```
//	<!-- LANG_DIVIDER -->
//	```cpp
//	int x = 1;
//	```
//	<!-- MULTILANG_END -->
//
// and becomes a fence tagged multilang whose body is the JSON list of
// {language, code} pairs.
package multilang

import (
	"regexp"
	"strings"

	"github.com/ezerfernandes/codetabs/internal/region"
)

const (
	StartMarker   = "<!-- MULTILANG_START -->"
	DividerMarker = "<!-- LANG_DIVIDER -->"
	EndMarker     = "<!-- MULTILANG_END -->"

	// Lang is the fence tag the renderer dispatches on.
	Lang = "multilang"
)

var (
	scanner = region.New(StartMarker, EndMarker)
	reFence = regexp.MustCompile("(?s)```(\\w+)\\s*(.*?)```")
)

// Preprocess replaces every multi-language region of content with a multilang
// fence. Parts without a fenced block are skipped, and a region that yields no
// block at all is left untouched. Content without regions is returned as is.
func Preprocess(content string) string {
	res, changed := scanner.ReplaceFunc([]byte(content), func(body []byte) ([]byte, bool) {
		blocks := parse(string(body))
		if len(blocks) == 0 {
			return nil, false
		}

		payload, err := Encode(blocks)
		if err != nil {
			return nil, false
		}

		return []byte(Fence(payload)), true
	})
	if !changed {
		return content
	}

	return string(res)
}

// Match is a region of the source that [Preprocess] rewrites. Start and End
// are byte offsets of the whole region, markers included.
type Match struct {
	Start  int
	End    int
	Blocks Region
}

// Matches returns the regions of content that [Preprocess] would rewrite, in
// document order.
func Matches(content string) []Match {
	src := []byte(content)

	var matches []Match

	for _, span := range scanner.Spans(src) {
		if blocks := parse(string(src[span.BodyStart:span.BodyEnd])); len(blocks) > 0 {
			matches = append(matches, Match{Start: span.Start, End: span.End, Blocks: blocks})
		}
	}

	return matches
}

// Extract returns the code blocks of every region [Preprocess] would rewrite.
func Extract(content string) []Region {
	var regions []Region

	for _, m := range Matches(content) {
		regions = append(regions, m.Blocks)
	}

	return regions
}

// Fence wraps an encoded payload in a multilang fenced block.
func Fence(payload string) string {
	return "```" + Lang + "\n" + payload + "\n```"
}

func parse(body string) Region {
	var blocks Region

	for _, part := range strings.Split(body, DividerMarker) {
		m := reFence.FindStringSubmatch(part)
		if m == nil {
			continue
		}

		blocks = append(blocks, CodeBlock{Language: m[1], Code: strings.TrimSpace(m[2])})
	}

	return blocks
}
