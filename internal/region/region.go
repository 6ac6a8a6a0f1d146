// Package region finds and rewrites spans delimited by literal start and end
// markers, such as HTML comment sentinels embedded in Markdown.
package region

import (
	"bytes"
	"regexp"
)

// Span is the location of one region in a source document. Start and End
// cover the markers; BodyStart and BodyEnd cover the text between them.
type Span struct {
	Start     int
	End       int
	BodyStart int
	BodyEnd   int
}

// Scanner matches regions opened by a begin marker and closed by the next
// end marker. Regions never overlap and are matched leftmost first; a begin
// marker found inside a region's body is treated as ordinary body text.
type Scanner struct {
	re *regexp.Regexp
}

// New returns a Scanner for the given literal markers.
func New(begin, end string) *Scanner {
	return &Scanner{
		re: regexp.MustCompile(`(?s)` + regexp.QuoteMeta(begin) + `(.*?)` + regexp.QuoteMeta(end)),
	}
}

// Spans returns every region found in source, in document order.
func (s *Scanner) Spans(source []byte) []Span {
	locs := s.re.FindAllSubmatchIndex(source, -1)
	spans := make([]Span, 0, len(locs))

	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1], BodyStart: loc[2], BodyEnd: loc[3]})
	}

	return spans
}

// Rewriter returns the replacement for a whole region given its body. When ok
// is false the region is kept as it is.
type Rewriter func(body []byte) (replacement []byte, ok bool)

// ReplaceFunc passes every region body to fn and substitutes the whole region,
// markers included, with the replacement. The bool return reports whether
// any region was replaced. When nothing changes the source slice itself is
// returned.
func (s *Scanner) ReplaceFunc(source []byte, fn Rewriter) ([]byte, bool) {
	spans := s.Spans(source)
	if len(spans) == 0 {
		return source, false
	}

	var (
		res     bytes.Buffer
		idx     int
		changed bool
	)

	res.Grow(len(source))

	for _, span := range spans {
		replacement, ok := fn(source[span.BodyStart:span.BodyEnd])
		if !ok {
			continue
		}

		res.Write(source[idx:span.Start])
		res.Write(replacement)

		idx = span.End
		changed = true
	}

	if !changed {
		return source, false
	}

	res.Write(source[idx:])

	return res.Bytes(), true
}
