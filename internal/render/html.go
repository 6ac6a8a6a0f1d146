// Package render turns preprocessed Markdown into HTML or terminal output.
// Fences tagged multilang are shown as tab groups, one tab per language;
// every other fence is syntax highlighted.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/ezerfernandes/codetabs/internal/mdcode"
	"github.com/ezerfernandes/codetabs/internal/metrics"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"go.uber.org/zap"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "vs"

// errorMarkup replaces a multilang fence whose payload cannot be decoded.
const errorMarkup = `<div class="multilang-error">Error rendering code block</div>` + "\n"

// HTML renders Markdown documents to HTML. It is safe for concurrent use.
type HTML struct {
	md    goldmark.Markdown
	code  *codeRenderer
	style *chroma.Style
}

// HTMLOption configures an HTML renderer.
type HTMLOption func(*HTML)

// WithStyle selects the chroma style by name. Unknown names fall back to the
// chroma default style.
func WithStyle(name string) HTMLOption {
	return func(h *HTML) {
		h.style = styles.Get(name)
	}
}

// NewHTML returns an HTML renderer with GitHub Flavored Markdown enabled.
func NewHTML(logger *zap.Logger, opts ...HTMLOption) *HTML {
	h := &HTML{style: styles.Get(DefaultStyle)}

	for _, opt := range opts {
		opt(h)
	}

	h.code = &codeRenderer{
		logger:    logger,
		style:     h.style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}

	h.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(h.code, 100)), //nolint:gomnd
		),
	)

	return h
}

// Render writes the HTML for a preprocessed Markdown document to w.
func (h *HTML) Render(w io.Writer, source []byte) error {
	if err := h.md.Convert(source, w); err != nil {
		return err
	}

	metrics.ArticlesRendered.WithLabelValues("html").Inc()

	return nil
}

// Article preprocesses raw article content and renders it.
func (h *HTML) Article(content string) (string, error) {
	var buf bytes.Buffer

	if err := h.Render(&buf, []byte(multilang.Preprocess(content))); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// CSS writes the stylesheet for the highlighted code classes.
func (h *HTML) CSS(w io.Writer) error {
	return h.code.formatter.WriteCSS(w, h.style)
}

type codeRenderer struct {
	logger    *zap.Logger
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	fcb, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	block, err := mdcode.NewBlock(fcb, source)
	if err != nil {
		// A broken info string must not break the page.
		block = &mdcode.Block{Lang: string(fcb.Language(source))}
		block.Code = codeOf(fcb, source)
	}

	switch {
	case block.IsMultilang():
		err = r.renderTabs(w, block)
	case len(block.Lang) == 0:
		err = r.renderPlain(w, block.Code)
	default:
		err = r.renderCode(w, block.Lang, string(block.Code))
	}

	return ast.WalkContinue, err
}

func (r *codeRenderer) renderTabs(w util.BufWriter, block *mdcode.Block) error {
	samples, err := block.Samples()
	if err != nil {
		r.logger.Warn("Failed to parse multilang block", zap.Int("line", block.StartLine), zap.Error(err))
		metrics.RenderErrors.Inc()

		_, err = w.WriteString(errorMarkup)

		return err
	}

	metrics.TabGroupsRendered.Inc()

	fmt.Fprintf(w, "<div class=\"multilang\" data-default=\"%s\">\n", util.EscapeHTML([]byte(samples[0].Language)))
	_, _ = w.WriteString("<div class=\"multilang-tabs\" role=\"tablist\">\n")

	for i, sample := range samples {
		fmt.Fprintf(w, "<button type=\"button\" role=\"tab\" data-index=\"%d\" data-lang=\"%s\" aria-selected=\"%t\">%s</button>\n",
			i, util.EscapeHTML([]byte(sample.Language)), i == 0, util.EscapeHTML([]byte(multilang.DisplayName(sample.Language))))
	}

	_, _ = w.WriteString("</div>\n")

	for i, sample := range samples {
		hidden := ""
		if i > 0 {
			hidden = " hidden"
		}

		fmt.Fprintf(w, "<div class=\"multilang-panel\" role=\"tabpanel\" data-index=\"%d\" data-lang=\"%s\"%s>\n",
			i, util.EscapeHTML([]byte(sample.Language)), hidden)

		if err := r.highlight(w, sample.Language, sample.Code); err != nil {
			return err
		}

		_, _ = w.WriteString("</div>\n")
	}

	_, err = w.WriteString("</div>\n")

	return err
}

func (r *codeRenderer) renderCode(w util.BufWriter, lang, code string) error {
	fmt.Fprintf(w, "<div class=\"code\" data-lang=\"%s\">\n", util.EscapeHTML([]byte(lang)))

	if err := r.highlight(w, lang, code); err != nil {
		return err
	}

	_, err := w.WriteString("</div>\n")

	return err
}

func (r *codeRenderer) renderPlain(w util.BufWriter, code []byte) error {
	_, _ = w.WriteString("<pre><code>")
	_, _ = w.Write(util.EscapeHTML(code))
	_, err := w.WriteString("</code></pre>\n")

	return err
}

func (r *codeRenderer) highlight(w io.Writer, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return err
	}

	return r.formatter.Format(w, r.style, iterator)
}

func codeOf(fcb *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}

	return buf.Bytes()
}
