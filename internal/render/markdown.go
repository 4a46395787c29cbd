// Package render turns note text into preview HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const codeStyle = "github"

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	css    template.CSS
}

// New builds a renderer for CommonMark with fenced code highlighting and
// pipe tables. Raw HTML in the source is kept by the parser and cleaned by
// the sanitizer afterwards.
func New() (*Renderer, error) {
	style := styles.Get(codeStyle)
	formatOptions := []chromahtml.Option{chromahtml.WithClasses(true)}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.NewTable(extension.WithTableCellAlignMethod(extension.TableCellAlignAttribute)),
			highlighting.NewHighlighting(
				highlighting.WithCustomStyle(style),
				highlighting.WithFormatOptions(formatOptions...),
			),
		),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	css, err := styleSheet(style, formatOptions)
	if err != nil {
		return nil, err
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowStyling()

	return &Renderer{md: md, policy: policy, css: css}, nil
}

func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// StyleSheet is the chroma class stylesheet matching Render's code blocks.
func (r *Renderer) StyleSheet() template.CSS {
	return r.css
}

func styleSheet(style *chroma.Style, opts []chromahtml.Option) (template.CSS, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(opts...).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("code stylesheet: %w", err)
	}
	return template.CSS(buf.String()), nil
}
