// Package markdown renders user-authored content to sanitized HTML for the
// read API. Raw markdown stays in the published records; rendering happens
// at serve time so the wire format never carries HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *Renderer {
	// Posts only need inline emphasis and code; headings and the rest of
	// commonmark stay disabled. Raw HTML is parsed and passed through so
	// the sanitizer sees real tags instead of escaped text.
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewHTMLBlockParser(), 900),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewRawHTMLParser(), 400),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Render converts markdown to sanitized HTML.
func (r *Renderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		// Conversion only fails on writer errors; fall back to the
		// escaped source.
		return r.strict.Sanitize(text)
	}
	return r.policy.Sanitize(strings.TrimSpace(buf.String()))
}

// Plain strips every tag, for titles and display names.
func (r *Renderer) Plain(text string) string {
	return strings.TrimSpace(r.strict.Sanitize(text))
}
