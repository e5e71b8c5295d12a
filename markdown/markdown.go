// Package markdown renders post bodies to sanitized HTML.
//
// A Renderer is built once per build and shared by every consumer; it has
// no package-level state.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML and strips anything unsafe from the
// result. Bodies may embed raw HTML, so rendering keeps it and the
// sanitizer decides what survives.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer using GitHub flavoured markdown and a UGC policy
// that also keeps language classes on code blocks.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return &Renderer{md: md, policy: policy}
}

// Render converts src to sanitized HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}

// RenderMDX renders an MDX body. Top-level import and export statements
// are module plumbing, not content, and are dropped first.
func (r *Renderer) RenderMDX(src string) (string, error) {
	return r.Render(StripMDX(src))
}

// StripMDX removes import/export lines that sit outside fenced code blocks.
func StripMDX(src string) string {
	lines := strings.Split(src, "\n")
	out := lines[:0]
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && line == strings.TrimLeft(line, " \t") &&
			(strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Component returns a templ.Component that writes the rendered HTML of src.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h, err := r.Render(src)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, h)
		return err
	})
}
