package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderHeadings(t *testing.T) {
	r := New()
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "Heading 1</h1>"},
		{"## Heading 2", "Heading 2</h2>"},
		{"### Heading 3", "Heading 3</h3>"},
	}
	for _, tt := range tests {
		got, err := r.Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderInline(t *testing.T) {
	r := New()
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"use `fmt.Println` here", "<code>fmt.Println</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got, err := r.Render(tt.input)
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderCodeBlockKeepsLanguageClass(t *testing.T) {
	got, err := New().Render("```go\nfmt.Println(\"hello\")\n```")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should keep language-go class: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&#34;hello&#34;)") && !strings.Contains(got, "fmt.Println(&quot;hello&quot;)") {
		t.Errorf("code block should keep escaped content: %q", got)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	input := "Hello\n\n<script>alert(1)</script>\n\n<img src=\"/a.png\" onerror=\"alert(2)\">"
	got, err := New().Render(input)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Errorf("script should be removed: %q", got)
	}
	if strings.Contains(got, "onerror") {
		t.Errorf("event handler attribute should be removed: %q", got)
	}
	if !strings.Contains(got, "Hello") {
		t.Errorf("safe text should survive: %q", got)
	}
}

func TestRenderDropsJavascriptLinks(t *testing.T) {
	got, err := New().Render("[click](javascript:alert(1))")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL should be removed: %q", got)
	}
}

func TestRenderKeepsSafeRawHTML(t *testing.T) {
	got, err := New().Render("H<sub>2</sub>O and x<sup>2</sup>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<sub>2</sub>") || !strings.Contains(got, "<sup>2</sup>") {
		t.Errorf("sub/sup should survive sanitizing: %q", got)
	}
}

func TestStripMDX(t *testing.T) {
	input := strings.Join([]string{
		"import Chart from '../components/Chart.astro'",
		"export const meta = {}",
		"",
		"Some text about imports.",
		"",
		"```js",
		"import x from 'y'",
		"```",
	}, "\n")
	got := StripMDX(input)
	if strings.Contains(got, "Chart.astro") {
		t.Errorf("top-level import should be removed: %q", got)
	}
	if strings.Contains(got, "export const") {
		t.Errorf("top-level export should be removed: %q", got)
	}
	if !strings.Contains(got, "import x from 'y'") {
		t.Errorf("imports inside code fences must be kept: %q", got)
	}
	if !strings.Contains(got, "Some text about imports.") {
		t.Errorf("prose must be kept: %q", got)
	}
}

func TestComponentWritesHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Component("**hi**").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<strong>hi</strong>") {
		t.Errorf("component output = %q", buf.String())
	}
}
