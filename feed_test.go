package blog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velocidadescape/blog/markdown"
)

func testFeed() *Feed {
	return NewFeed(SiteConfig{
		Name:        "Velocidad Escape",
		URL:         "https://velocidadescape.com",
		Description: "Notes on the web",
	}, markdown.New())
}

func TestFeedEmpty(t *testing.T) {
	f := testFeed()
	doc, err := f.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Channel.Items)
	assert.Equal(t, "Velocidad Escape", doc.Channel.Title)
	assert.Equal(t, "https://velocidadescape.com/", doc.Channel.Link)
	assert.Empty(t, doc.Channel.LastBuildDate)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, nil))
	assert.Contains(t, buf.String(), "<channel>")
	assert.NotContains(t, buf.String(), "<item>")
}

func TestFeedItems(t *testing.T) {
	posts := []Post{
		{Slug: "js/old", Title: "Old", Description: "old one", PubDate: day(2023, 3, 1), Body: "old"},
		{Slug: "js/hello-world", Title: "Hello", Description: "first", PubDate: day(2024, 1, 5), Tags: []string{"js", "intro"}, Body: "**hi**"},
	}
	doc, err := testFeed().Build(posts)
	require.NoError(t, err)
	require.Len(t, doc.Channel.Items, 2)

	first := doc.Channel.Items[0]
	assert.Equal(t, "Hello", first.Title)
	assert.Equal(t, "https://velocidadescape.com/js/hello-world/", first.Link)
	assert.Equal(t, first.Link, first.GUID.Value)
	assert.True(t, first.GUID.IsPermaLink)
	assert.Equal(t, "first", first.Description)
	assert.Equal(t, "Fri, 05 Jan 2024 00:00:00 +0000", first.PubDate)
	assert.Equal(t, []string{"js", "intro"}, first.Categories)
	assert.Contains(t, first.Content.HTML, "<strong>hi</strong>")

	assert.Equal(t, "js/old", strings.TrimSuffix(strings.TrimPrefix(doc.Channel.Items[1].Link, "https://velocidadescape.com/"), "/"))
	assert.Equal(t, first.PubDate, doc.Channel.LastBuildDate)
}

func TestFeedSanitizesContent(t *testing.T) {
	posts := []Post{{
		Slug: "js/xss", Title: "XSS", Description: "d", PubDate: day(2024, 1, 1),
		Body: "Hello <script>alert(1)</script>\n\n<img src=x onerror=\"alert(1)\">\n\n[bad](javascript:alert(1))",
	}}
	doc, err := testFeed().Build(posts)
	require.NoError(t, err)
	html := doc.Channel.Items[0].Content.HTML
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "onerror")
	assert.NotContains(t, html, "javascript:")
}

func TestFeedStripsMDXImports(t *testing.T) {
	posts := []Post{{
		Slug: "react/hooks", Title: "Hooks", Description: "d", PubDate: day(2024, 1, 1), Format: FormatMDX,
		Body: "import Chart from './Chart'\nexport const meta = {}\n\n# Hooks\n",
	}}
	doc, err := testFeed().Build(posts)
	require.NoError(t, err)
	html := doc.Channel.Items[0].Content.HTML
	assert.NotContains(t, html, "import")
	assert.NotContains(t, html, "export")
	assert.Contains(t, html, "Hooks</h1>")
}

func TestFeedWriteXML(t *testing.T) {
	posts := []Post{{Slug: "js/a", Title: "A & B", Description: "d", PubDate: day(2024, 1, 1), Body: "text"}}
	var buf bytes.Buffer
	require.NoError(t, testFeed().Write(&buf, posts))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">`)
	assert.Contains(t, out, "<title>A &amp; B</title>")
	assert.Contains(t, out, "<content:encoded><![CDATA[")
}
