// Package views holds the HTML pages of the preview server.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	blog "github.com/velocidadescape/blog"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
	JSONLD      string
}

// htmlWriter remembers the first write error so pages read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

func layout(site blog.SiteConfig, meta PageMeta, body func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!doctype html><html lang="`)
		h.text(site.Locale)
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(meta.Title)
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(meta.Description)
			h.raw(`"><meta property="og:description" content="`)
			h.text(meta.Description)
			h.raw(`">`)
		}
		h.raw(`<meta property="og:title" content="`)
		h.text(meta.Title)
		h.raw(`"><meta property="og:type" content="`)
		h.text(meta.OGType)
		h.raw(`">`)
		if meta.URL != "" {
			h.raw(`<link rel="canonical" href="`)
			h.text(meta.URL)
			h.raw(`"><meta property="og:url" content="`)
			h.text(meta.URL)
			h.raw(`">`)
		}
		if meta.Image != "" {
			h.raw(`<meta property="og:image" content="`)
			h.text(meta.Image)
			h.raw(`"><meta name="twitter:card" content="summary_large_image">`)
		}
		h.raw(`<link rel="alternate" type="application/rss+xml" title="`)
		h.text(site.Name)
		h.raw(`" href="/` + blog.FeedFile + `">`)
		if meta.JSONLD != "" {
			h.raw(`<script type="application/ld+json">` + meta.JSONLD + `</script>`)
		}
		h.raw(`</head><body><header><a href="/">`)
		h.text(site.Name)
		h.raw(`</a></header><main>`)
		body(ctx, h)
		h.raw(`</main><script src="/_reload.js"></script></body></html>`)
		return h.err
	})
}

func tagList(h *htmlWriter, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	h.raw(`<ul class="tags">`)
	for _, t := range tags {
		h.raw(`<li><a class="`)
		h.raw(TagClass(t == active))
		h.raw(`" href="`)
		h.text(TagURL(t))
		h.raw(`">`)
		h.text(t)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul>`)
}

func postList(h *htmlWriter, site blog.SiteConfig, posts []blog.Post, active string) {
	h.raw(`<ol class="posts">`)
	for _, p := range posts {
		h.raw(`<li class="post post--`)
		h.raw(string(p.Kind()))
		h.raw(`"><a href="/`)
		h.text(p.Slug)
		h.raw(`/">`)
		h.text(p.Title)
		h.raw(`</a> <time datetime="`)
		h.raw(p.PubDate.Format("2006-01-02"))
		h.raw(`">`)
		h.text(blog.FormatDate(p.PubDate, blog.WithLocale(site.Locale)))
		h.raw(`</time><p>`)
		h.text(p.Description)
		h.raw(`</p>`)
		if ex := p.Excerpt(); ex != "" {
			h.raw(`<p class="excerpt">`)
			h.text(ex)
			h.raw(` <a href="/`)
			h.text(p.Slug)
			h.raw(`/">Read more</a></p>`)
		}
		tagList(h, p.Tags, active)
		h.raw(`</li>`)
	}
	h.raw(`</ol>`)
}

// Index lists every post newest first, with the tag cloud above it.
func Index(site blog.SiteConfig, posts []blog.Post, tags []string) templ.Component {
	meta := PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         blog.BuildURL(site.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(site),
	}
	return layout(site, meta, func(ctx context.Context, h *htmlWriter) {
		tagList(h, tags, "")
		if len(posts) == 0 {
			h.raw(`<p class="empty">No posts yet.</p>`)
			return
		}
		postList(h, site, posts, "")
	})
}

// Tag lists the posts carrying tag.
func Tag(site blog.SiteConfig, tag string, posts []blog.Post, tags []string) templ.Component {
	title := TagTitle(site.Locale, tag)
	meta := PageMeta{
		Title:  title + " | " + site.Name,
		URL:    blog.BuildURL(site.URL, "tags", tag),
		OGType: "website",
	}
	return layout(site, meta, func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(title)
		h.raw(`</h1>`)
		tagList(h, tags, tag)
		postList(h, site, posts, tag)
	})
}

// Post renders one post. body is the rendered markdown.
func Post(site blog.SiteConfig, post blog.Post, related []blog.Post, body templ.Component) templ.Component {
	meta := PageMeta{
		Title:       post.Title + " | " + site.Name,
		Description: post.Description,
		URL:         blog.BuildURL(site.URL, post.Slug),
		OGType:      "article",
		Image:       blog.AssetURL(site.URL, blog.ImagePath(post.Slug)),
		JSONLD:      BlogPostingJsonLD(site, post),
	}
	return layout(site, meta, func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article><h1>`)
		h.text(post.Title)
		h.raw(`</h1><time datetime="`)
		h.raw(post.PubDate.Format("2006-01-02"))
		h.raw(`">`)
		h.text(blog.FormatDate(post.PubDate, blog.WithLocale(site.Locale), blog.WithMonth(blog.MonthLong)))
		h.raw(`</time>`)
		tagList(h, post.Tags, "")
		h.raw(`<div class="prose">`)
		h.component(ctx, body)
		h.raw(`</div></article>`)
		if len(related) > 0 {
			h.raw(`<aside><h2>Related</h2>`)
			postList(h, site, related, "")
			h.raw(`</aside>`)
		}
	})
}

// NotFound is the 404 page.
func NotFound(site blog.SiteConfig) templ.Component {
	return layout(site, PageMeta{Title: "Not found | " + site.Name, OGType: "website"}, func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Not found</h1><p><a href="/">Back to all posts</a></p>`)
	})
}

// ServerError is shown when a page fails to load, usually because a post
// no longer validates.
func ServerError(site blog.SiteConfig, err error) templ.Component {
	return layout(site, PageMeta{Title: "Build error | " + site.Name, OGType: "website"}, func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Build error</h1><pre class="error">`)
		h.text(err.Error())
		h.raw(`</pre>`)
	})
}
