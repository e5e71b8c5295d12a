package views

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	blog "github.com/velocidadescape/blog"
)

// PathEscape wraps url.PathEscape for building tag links.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagURL returns the site path of a tag page.
func TagURL(tag string) string {
	return "/tags/" + PathEscape(tag) + "/"
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag--active"
	}
	return base
}

// TagTitle turns a tag such as "web-performance" into "Web Performance"
// for page headings.
func TagTitle(locale, tag string) string {
	tag = strings.NewReplacer("-", " ", "_", " ").Replace(tag)
	return cases.Title(language.Make(locale)).String(tag)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg blog.SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      blog.BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg blog.SiteConfig, post blog.Post) string {
	postURL := blog.BuildURL(cfg.URL, post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.PubDate.Format("2006-01-02"),
		"url":           postURL,
		"image":         blog.AssetURL(cfg.URL, blog.ImagePath(post.Slug)),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
