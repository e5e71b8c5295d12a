package blog

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/velocidadescape/blog/markdown"
)

// RSS is an RSS 2.0 document with the content module namespace.
type RSS struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   RSSChannel `xml:"channel"`
}

type RSSChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []RSSItem `xml:"item"`
}

type RSSItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        RSSGUID    `xml:"guid"`
	Description string     `xml:"description"`
	PubDate     string     `xml:"pubDate"`
	Categories  []string   `xml:"category"`
	Content     RSSContent `xml:"content:encoded"`
}

type RSSGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type RSSContent struct {
	HTML string `xml:",cdata"`
}

// Feed builds the site's RSS document.
type Feed struct {
	cfg SiteConfig
	md  *markdown.Renderer
}

// NewFeed returns a Feed that renders bodies with md.
func NewFeed(cfg SiteConfig, md *markdown.Renderer) *Feed {
	cfg.SetDefaults()
	return &Feed{cfg: cfg, md: md}
}

// Build returns the feed document for posts, newest first.
func (f *Feed) Build(posts []Post) (RSS, error) {
	sorted := SortByDate(posts)
	items := make([]RSSItem, 0, len(sorted))
	for _, p := range sorted {
		content, err := f.renderBody(p)
		if err != nil {
			return RSS{}, fmt.Errorf("render %s: %w", p.Slug, err)
		}
		link := BuildURL(f.cfg.URL, p.Slug)
		items = append(items, RSSItem{
			Title:       p.Title,
			Link:        link,
			GUID:        RSSGUID{IsPermaLink: true, Value: link},
			Description: p.Description,
			PubDate:     p.PubDate.Format(time.RFC1123Z),
			Categories:  p.Tags,
			Content:     RSSContent{HTML: content},
		})
	}
	lastBuild := ""
	if len(sorted) > 0 {
		lastBuild = sorted[0].PubDate.Format(time.RFC1123Z)
	}
	return RSS{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel: RSSChannel{
			Title:         f.cfg.Name,
			Link:          BuildURL(f.cfg.URL),
			Description:   f.cfg.Description,
			Language:      f.cfg.Locale,
			LastBuildDate: lastBuild,
			Items:         items,
		},
	}, nil
}

// Write encodes the feed for posts to w.
func (f *Feed) Write(w io.Writer, posts []Post) error {
	feed, err := f.Build(posts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}

func (f *Feed) renderBody(p Post) (string, error) {
	if p.Format == FormatMDX {
		return f.md.RenderMDX(p.Body)
	}
	return f.md.Render(p.Body)
}
