package blog

import (
	"bytes"
	"encoding/xml"
	"testing"
)

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, "https://velocidadescape.com", samplePosts()); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}

	var got sitemapURLSet
	if err := xml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(got.URLs) != 5 {
		t.Fatalf("len(urls) = %d, want 5", len(got.URLs))
	}
	if got.URLs[0].Loc != "https://velocidadescape.com/" {
		t.Errorf("first loc = %q, want home page", got.URLs[0].Loc)
	}
	if got.URLs[1].Loc != "https://velocidadescape.com/react/hooks/" || got.URLs[1].LastMod != "2024-02-10" {
		t.Errorf("newest post = %+v", got.URLs[1])
	}
}

func TestWriteSitemapEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, "https://velocidadescape.com", nil); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}
	var got sitemapURLSet
	if err := xml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(got.URLs) != 1 {
		t.Errorf("len(urls) = %d, want only the home page", len(got.URLs))
	}
}
