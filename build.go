package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/gommon/log"
)

// Output file names below SiteConfig.OutputDir.
const (
	FeedFile    = "rss.xml"
	SitemapFile = "sitemap.xml"
	TagsFile    = "tags.json"
)

// Builder runs the whole content pipeline: load, validate, sort, then write
// the feed, sitemap, tag index and preview images.
type Builder struct {
	cfg    SiteConfig
	feed   *Feed
	images *ImageGenerator
	logger *log.Logger
}

// BuildStats summarizes one build.
type BuildStats struct {
	Posts  int
	Tags   int
	Images ImageStats
	Bytes  int64
	Took   time.Duration
}

// NewBuilder wires a Builder from its parts. A nil logger gets a default one.
func NewBuilder(cfg SiteConfig, feed *Feed, images *ImageGenerator, logger *log.Logger) *Builder {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.New("build")
	}
	return &Builder{cfg: cfg, feed: feed, images: images, logger: logger}
}

// Build loads the collection and writes every output. Nothing is written if
// any post fails validation.
func (b *Builder) Build(ctx context.Context) (BuildStats, error) {
	start := time.Now()
	var stats BuildStats

	posts, err := LoadPosts(ctx, b.cfg.ContentDir)
	if err != nil {
		return stats, err
	}
	posts = SortByDate(posts)
	stats.Posts = len(posts)
	b.logger.Infof("loaded %d posts from %s", len(posts), b.cfg.ContentDir)

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}

	n, err := b.writeFile(FeedFile, func(w io.Writer) error {
		return b.feed.Write(w, posts)
	})
	if err != nil {
		return stats, err
	}
	stats.Bytes += n

	n, err = b.writeFile(SitemapFile, func(w io.Writer) error {
		return WriteSitemap(w, b.cfg.URL, posts)
	})
	if err != nil {
		return stats, err
	}
	stats.Bytes += n

	summary := TagSummary(posts)
	stats.Tags = len(summary)
	n, err = b.writeFile(TagsFile, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	})
	if err != nil {
		return stats, err
	}
	stats.Bytes += n

	if b.images != nil {
		imgs, err := b.images.Generate(ctx, posts)
		if err != nil {
			return stats, err
		}
		stats.Images = imgs
		stats.Bytes += imgs.Bytes
		b.logger.Infof("images: %d rendered, %d unchanged (%s)",
			imgs.Rendered, imgs.Skipped, humanize.Bytes(uint64(imgs.Bytes)))
	}

	stats.Took = time.Since(start)
	b.logger.Infof("wrote %s to %s in %s", humanize.Bytes(uint64(stats.Bytes)), b.cfg.OutputDir, stats.Took.Round(time.Millisecond))
	return stats, nil
}

// writeFile creates name below the output dir and fills it with fn.
func (b *Builder) writeFile(name string, fn func(io.Writer) error) (int64, error) {
	target := filepath.Join(b.cfg.OutputDir, name)
	f, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}
	cw := &countingWriter{w: f}
	if err := fn(cw); err != nil {
		f.Close()
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", name, err)
	}
	b.logger.Debugf("wrote %s (%s)", target, humanize.Bytes(uint64(cw.n)))
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
