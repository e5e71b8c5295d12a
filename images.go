package blog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/velocidadescape/blog/ogimage"
)

const (
	imageFile = "og.png"
	// cardVersion is mixed into image digests; bump it when PostCard's
	// layout changes so cached images are redrawn.
	cardVersion = "1"
)

// ImageGenerator renders one preview image per post.
type ImageGenerator struct {
	renderer *ogimage.Renderer
	brand    Brand
	locale   string
	outDir   string
	store    *Store
	force    bool
	logger   *log.Logger
}

// ImageOption configures an ImageGenerator.
type ImageOption func(*ImageGenerator)

// WithImageStore skips posts whose image inputs match the record in s.
func WithImageStore(s *Store) ImageOption {
	return func(g *ImageGenerator) {
		g.store = s
	}
}

// WithForce redraws every image even when the store says it is current.
func WithForce(force bool) ImageOption {
	return func(g *ImageGenerator) {
		g.force = force
	}
}

// WithImageLogger sets the logger used for per-image progress.
func WithImageLogger(l *log.Logger) ImageOption {
	return func(g *ImageGenerator) {
		g.logger = l
	}
}

// NewImageGenerator returns a generator drawing with renderer and writing
// below cfg.OutputDir.
func NewImageGenerator(renderer *ogimage.Renderer, cfg SiteConfig, opts ...ImageOption) *ImageGenerator {
	cfg.SetDefaults()
	g := &ImageGenerator{
		renderer: renderer,
		brand:    Brand{Author: cfg.Author, Domain: cfg.Domain},
		locale:   cfg.Locale,
		outDir:   cfg.OutputDir,
		logger:   log.New("images"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ImagePath returns the site path of a post's preview image.
func ImagePath(slug string) string {
	return path.Join(slug, imageFile)
}

// ImagePaths expands posts into one image path per post.
func ImagePaths(posts []Post) []string {
	paths := make([]string, len(posts))
	for i, p := range posts {
		paths[i] = ImagePath(p.Slug)
	}
	return paths
}

// SlugFromImagePath is the inverse of ImagePath.
func SlugFromImagePath(p string) (string, bool) {
	dir, file := path.Split(path.Clean("/" + p))
	if file != imageFile {
		return "", false
	}
	slug := path.Clean(dir)
	slug = slug[1:]
	if slug == "" {
		return "", false
	}
	return slug, true
}

// Render draws p's preview image and returns it PNG encoded.
func (g *ImageGenerator) Render(p Post) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.renderer.RenderPNG(&buf, PostCard(p, g.brand, g.locale), ImageWidth, ImageHeight); err != nil {
		return nil, fmt.Errorf("render image for %s: %w", p.Slug, err)
	}
	return buf.Bytes(), nil
}

// ImageStats summarizes one Generate run.
type ImageStats struct {
	Rendered int
	Skipped  int
	Bytes    int64
}

// Generate writes <outDir>/<slug>/og.png for every post.
func (g *ImageGenerator) Generate(ctx context.Context, posts []Post) (ImageStats, error) {
	var stats ImageStats
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		target := filepath.Join(g.outDir, filepath.FromSlash(ImagePath(p.Slug)))
		digest := g.digest(p)
		if g.current(p.Slug, digest, target) {
			stats.Skipped++
			continue
		}

		data, err := g.Render(p)
		if err != nil {
			return stats, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return stats, fmt.Errorf("create image dir: %w", err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return stats, fmt.Errorf("write image: %w", err)
		}
		if g.store != nil {
			if err := g.store.SaveImage(ImageRecord{Slug: p.Slug, Digest: digest, Size: int64(len(data)), RenderedAt: time.Now()}); err != nil {
				return stats, fmt.Errorf("record image: %w", err)
			}
		}
		g.logger.Debugf("rendered %s", target)
		stats.Rendered++
		stats.Bytes += int64(len(data))
	}

	if g.store != nil {
		slugs := make([]string, len(posts))
		for i, p := range posts {
			slugs[i] = p.Slug
		}
		removed, err := g.store.PruneImages(slugs)
		if err != nil {
			return stats, fmt.Errorf("prune image records: %w", err)
		}
		for _, slug := range removed {
			g.removeStale(slug)
		}
		if len(removed) > 0 {
			g.logger.Infof("removed %d images of deleted posts", len(removed))
		}
	}
	return stats, nil
}

// removeStale deletes the image of a post that no longer exists, and its
// directory when nothing else lives there.
func (g *ImageGenerator) removeStale(slug string) {
	target := filepath.Join(g.outDir, filepath.FromSlash(ImagePath(slug)))
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		g.logger.Warnf("remove stale image %s: %v", target, err)
		return
	}
	// Fails harmlessly when the directory still has other files.
	_ = os.Remove(filepath.Dir(target))
}

func (g *ImageGenerator) current(slug, digest, target string) bool {
	if g.force || g.store == nil {
		return false
	}
	if _, err := os.Stat(target); err != nil {
		return false
	}
	rec, err := g.store.GetImage(slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warnf("image cache lookup for %s: %v", slug, err)
		}
		return false
	}
	return rec.Digest == digest
}

func (g *ImageGenerator) digest(p Post) string {
	h := sha256.New()
	for _, part := range []string{cardVersion, p.Title, p.PubDate.UTC().Format(time.RFC3339), g.brand.Author, g.brand.Domain, g.locale} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
