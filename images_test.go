package blog

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/velocidadescape/blog/ogimage"
)

func testImageRenderer(t *testing.T) *ogimage.Renderer {
	t.Helper()
	fonts, err := ogimage.ParseFonts(goregular.TTF, gobold.TTF)
	require.NoError(t, err)
	return ogimage.NewRenderer(fonts)
}

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetLevel(log.OFF)
	return l
}

func TestPostCardLayout(t *testing.T) {
	p := Post{Title: "Hello World", PubDate: day(2024, 1, 5)}
	card := PostCard(p, Brand{Author: "Velocidad Escape", Domain: "velocidadescape.com"}, "")

	require.Len(t, card.Children, 2)
	heading := card.Children[0]
	require.Len(t, heading.Children, 2)
	assert.Equal(t, "Hello World", heading.Children[0].Text)
	assert.Equal(t, ogimage.Bold, heading.Children[0].Style.FontWeight)
	assert.Equal(t, 75.0, heading.Children[0].Style.FontSize)
	assert.Equal(t, "Jan 5, 2024", heading.Children[1].Text)

	brand := card.Children[1]
	assert.True(t, brand.Style.Absolute)
	require.Len(t, brand.Children, 3)
	assert.Equal(t, "Velocidad Escape", brand.Children[0].Text)
	assert.Equal(t, "•", brand.Children[1].Text)
	assert.Equal(t, "velocidadescape.com", brand.Children[2].Text)
}

func TestPostCardLocale(t *testing.T) {
	card := PostCard(Post{Title: "Hola", PubDate: day(2024, 1, 5)}, Brand{}, "es")
	assert.Equal(t, "5 ene 2024", card.Children[0].Children[1].Text)
	assert.Empty(t, card.Children[1].Children, "no brand parts without author or domain")
}

func TestImageGeneratorRender(t *testing.T) {
	g := NewImageGenerator(testImageRenderer(t), SiteConfig{Author: "Velocidad Escape", URL: "https://velocidadescape.com"})
	data, err := g.Render(Post{Slug: "js/hello-world", Title: "Hello World", PubDate: day(2024, 1, 5)})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, ImageWidth, cfg.Width)
	assert.Equal(t, ImageHeight, cfg.Height)
}

func TestImagePaths(t *testing.T) {
	assert.Equal(t, "js/hello-world/og.png", ImagePath("js/hello-world"))
	assert.Equal(t, []string{"a/og.png", "b/c/og.png"}, ImagePaths([]Post{{Slug: "a"}, {Slug: "b/c"}}))

	tests := []struct {
		in   string
		slug string
		ok   bool
	}{
		{"js/hello-world/og.png", "js/hello-world", true},
		{"/js/hello-world/og.png", "js/hello-world", true},
		{"og.png", "", false},
		{"js/hello-world/cover.png", "", false},
		{"js/hello-world/", "", false},
	}
	for _, tt := range tests {
		slug, ok := SlugFromImagePath(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.slug, slug, tt.in)
	}
}

func TestImageGeneratorGenerate(t *testing.T) {
	out := t.TempDir()
	store := setupTestStore(t)
	cfg := SiteConfig{OutputDir: out, Author: "Velocidad Escape"}
	posts := []Post{
		{Slug: "js/hello-world", Title: "Hello World", PubDate: day(2024, 1, 5)},
		{Slug: "css/grid", Title: "Grid", PubDate: day(2024, 2, 1)},
	}

	g := NewImageGenerator(testImageRenderer(t), cfg, WithImageStore(store), WithImageLogger(quietLogger()))
	stats, err := g.Generate(context.Background(), posts)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rendered)
	assert.Equal(t, 0, stats.Skipped)
	assert.Positive(t, stats.Bytes)
	assert.FileExists(t, filepath.Join(out, "js", "hello-world", "og.png"))
	assert.FileExists(t, filepath.Join(out, "css", "grid", "og.png"))

	// Unchanged inputs are skipped.
	stats, err = g.Generate(context.Background(), posts)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Rendered)
	assert.Equal(t, 2, stats.Skipped)

	// A changed title or a missing file forces a redraw.
	posts[0].Title = "Hello Again"
	require.NoError(t, os.Remove(filepath.Join(out, "css", "grid", "og.png")))
	stats, err = g.Generate(context.Background(), posts)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rendered)

	// Removed posts are forgotten.
	_, err = g.Generate(context.Background(), posts[:1])
	require.NoError(t, err)
	recs, err := store.ListImages()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "js/hello-world", recs[0].Slug)
	assert.NoFileExists(t, filepath.Join(out, "css", "grid", "og.png"))
	assert.NoDirExists(t, filepath.Join(out, "css", "grid"))
	assert.FileExists(t, filepath.Join(out, "js", "hello-world", "og.png"))
}

func TestImageGeneratorForce(t *testing.T) {
	out := t.TempDir()
	store := setupTestStore(t)
	cfg := SiteConfig{OutputDir: out}
	posts := []Post{{Slug: "ai/agents", Title: "Agents", PubDate: day(2024, 3, 1)}}

	_, err := NewImageGenerator(testImageRenderer(t), cfg, WithImageStore(store), WithImageLogger(quietLogger())).
		Generate(context.Background(), posts)
	require.NoError(t, err)

	forced := NewImageGenerator(testImageRenderer(t), cfg, WithImageStore(store), WithForce(true), WithImageLogger(quietLogger()))
	stats, err := forced.Generate(context.Background(), posts)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Rendered)
}

func TestImageGeneratorCancelled(t *testing.T) {
	g := NewImageGenerator(testImageRenderer(t), SiteConfig{OutputDir: t.TempDir()}, WithImageLogger(quietLogger()))
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	_, err := g.Generate(ctx, []Post{{Slug: "a", Title: "A", PubDate: day(2024, 1, 1)}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
