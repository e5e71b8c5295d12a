package blog

import (
	"os"
	"time"

	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for a site build.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name, used as the feed title
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:4321")
	Description string `mapstructure:"description"` // Feed channel description
	Author      string `mapstructure:"author"`      // Author shown on preview images
	Domain      string `mapstructure:"domain"`      // Domain shown on preview images (default: host of URL)
	Locale      string `mapstructure:"locale"`      // Date locale (default "en-US")

	ContentDir  string `mapstructure:"contentDir"`  // Post sources (default "content/blog")
	OutputDir   string `mapstructure:"outputDir"`   // Build output (default "dist")
	FontsDir    string `mapstructure:"fontsDir"`    // Inter-Regular.ttf and Inter-Bold.ttf (default "public/fonts")
	CacheDBPath string `mapstructure:"cacheDBPath"` // SQLite image cache (default ".velocidad/cache.db")

	Addr     string        `mapstructure:"addr"`     // Dev server listen address (default ":4321")
	CacheTTL time.Duration `mapstructure:"cacheTTL"` // Dev server collection cache TTL (default 30s)
}

// SetDefaults fills every empty field with its default.
func (c *SiteConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:4321"
	}
	if c.Domain == "" {
		c.Domain = hostOf(c.URL)
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.FontsDir == "" {
		c.FontsDir = "public/fonts"
	}
	if c.CacheDBPath == "" {
		c.CacheDBPath = ".velocidad/cache.db"
	}
	if c.Addr == "" {
		c.Addr = ":4321"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 30 * time.Second
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served for files the server does not
// render itself (default: the build output directory).
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the server's logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
