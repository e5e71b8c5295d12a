package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/velocidadescape/blog/markdown"
)

// ViewFuncs holds the templ components the preview server renders pages
// with. The views package provides the default set.
type ViewFuncs struct {
	Index       func(site SiteConfig, posts []Post, tags []string) templ.Component
	Tag         func(site SiteConfig, tag string, posts []Post, tags []string) templ.Component
	Post        func(site SiteConfig, post Post, related []Post, body templ.Component) templ.Component
	NotFound    func(site SiteConfig) templ.Component
	ServerError func(site SiteConfig, err error) templ.Component
}

// App is the local preview server. It renders pages, the feed, the sitemap
// and preview images straight from the content directory and reloads
// connected browsers when content changes.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Cache    *PostCache
	Views    ViewFuncs
	Markdown *markdown.Renderer
	Feed     *Feed
	Images   *ImageGenerator
	Reload   *ReloadHub

	logger       *log.Logger
	customRoutes []func(*App)
	staticDir    string
	initOnce     sync.Once
}

// New creates a preview App. images may be nil, in which case preview
// images are served from the static dir only.
func New(cfg SiteConfig, views ViewFuncs, md *markdown.Renderer, images *ImageGenerator, opts ...Option) *App {
	cfg.SetDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Markdown:  md,
		Feed:      NewFeed(cfg, md),
		Images:    images,
		Cache:     NewPostCache(cfg.ContentDir, cfg.CacheTTL),
		logger:    log.New("serve"),
		staticDir: cfg.OutputDir,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.Logger = a.logger
	a.Echo.HideBanner = true
	a.Reload = NewReloadHub(a.logger)
	return a
}

// Init sets up middleware and routes. Start calls it; tests call it
// directly and drive a.Echo with httptest.
func (a *App) Init() {
	a.initOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
}

// Start watches the content directory and serves until ctx is done.
func (a *App) Start(ctx context.Context) error {
	a.Init()

	watcher, err := NewWatcher(a.Config.ContentDir, 300*time.Millisecond, a.logger, func(paths []string) {
		a.Cache.Invalidate()
		a.logger.Infof("content changed (%d files), reloading browsers", len(paths))
		a.Reload.Broadcast()
	})
	if err != nil {
		return fmt.Errorf("watch content: %w", err)
	}
	defer watcher.Close()
	go watcher.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("serving %s on http://localhost%s", a.Config.ContentDir, a.Config.Addr)
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Reload.Close()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/_reload.js", echo.WrapHandler(http.StripPrefix("/_", embeddedHandler)))
	e.GET("/_reload", a.Reload.Handle)
	e.GET("/"+FeedFile, a.handleFeed)
	e.GET("/"+SitemapFile, a.handleSitemap)
	e.GET("/"+TagsFile, a.handleTags)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/", a.handleHome)
	e.GET("/*", a.handlePath)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	a.Reload.Close()
	return nil
}
