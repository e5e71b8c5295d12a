package blog

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velocidadescape/blog/markdown"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx, "")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(a.Config, posts, tags))
}

func (a *App) handleTag(c echo.Context) error {
	ctx := c.Request().Context()
	tag := c.Param("tag")
	// echo matches on RawPath when the request has one, leaving the param escaped.
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(tag)
		if err != nil {
			return echo.ErrNotFound
		}
		tag = unescaped
	}
	posts, err := a.Cache.ListPosts(ctx, tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	tags, err := a.Cache.ListTags(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Tag(a.Config, tag, posts, tags))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := a.Feed.Write(&buf, posts); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", buf.Bytes())
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, a.Config.URL, posts); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, buf.Bytes())
}

func (a *App) handleTags(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSONPretty(http.StatusOK, TagSummary(posts), "  ")
}

// handlePath serves, in order: a post's preview image, a post page, or a
// file from the static dir.
func (a *App) handlePath(c echo.Context) error {
	ctx := c.Request().Context()
	p := c.Param("*")

	if slug, ok := SlugFromImagePath(p); ok && a.Images != nil {
		post, err := a.Cache.GetPost(ctx, slug)
		if err == nil {
			data, err := a.Images.Render(post)
			if err != nil {
				return err
			}
			return c.Blob(http.StatusOK, "image/png", data)
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	if slug := strings.Trim(p, "/"); slug != "" {
		post, err := a.Cache.GetPost(ctx, slug)
		switch {
		case err == nil:
			return a.renderPost(c, post)
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}

	file := filepath.Join(a.staticDir, filepath.FromSlash(path.Clean("/"+p)))
	return c.File(file)
}

func (a *App) renderPost(c echo.Context, post Post) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	body := post.Body
	if post.Format == FormatMDX {
		body = markdown.StripMDX(body)
	}
	return Render(c, a.Views.Post(a.Config, post, RelatedPosts(post, posts), a.Markdown.Component(body)))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config, err))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
