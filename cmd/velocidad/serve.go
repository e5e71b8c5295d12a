package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	blog "github.com/velocidadescape/blog"
	"github.com/velocidadescape/blog/markdown"
	"github.com/velocidadescape/blog/views"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr, static string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the site locally and reload the browser on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			app, err := c.newApp(static)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":4321\")")
	cmd.Flags().StringVar(&static, "static", "", "directory for files the server does not render (default: the output dir)")
	return cmd
}

// newApp builds the preview server. static overrides where unrendered
// files are read from.
func (c *cli) newApp(static string) (*blog.App, error) {
	renderer, err := c.imageRenderer()
	if err != nil {
		return nil, err
	}
	images := blog.NewImageGenerator(renderer, c.cfg, blog.WithImageLogger(c.logger))

	opts := []blog.Option{blog.WithLogger(c.logger)}
	if static != "" {
		opts = append(opts, blog.WithStaticDir(static))
	}
	return blog.New(c.cfg, defaultViews(), markdown.New(), images, opts...), nil
}

func defaultViews() blog.ViewFuncs {
	return blog.ViewFuncs{
		Index:       views.Index,
		Tag:         views.Tag,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}
