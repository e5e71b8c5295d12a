package main

import (
	"github.com/spf13/cobra"

	blog "github.com/velocidadescape/blog"
	"github.com/velocidadescape/blog/markdown"
)

func (c *cli) buildCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Validate posts and write the feed, sitemap, tag index and preview images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := c.imageRenderer()
			if err != nil {
				return err
			}
			store, err := blog.NewStore(c.cfg.CacheDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			images := blog.NewImageGenerator(renderer, c.cfg,
				blog.WithImageStore(store),
				blog.WithForce(force),
				blog.WithImageLogger(c.logger),
			)
			builder := blog.NewBuilder(c.cfg, blog.NewFeed(c.cfg, markdown.New()), images, c.logger)
			_, err = builder.Build(cmd.Context())
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "redraw every preview image")
	return cmd
}
