package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/velocidadescape/blog/scaffold"
)

func (c *cli) newCmd() *cobra.Command {
	var category, format string
	cmd := &cobra.Command{
		Use:   "new <post-title> -c <category> [-m md|mdx]",
		Short: "Create a new post",
		Long: fmt.Sprintf(`Create a new post file under <contentDir>/<category>/ with front-matter
filled in. An existing file is never overwritten.

Valid categories: %s`, strings.Join(scaffold.Categories, ", ")),
		Example: `  velocidad new "Hello World" -c js -m mdx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if title == "" {
				title = scaffold.DefaultTitle
			}
			post, err := scaffold.NewPost(scaffold.Options{
				Root:     c.cfg.ContentDir,
				Title:    title,
				Category: category,
				Format:   format,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Full path: %s\n", post.Path)
			fmt.Fprintf(out, "Post %q created successfully\n", post.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "post category (required)")
	cmd.Flags().StringVarP(&format, "markdown", "m", "md", "file format: md or mdx")
	return cmd
}
