package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	blog "github.com/velocidadescape/blog"
	"github.com/velocidadescape/blog/markdown"
)

func (c *cli) showCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a post, rendered when stdout is a terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := blog.LoadPosts(cmd.Context(), c.cfg.ContentDir)
			if err != nil {
				return err
			}
			post, ok := blog.FindPost(posts, args[0])
			if !ok {
				return fmt.Errorf("no post with slug %q", args[0])
			}

			var buf bytes.Buffer
			writePost(&buf, post, c.cfg.Locale)

			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && !raw && term.IsTerminal(int(f.Fd())) {
				rendered, renderErr := glamour.Render(buf.String(), "dark")
				if renderErr == nil {
					fmt.Fprint(out, rendered)
					return nil
				}
				c.logger.Warnf("render %s: %v", post.Slug, renderErr)
			}
			_, err = io.Copy(out, &buf)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

// writePost writes p as a markdown document with a title and date header.
func writePost(w io.Writer, p blog.Post, locale string) {
	fmt.Fprintf(w, "# %s\n\n", p.Title)
	meta := blog.FormatDate(p.PubDate, blog.WithLocale(locale), blog.WithMonth(blog.MonthLong))
	if len(p.Tags) > 0 {
		meta += " · " + strings.Join(p.Tags, ", ")
	}
	fmt.Fprintf(w, "_%s_\n\n", meta)
	fmt.Fprintf(w, "> %s\n\n", p.Description)
	body := p.Body
	if p.Format == blog.FormatMDX {
		body = markdown.StripMDX(body)
	}
	fmt.Fprintln(w, strings.TrimSpace(body))
}
