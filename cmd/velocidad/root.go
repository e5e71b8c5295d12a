package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	blog "github.com/velocidadescape/blog"
	"github.com/velocidadescape/blog/ogimage"
)

// Font files expected in SiteConfig.FontsDir.
const (
	fontRegular = "Inter-Regular.ttf"
	fontBold    = "Inter-Bold.ttf"
)

// cli carries state shared by every subcommand.
type cli struct {
	cfgFile string
	verbose bool
	cfg     blog.SiteConfig
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "velocidad",
		Short:         "Content pipeline for the blog",
		Long:          `velocidad validates the posts under the content directory and turns them into an RSS feed, a sitemap, a tag index and one social preview image per post.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initialize(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", blog.EnvOr("VELOCIDAD_CONFIG", ""), "config file (default is ./velocidad.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log every file written")

	root.AddCommand(
		c.newCmd(),
		c.buildCmd(),
		c.serveCmd(),
		c.showCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) initialize(cmd *cobra.Command) error {
	c.logger = log.New("velocidad")
	c.logger.SetOutput(cmd.ErrOrStderr())
	c.logger.SetHeader("${time_rfc3339} ${level}")
	if c.verbose {
		c.logger.SetLevel(log.DEBUG)
	} else {
		c.logger.SetLevel(log.INFO)
	}

	cfg, used, err := loadConfig(c.cfgFile)
	if err != nil {
		return err
	}
	if used != "" {
		c.logger.Debugf("using config file %s", used)
	}
	c.cfg = cfg
	return nil
}

// loadConfig reads velocidad.yaml (or path) and VELOCIDAD_* environment
// variables. A missing default config file is not an error.
func loadConfig(path string) (blog.SiteConfig, string, error) {
	v := viper.New()

	var defaults blog.SiteConfig
	defaults.SetDefaults()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("url", defaults.URL)
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("domain", "") // derived from url when empty
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("contentDir", defaults.ContentDir)
	v.SetDefault("outputDir", defaults.OutputDir)
	v.SetDefault("fontsDir", defaults.FontsDir)
	v.SetDefault("cacheDBPath", defaults.CacheDBPath)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("cacheTTL", defaults.CacheTTL)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("velocidad")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("VELOCIDAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return blog.SiteConfig{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	var cfg blog.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return blog.SiteConfig{}, "", fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()
	return cfg, v.ConfigFileUsed(), nil
}

// imageRenderer loads the fonts and returns a renderer for preview images.
func (c *cli) imageRenderer() (*ogimage.Renderer, error) {
	fonts, err := ogimage.LoadFonts(
		filepath.Join(c.cfg.FontsDir, fontRegular),
		filepath.Join(c.cfg.FontsDir, fontBold),
	)
	if err != nil {
		return nil, err
	}
	return ogimage.NewRenderer(fonts), nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the velocidad version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "velocidad %s\n", version)
		},
	}
}
