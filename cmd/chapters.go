package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmanga/getmanga/internal/config"
	"github.com/getmanga/getmanga/internal/fetch"
	"github.com/getmanga/getmanga/internal/sites"
	"github.com/getmanga/getmanga/internal/ui"
)

func init() {
	chaptersCmd := &cobra.Command{
		Use:   "chapters",
		Short: "List the chapters available for a title",
		RunE:  runChapters,
	}

	chaptersCmd.Flags().StringVar(&flagSite, "site", "", "site adapter to use (see `getmanga sites`)")
	chaptersCmd.Flags().StringVar(&flagTitle, "title", "", "manga title to list")

	rootCmd.AddCommand(chaptersCmd)
}

func runChapters(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Site:         flagSite,
		Title:        flagTitle,
	})
	if err != nil {
		return err
	}

	if cfg.Site == "" {
		return fmt.Errorf("missing --site and no site in config (known: %v)", sites.Names())
	}
	if cfg.Title == "" {
		return fmt.Errorf("missing --title and no title in config")
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        cfg.UserAgent,
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		Logger:           ui.NewLogger(cfg.Debug),
	})

	site, err := sites.New(cfg.Site, cfg.Title, fetcher)
	if err != nil {
		return err
	}

	all, err := site.Chapters(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%d chapters of %s on %s:\n", len(all), site.Title(), site.Name())
	for i, ch := range all {
		fmt.Printf("%4d) c%-8s %s\n", i+1, ch.Number, ch.URL)
	}

	return nil
}
