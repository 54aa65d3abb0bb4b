package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmanga/getmanga/internal/chapters"
	"github.com/getmanga/getmanga/internal/config"
	"github.com/getmanga/getmanga/internal/downloader"
	"github.com/getmanga/getmanga/internal/fetch"
	"github.com/getmanga/getmanga/internal/sites"
	"github.com/getmanga/getmanga/internal/ui"
	"github.com/getmanga/getmanga/internal/util"
)

var (
	// selection
	flagSite    string
	flagTitle   string
	flagChapter string
	flagRange   string
	flagList    string
	flagLatest  bool

	// runtime
	flagOutput      string
	flagConcurrency int
	flagTimeout     int
	flagDryRun      bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCFBypass   bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download chapters of a title and produce one CBZ per chapter. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagSite, "site", "", "site adapter to use (see `getmanga sites`)")
	downloadCmd.Flags().StringVar(&flagTitle, "title", "", "manga title to download")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download single chapter by number or index (e.g. 5 or 28.5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")
	downloadCmd.Flags().BoolVar(&flagLatest, "latest", false, "download only the newest chapter")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for CBZ files")
	downloadCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "parallel image downloads per chapter (default 4)")
	downloadCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds (default 30)")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagCFBypass, "cf-bypass", false, "enable Cloudflare bypass headers")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Site:             flagSite,
		Title:            flagTitle,
		Output:           flagOutput,
		Concurrency:      flagConcurrency,
		TimeoutSeconds:   flagTimeout,
		DefaultRange:     flagRange,
		DefaultList:      flagList,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCFBypass,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Site == "" {
		return fmt.Errorf("missing --site and no site in config (known: %v)", sites.Names())
	}
	if cfg.Title == "" {
		return fmt.Errorf("missing --title and no title in config")
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	fetcher := fetch.New(fetch.Options{
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:        cfg.UserAgent,
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		Logger:           logSvc,
	})

	site, err := sites.New(cfg.Site, cfg.Title, fetcher)
	if err != nil {
		return err
	}

	ctx := context.Background()
	util.SetupInterruptHandler(cfg.Output)

	all, err := site.Chapters(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return fmt.Errorf("no chapters found for %s on %s", site.Title(), site.Name())
	}

	if flagChapter == "" && flagRange == "" && flagList == "" && !flagLatest &&
		cfg.DefaultRange == "" && cfg.DefaultList == "" {
		fmt.Printf("Found %d chapters on the site.\n\n", len(all))
	}

	selected := chapters.Select(all, flagChapter, cfg.DefaultRange, cfg.DefaultList, flagLatest)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for i, ch := range selected {
			fmt.Printf("%3d) %s  [%s]\n    %s\n", i+1, ch.Name, ch.Number, ch.URL)
		}
		return nil
	}

	pm := ui.NewProgressManager()
	stats := &ui.Stats{}
	dl := downloader.New(fetcher, cfg.Output, cfg.Concurrency, logSvc)
	start := time.Now()

	var failed int
	for _, ch := range selected {
		handle := pm.Register("c" + ch.Number)

		res, err := dl.DownloadChapter(ctx, site, ch, handle)
		if err != nil {
			handle.Abandon()
			logSvc.Errorf("Chapter %s failed: %v\n", ch.Number, err)
			failed++
			continue
		}

		if res.Skipped {
			handle.Abandon()
			fmt.Printf("%s exists, skipped download\n", res.Archive)
			stats.Skipped.Add(1)
			continue
		}

		stats.Chapters.Add(1)
		stats.Pages.Add(int64(res.Pages))
		stats.Bytes.Add(res.Bytes)
	}
	pm.Wait()

	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Chapters: %d\n", stats.Chapters.Load())
	fmt.Printf("Pages:    %d\n", stats.Pages.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.Bytes.Load()))
	if n := stats.Skipped.Load(); n > 0 {
		fmt.Printf("Skipped:  %d (already downloaded)\n", n)
	}
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))

	if failed > 0 {
		return fmt.Errorf("%d of %d chapters failed", failed, len(selected))
	}

	fmt.Println("\nAll done.")
	return nil
}
