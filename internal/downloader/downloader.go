// Package downloader turns an ordered chapter page listing into a committed
// CBZ archive. Page images are fetched under a bounded concurrency cap; the
// archive is written in page order from a single collecting loop, and the
// first failure aborts the whole chapter with nothing left on disk.
package downloader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/getmanga/getmanga/internal/cbz"
	"github.com/getmanga/getmanga/internal/fetch"
	"github.com/getmanga/getmanga/internal/sites"
	"github.com/getmanga/getmanga/internal/ui"
)

// Reporter receives page-collection progress. Update is called once up front
// and once per collected page; Done only fires when every page made it in.
type Reporter interface {
	Update(done, total int, bytes int64)
	Done()
}

type nopReporter struct{}

func (nopReporter) Update(int, int, int64) {}
func (nopReporter) Done()                  {}

// Entry is one fetched page image, named for its archive member.
type Entry struct {
	Name string
	Data []byte
}

// FetchFunc fetches a single page's image.
type FetchFunc func(ctx context.Context, page sites.Page) (Entry, error)

// Result summarizes one chapter download.
type Result struct {
	Archive string
	Skipped bool
	Pages   int
	Bytes   int64
}

type Downloader struct {
	fetcher   *fetch.Fetcher
	outputDir string
	workers   int
	log       *ui.Logger
}

func New(f *fetch.Fetcher, outputDir string, workers int, log *ui.Logger) *Downloader {
	if workers < 1 {
		workers = 1
	}
	return &Downloader{
		fetcher:   f,
		outputDir: outputDir,
		workers:   workers,
		log:       log,
	}
}

// DownloadChapter fetches every page of ch and commits the chapter archive.
// An archive already present at the final path is a skip, not an error, and
// triggers no fetches at all.
func (d *Downloader) DownloadChapter(ctx context.Context, site sites.Site, ch sites.Chapter, rep Reporter) (Result, error) {
	out := filepath.Join(d.outputDir, ch.Name+".cbz")

	if _, err := os.Stat(out); err == nil {
		d.log.Debugf("%s exists, skipping\n", out)
		return Result{Archive: out, Skipped: true}, nil
	}

	pages, err := site.Pages(ctx, ch)
	if err != nil {
		return Result{}, fmt.Errorf("chapter %s: %w", ch.Number, err)
	}

	bytes, err := DownloadPages(ctx, pages, out, d.workers, d.pageFetcher(site), rep)
	if err != nil {
		return Result{}, fmt.Errorf("chapter %s: %w", ch.Number, err)
	}

	return Result{Archive: out, Pages: len(pages), Bytes: bytes}, nil
}

func (d *Downloader) pageFetcher(site sites.Site) FetchFunc {
	return func(ctx context.Context, page sites.Page) (Entry, error) {
		imageURL, err := site.ImageURL(ctx, page)
		if err != nil {
			return Entry{}, err
		}

		data, err := d.fetcher.Get(ctx, imageURL)
		if err != nil {
			return Entry{}, err
		}

		return Entry{Name: entryName(page, imageURL), Data: data}, nil
	}
}

// DownloadPages runs the fetch-and-package pipeline for one chapter: fan out
// up to workers concurrent fetches, collect results strictly in page order,
// and commit the archive only when all of them succeeded. On the first
// observed failure the temporary archive is dropped and the error returned;
// fetches still in flight finish in the background and are discarded.
func DownloadPages(ctx context.Context, pages []sites.Page, archivePath string, workers int, fetchPage FetchFunc, rep Reporter) (int64, error) {
	if rep == nil {
		rep = nopReporter{}
	}

	w, err := cbz.Create(archivePath)
	if err != nil {
		return 0, err
	}

	total := len(pages)
	rep.Update(0, total, 0)

	var bytes int64
	err = collect(ctx, pages, workers, fetchPage, func(i int, e Entry) error {
		if err := w.Add(e.Name, e.Data); err != nil {
			return err
		}
		bytes += int64(len(e.Data))
		rep.Update(i+1, total, bytes)
		return nil
	})
	if err != nil {
		w.Abort()
		return 0, err
	}

	if err := w.Commit(); err != nil {
		return 0, err
	}

	rep.Done()
	return bytes, nil
}

type fetchResult struct {
	entry Entry
	err   error
}

// collect fans pages out to a bounded worker pool and hands each result to
// sink in input order, regardless of completion order. Each page's result
// travels on its own buffered channel so a worker never blocks after the
// collector has bailed out.
func collect(ctx context.Context, pages []sites.Page, workers int, fetchPage FetchFunc, sink func(i int, e Entry) error) error {
	n := len(pages)
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	results := make([]chan fetchResult, n)
	for i := range results {
		results[i] = make(chan fetchResult, 1)
	}

	jobs := make(chan int)
	stop := make(chan struct{})

	for range workers {
		go func() {
			for i := range jobs {
				entry, err := fetchPage(ctx, pages[i])
				results[i] <- fetchResult{entry: entry, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range n {
			select {
			case jobs <- i:
			case <-stop:
				return
			}
		}
	}()

	for i := range n {
		r := <-results[i]
		if r.err != nil {
			close(stop)
			return fmt.Errorf("page %s: %w", pages[i].Number, r.err)
		}
		if err := sink(i, r.entry); err != nil {
			close(stop)
			return err
		}
	}

	return nil
}

// entryName builds the archive member name for a page, keeping the image's
// extension so CBZ readers can decode it.
func entryName(p sites.Page, imageURL string) string {
	ext := path.Ext(imageURL)
	if ext == "" {
		ext = ".jpg"
	}

	number := p.Number
	for len(number) < 3 {
		number = "0" + number
	}
	return number + ext
}
