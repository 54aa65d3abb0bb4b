package sites

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/getmanga/getmanga/internal/fetch"
)

// rules describes everything that varies between the supported hosts: where
// the title index lives, the selectors for the chapter/page/image markup, and
// how numbers and URLs are derived from it. htmlSite does the rest.
type rules struct {
	name       string
	baseURL    string
	descending bool

	chapterSelector string
	pageSelector    string
	imageSelector   string

	// Optional overrides; nil means the shared default applies.
	canonTitle    func(raw string) string
	titleURL      func(ctx context.Context, s *htmlSite) (string, error)
	chapterNumber func(href, text string) string
	chapterURL    func(base, href string) string
	validChapter  func(s *htmlSite, href string) bool
	pageNumber    func(text string) string
	pageURL       func(chapterURL, number string) string
}

type htmlSite struct {
	rules
	fetcher *fetch.Fetcher
	title   string
}

func newHTMLSite(r rules, title string, f *fetch.Fetcher) *htmlSite {
	canon := r.canonTitle
	if canon == nil {
		canon = canonicalTitle
	}
	return &htmlSite{rules: r, fetcher: f, title: canon(title)}
}

func (s *htmlSite) Name() string  { return s.name }
func (s *htmlSite) Title() string { return s.title }

func (s *htmlSite) Chapters(ctx context.Context) ([]Chapter, error) {
	indexURL, err := s.indexURL(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.document(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("list chapters for %s: %w", s.title, err)
	}

	var chapters []Chapter
	doc.Find(s.chapterSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if s.validChapter != nil && !s.validChapter(s, href) {
			return
		}

		number := s.number(href, strings.TrimSpace(sel.Text()))
		chapters = append(chapters, Chapter{
			Number: number,
			Name:   chapterName(s.title, number, href),
			URL:    s.resolveChapterURL(href),
		})
	})

	if s.descending {
		reverseChapters(chapters)
	}
	return chapters, nil
}

func (s *htmlSite) Pages(ctx context.Context, ch Chapter) ([]Page, error) {
	doc, err := s.document(ctx, ch.URL)
	if err != nil {
		return nil, fmt.Errorf("list pages for chapter %s: %w", ch.Number, err)
	}

	numberOf := s.pageNumber
	if numberOf == nil {
		numberOf = defaultPageNumber
	}
	pageURL := s.pageURL
	if pageURL == nil {
		pageURL = func(chapterURL, number string) string {
			return chapterURL + "/" + number
		}
	}

	var pages []Page
	doc.Find(s.pageSelector).Each(func(_ int, sel *goquery.Selection) {
		number := numberOf(strings.TrimSpace(sel.Text()))
		if number == "" {
			return
		}
		pages = append(pages, Page{Number: number, URL: pageURL(ch.URL, number)})
	})

	return pages, nil
}

func (s *htmlSite) ImageURL(ctx context.Context, p Page) (string, error) {
	doc, err := s.document(ctx, p.URL)
	if err != nil {
		return "", fmt.Errorf("resolve image for page %s: %w", p.Number, err)
	}

	src, ok := doc.Find(s.imageSelector).First().Attr("src")
	if !ok || src == "" {
		return "", fmt.Errorf("no image found at %s", p.URL)
	}

	// drop cache-buster query suffixes
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return src, nil
}

func (s *htmlSite) indexURL(ctx context.Context) (string, error) {
	if s.titleURL != nil {
		return s.titleURL(ctx, s)
	}
	return fmt.Sprintf("%s/%s/", s.baseURL, s.title), nil
}

func (s *htmlSite) number(href, text string) string {
	if s.chapterNumber != nil {
		return s.chapterNumber(href, text)
	}
	// last whitespace-separated token of the link text
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func (s *htmlSite) resolveChapterURL(href string) string {
	if s.chapterURL != nil {
		return s.chapterURL(s.baseURL, href)
	}
	return absoluteURL(s.baseURL, href)
}

func (s *htmlSite) document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := s.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

var (
	titleEdges  = regexp.MustCompile(`^[^a-z0-9]+|[^a-z0-9]+$`)
	titleInner  = regexp.MustCompile(`[^a-z0-9]+`)
	volumeMark  = regexp.MustCompile(`v[0-9]+`)
	navKeywords = []string{"Prev", "Next", "Comments"}
)

// canonicalTitle is the default mapping from a raw user title to the slug
// most hosts use: lowercased, punctuation runs collapsed to one underscore.
// It is idempotent.
func canonicalTitle(raw string) string {
	t := strings.ToLower(raw)
	t = titleEdges.ReplaceAllString(t, "")
	return titleInner.ReplaceAllString(t, "_")
}

// chapterName derives the archive base name for a chapter, folding in the
// volume marker when the chapter location carries one.
func chapterName(title, number, location string) string {
	if vol := volumeMark.FindString(location); vol != "" {
		return fmt.Sprintf("%s_%sc%s", title, vol, zeroPad(number, 3))
	}
	return fmt.Sprintf("%s_c%s", title, zeroPad(number, 3))
}

// zeroPad left-pads s with zeros to at least width characters.
func zeroPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// defaultPageNumber keeps the option text as the page number, discarding the
// navigation entries most hosts mix into the same dropdown.
func defaultPageNumber(text string) string {
	for _, kw := range navKeywords {
		if strings.Contains(text, kw) {
			return ""
		}
	}
	return text
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}

func reverseChapters(chapters []Chapter) {
	for i, j := 0, len(chapters)-1; i < j; i, j = i+1, j-1 {
		chapters[i], chapters[j] = chapters[j], chapters[i]
	}
}
