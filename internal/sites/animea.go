package sites

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/getmanga/getmanga/internal/fetch"
)

var (
	animeaInvalid    = regexp.MustCompile(`[^a-z0-9_]+`)
	animeaHTMLSuffix = regexp.MustCompile(`\.html$`)
)

func animeaRules() rules {
	return rules{
		name:       "animea",
		baseURL:    "http://manga.animea.net",
		descending: true,

		chapterSelector: "ul.chapters_list li a",
		pageSelector:    "div.topborder select.pageselect option",
		imageSelector:   "img.mangaimg",

		canonTitle: func(raw string) string {
			return animeaInvalid.ReplaceAllString(strings.ToLower(raw), "-")
		},
		titleURL: func(_ context.Context, s *htmlSite) (string, error) {
			return fmt.Sprintf("%s/%s.html?skip=1", s.baseURL, s.title), nil
		},
		validChapter: func(s *htmlSite, href string) bool {
			return strings.Contains(href, s.title)
		},
		pageURL: func(chapterURL, number string) string {
			return animeaHTMLSuffix.ReplaceAllString(chapterURL, "-page-"+number+".html")
		},
	}
}

func init() {
	Register("animea", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(animeaRules(), title, f)
	})
}
