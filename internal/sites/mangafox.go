package sites

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/getmanga/getmanga/internal/fetch"
)

var mangafoxPageSuffix = regexp.MustCompile(`[0-9]+\.html$`)

func mangafoxRules() rules {
	return rules{
		name:       "mangafox",
		baseURL:    "http://mangafox.me",
		descending: true,

		chapterSelector: "a.tips",
		pageSelector:    "#top_bar option",
		imageSelector:   "img#image",

		titleURL:      mangaSubdirTitleURL,
		chapterNumber: numberFromHrefSegment,
		chapterURL:    func(_, href string) string { return href },
		pageURL: func(chapterURL, number string) string {
			return mangafoxPageSuffix.ReplaceAllString(chapterURL, number+".html")
		},
	}
}

// mangaSubdirTitleURL serves the hosts that keep titles under /manga/.
func mangaSubdirTitleURL(_ context.Context, s *htmlSite) (string, error) {
	return fmt.Sprintf("%s/manga/%s/", s.baseURL, s.title), nil
}

// numberFromHrefSegment reads the chapter number out of the second-to-last
// path segment, e.g. .../c052/1.html -> 52.
func numberFromHrefSegment(href, _ string) string {
	parts := strings.Split(strings.TrimSuffix(href, "/"), "/")
	if len(parts) < 2 {
		return "0"
	}
	seg := parts[len(parts)-2]
	seg = strings.TrimLeft(seg, "c")
	seg = strings.TrimLeft(seg, "0")
	if seg == "" {
		return "0"
	}
	return seg
}

func init() {
	Register("mangafox", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(mangafoxRules(), title, f)
	})
}
