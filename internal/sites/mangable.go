package sites

import (
	"regexp"
	"strings"

	"github.com/getmanga/getmanga/internal/fetch"
)

var (
	mangableSpace   = regexp.MustCompile(`\s+`)
	mangableInvalid = regexp.MustCompile(`[^\-_a-z0-9]+`)
)

func mangableRules() rules {
	return rules{
		name:       "mangable",
		baseURL:    "http://mangable.com",
		descending: true,

		chapterSelector: "div#newlist ul li a",
		pageSelector:    "div#select_page select option",
		imageSelector:   "#image",

		canonTitle: func(raw string) string {
			t := mangableSpace.ReplaceAllString(strings.ToLower(raw), "_")
			return mangableInvalid.ReplaceAllString(t, "")
		},
		chapterNumber: func(href, _ string) string {
			parts := strings.Split(strings.TrimSuffix(href, "/"), "/")
			seg := parts[len(parts)-1]
			if i := strings.LastIndexByte(seg, '-'); i >= 0 {
				seg = seg[i+1:]
			}
			return seg
		},
		chapterURL: func(_, href string) string { return href },
		pageURL: func(chapterURL, number string) string {
			return chapterURL + number
		},
	}
}

func init() {
	Register("mangable", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(mangableRules(), title, f)
	})
}
