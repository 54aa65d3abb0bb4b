package sites

import (
	"regexp"
	"strings"

	"github.com/getmanga/getmanga/internal/fetch"
)

var (
	mangastreamDigits     = regexp.MustCompile(`[0-9]+`)
	mangastreamLastNumber = regexp.MustCompile(`[0-9]+$`)
)

func mangastreamRules() rules {
	return rules{
		name:       "mangastream",
		baseURL:    "http://mangastream.com",
		descending: true,

		chapterSelector: "td a",
		pageSelector:    "div.btn-group ul.dropdown-menu li a",
		imageSelector:   "img#manga-page",

		titleURL: mangaSubdirTitleURL,
		chapterNumber: func(_, text string) string {
			number, _, _ := strings.Cut(text, " - ")
			return strings.TrimSpace(number)
		},
		chapterURL: func(_, href string) string { return href },
		validChapter: func(s *htmlSite, href string) bool {
			return strings.Contains(href, "/"+s.title+"/")
		},
		pageNumber: func(text string) string {
			if text == "" || text == "Full List" {
				return ""
			}
			return mangastreamDigits.FindString(text)
		},
		pageURL: func(chapterURL, number string) string {
			return mangastreamLastNumber.ReplaceAllString(chapterURL, number)
		},
	}
}

func init() {
	Register("mangastream", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(mangastreamRules(), title, f)
	})
}
