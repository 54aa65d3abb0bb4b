package sites

import "github.com/getmanga/getmanga/internal/fetch"

func mangahereRules() rules {
	return rules{
		name:       "mangahere",
		baseURL:    "http://www.mangahere.com",
		descending: true,

		chapterSelector: "div.detail_list ul li a",
		pageSelector:    "section.readpage_top div.go_page select option",
		imageSelector:   "img#image",

		titleURL:      mangaSubdirTitleURL,
		chapterNumber: numberFromHrefSegment,
		chapterURL:    func(_, href string) string { return href },
		pageURL: func(chapterURL, number string) string {
			return chapterURL + number + ".html"
		},
	}
}

func init() {
	Register("mangahere", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(mangahereRules(), title, f)
	})
}
