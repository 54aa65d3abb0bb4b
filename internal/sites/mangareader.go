package sites

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/getmanga/getmanga/internal/fetch"
)

var (
	mangareaderSeparators = regexp.MustCompile(`[ _]+`)
	mangareaderInvalid    = regexp.MustCompile(`[^\-a-z0-9]+`)
	mangareaderPageInHTML = regexp.MustCompile(`-[0-9]+\.html$`)
)

// mangareader lists chapters oldest-first already, so no reversal is needed.
func mangareaderRules() rules {
	return rules{
		name:    "mangareader",
		baseURL: "http://www.mangareader.net",

		chapterSelector: "#chapterlist td a",
		pageSelector:    "div#selectpage option",
		imageSelector:   "img#img",

		canonTitle: func(raw string) string {
			t := mangareaderSeparators.ReplaceAllString(strings.ToLower(raw), "-")
			return mangareaderInvalid.ReplaceAllString(t, "")
		},
		titleURL: mangareaderTitleURL,
		pageURL: func(chapterURL, number string) string {
			if strings.HasSuffix(chapterURL, ".html") {
				return mangareaderPageInHTML.ReplaceAllString(chapterURL, "-"+number+".html")
			}
			return chapterURL + "/" + number
		},
	}
}

// mangareaderTitleURL locates the title through the alphabetical index, where
// older series live under a numeric prefix, falling back to the plain slug.
func mangareaderTitleURL(ctx context.Context, s *htmlSite) (string, error) {
	body, err := s.fetcher.Get(ctx, s.baseURL+"/alphabetical")
	if err != nil {
		return fmt.Sprintf("%s/%s", s.baseURL, s.title), nil
	}

	re, err := regexp.Compile(`[0-9]+/` + regexp.QuoteMeta(s.title) + `\.html`)
	if err != nil {
		return "", err
	}
	if loc := re.FindString(string(body)); loc != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, loc), nil
	}
	return fmt.Sprintf("%s/%s", s.baseURL, s.title), nil
}

func init() {
	Register("mangareader", func(title string, f *fetch.Fetcher) Site {
		return newHTMLSite(mangareaderRules(), title, f)
	})
}
