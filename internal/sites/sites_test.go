package sites

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmanga/getmanga/internal/fetch"
)

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"animea", "mangable", "mangafox", "mangahere", "mangareader", "mangastream"}, names)

	f := fetch.New(fetch.Options{})

	s, err := New("mangafox", "Naruto", f)
	require.NoError(t, err)
	assert.Equal(t, "mangafox", s.Name())
	assert.Equal(t, "naruto", s.Title())

	_, err = New("nosuchsite", "Naruto", f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site")
}

func TestCanonicalTitle(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Naruto", "naruto"},
		{"One Piece", "one_piece"},
		{"  D.Gray-man!! ", "d_gray_man"},
		{"Fullmetal  Alchemist", "fullmetal_alchemist"},
	}
	for _, tc := range cases {
		got := canonicalTitle(tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
		// must be idempotent
		assert.Equal(t, got, canonicalTitle(got))
	}
}

func TestSiteSpecificTitles(t *testing.T) {
	mangable := mangableRules().canonTitle
	assert.Equal(t, "one_piece", mangable("One Piece"))
	assert.Equal(t, "dgray-man", mangable("D.Gray-man"))

	animea := animeaRules().canonTitle
	assert.Equal(t, "one-piece", animea("One Piece"))

	mangareader := mangareaderRules().canonTitle
	assert.Equal(t, "one-piece", mangareader("One Piece"))
	assert.Equal(t, "hunter-x-hunter", mangareader("Hunter X Hunter"))

	for _, canon := range []func(string) string{mangable, animea, mangareader} {
		once := canon("Some Long  Title 2")
		assert.Equal(t, once, canon(once))
	}
}

func TestChapterName(t *testing.T) {
	assert.Equal(t, "naruto_c005", chapterName("naruto", "5", "/naruto/chapter-5/"))
	assert.Equal(t, "naruto_c120", chapterName("naruto", "120", "/naruto/chapter-120/"))
	assert.Equal(t, "naruto_v02c013", chapterName("naruto", "13", "/manga/naruto/v02/c013/1.html"))
	assert.Equal(t, "bleach_c10.5", chapterName("bleach", "10.5", "/bleach/10.5/"))
}

func TestDefaultPageNumber(t *testing.T) {
	assert.Equal(t, "7", defaultPageNumber("7"))
	assert.Equal(t, "", defaultPageNumber("Prev Page"))
	assert.Equal(t, "", defaultPageNumber("Next Page"))
	assert.Equal(t, "", defaultPageNumber("Comments (3)"))
}

func TestHTMLSiteScraping(t *testing.T) {
	var srvURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/manga/naruto/", func(w http.ResponseWriter, r *http.Request) {
		// site lists newest chapter first
		fmt.Fprintf(w, `<html><body>
			<a class="tips" href="%s/naruto/c002/1.html">Naruto 2</a>
			<a class="tips" href="%s/naruto/c001/1.html">Naruto 1</a>
		</body></html>`, srvURL, srvURL)
	})
	mux.HandleFunc("/naruto/c001/1.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div id="top_bar">
			<select><option>1</option><option>2</option><option>Comments</option></select>
		</div></body></html>`)
	})
	mux.HandleFunc("/naruto/c001/2.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><img id="image" src="%s/img/002.jpg?token=abc"></body></html>`, srvURL)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	r := mangafoxRules()
	r.baseURL = srv.URL
	site := newHTMLSite(r, "Naruto", fetch.New(fetch.Options{}))

	ctx := context.Background()

	chapters, err := site.Chapters(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	// normalized to ascending despite descending site order
	assert.Equal(t, "1", chapters[0].Number)
	assert.Equal(t, "naruto_c001", chapters[0].Name)
	assert.Equal(t, "2", chapters[1].Number)

	pages, err := site.Pages(ctx, chapters[0])
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "1", pages[0].Number)
	assert.Equal(t, srv.URL+"/naruto/c001/1.html", pages[0].URL)
	assert.Equal(t, srv.URL+"/naruto/c001/2.html", pages[1].URL)

	img, err := site.ImageURL(ctx, pages[1])
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/img/002.jpg", img)
}

func TestImageURLMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))
	defer srv.Close()

	r := mangafoxRules()
	r.baseURL = srv.URL
	site := newHTMLSite(r, "naruto", fetch.New(fetch.Options{}))

	_, err := site.ImageURL(context.Background(), Page{Number: "1", URL: srv.URL + "/p/1.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image found")
}

func TestMangastreamPageNumber(t *testing.T) {
	r := mangastreamRules()
	assert.Equal(t, "12", r.pageNumber("Page 12"))
	assert.Equal(t, "", r.pageNumber("Full List"))
	assert.Equal(t, "", r.pageNumber(""))
	assert.Equal(t, "http://mangastream.com/read/naruto/c700/7", r.pageURL("http://mangastream.com/read/naruto/c700/1", "7"))
}

func TestNumberFromHrefSegment(t *testing.T) {
	assert.Equal(t, "52", numberFromHrefSegment("http://mangafox.me/manga/naruto/v06/c052/1.html", ""))
	assert.Equal(t, "0", numberFromHrefSegment("http://mangafox.me/manga/naruto/c000/1.html", ""))
}
