package chapters_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmanga/getmanga/internal/chapters"
	"github.com/getmanga/getmanga/internal/sites"
)

func listing(n int) []sites.Chapter {
	out := make([]sites.Chapter, n)
	for i := range out {
		out[i] = sites.Chapter{
			Number: fmt.Sprintf("%d", i+1),
			Name:   fmt.Sprintf("title_c%03d", i+1),
		}
	}
	return out
}

func TestSelectByNumber(t *testing.T) {
	all := listing(10)

	got := chapters.Select(all, "7", "", "", false)
	assert.Len(t, got, 1)
	assert.Equal(t, "7", got[0].Number)
}

func TestSelectByIndexFallback(t *testing.T) {
	// numbers that don't match any chapter fall back to 1-based index
	all := []sites.Chapter{
		{Number: "10.5", Name: "title_c10.5"},
		{Number: "11", Name: "title_c011"},
	}

	got := chapters.Select(all, "2", "", "", false)
	assert.Len(t, got, 1)
	assert.Equal(t, "11", got[0].Number)
}

func TestSelectUnknownChapter(t *testing.T) {
	assert.Empty(t, chapters.Select(listing(3), "99", "", "", false))
}

func TestSelectRange(t *testing.T) {
	got := chapters.Select(listing(10), "", "3-5", "", false)
	assert.Len(t, got, 3)
	assert.Equal(t, "3", got[0].Number)
	assert.Equal(t, "5", got[2].Number)

	assert.Empty(t, chapters.Select(listing(10), "", "8-3", "", false))
	assert.Empty(t, chapters.Select(listing(10), "", "1-99", "", false))
	assert.Empty(t, chapters.Select(listing(10), "", "junk", "", false))
}

func TestSelectList(t *testing.T) {
	got := chapters.Select(listing(10), "", "", "1, 4,9", false)
	assert.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Number)
	assert.Equal(t, "4", got[1].Number)
	assert.Equal(t, "9", got[2].Number)

	// out-of-range and junk entries are ignored
	got = chapters.Select(listing(3), "", "", "2,99,x", false)
	assert.Len(t, got, 1)
}

func TestSelectLatest(t *testing.T) {
	got := chapters.Select(listing(10), "", "", "", true)
	assert.Len(t, got, 1)
	assert.Equal(t, "10", got[0].Number)

	assert.Empty(t, chapters.Select(nil, "", "", "", true))
}

func TestSelectAll(t *testing.T) {
	assert.Len(t, chapters.Select(listing(4), "", "", "", false), 4)
}
