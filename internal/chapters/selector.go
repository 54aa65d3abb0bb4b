// Package chapters narrows a full chapter listing down to the set the user
// asked for: one chapter by number or index, an index range, an explicit
// list, or just the latest release.
package chapters

import (
	"strconv"
	"strings"

	"github.com/getmanga/getmanga/internal/sites"
)

func Select(all []sites.Chapter, chapter, rng, list string, latest bool) []sites.Chapter {
	if latest && len(all) > 0 {
		return all[len(all)-1:]
	}

	if chapter != "" {
		byNumber := FilterByNumber(all, chapter)
		if len(byNumber) > 0 {
			return byNumber
		}

		if idx, err := strconv.Atoi(chapter); err == nil {
			if idx > 0 && idx <= len(all) {
				return []sites.Chapter{all[idx-1]}
			}
		}

		return nil
	}

	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByNumber(all []sites.Chapter, number string) []sites.Chapter {
	var out []sites.Chapter
	for _, ch := range all {
		if ch.Number == number {
			out = append(out, ch)
		}
	}
	return out
}

func FilterRange(all []sites.Chapter, rng string) []sites.Chapter {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}

	return all[start-1 : end]
}

func FilterList(all []sites.Chapter, list string) []sites.Chapter {
	var out []sites.Chapter
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx, err := strconv.Atoi(part)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}
		out = append(out, all[idx-1])
	}
	return out
}
