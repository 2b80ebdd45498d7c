package arrange

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
}

// ParseYear extracts a year from a free-text publication date. It accepts a
// bare integer, a parseable date, or a 19xx/20xx year anywhere in the text.
// Anything else is 0.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if year, err := strconv.Atoi(s); err == nil {
		return year
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}

	if m := yearPattern.FindString(s); m != "" {
		year, _ := strconv.Atoi(m)
		return year
	}
	return 0
}
