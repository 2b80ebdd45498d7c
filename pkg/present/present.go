// Package present holds the per-kind rules that turn an item into a panel or
// a table row: truncation, number formatting, links and highlights.
package present

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/elonfeng/ardalis/pkg/render"
	"github.com/elonfeng/ardalis/pkg/source"
)

// Truncation limits, in characters, including the ellipsis.
const (
	PackageDescriptionMax = 50
	RepoDescriptionMax    = 60
	RecentTitleMax        = 60
	VideoTitleMax         = 80

	ellipsis      = "..."
	HighlightMark = "⭐ "
)

var printer = message.NewPrinter(language.English)

// Layout selects panel-per-item or table-of-rows rendering.
type Layout int

const (
	LayoutPanels Layout = iota
	LayoutTable
)

// Policy is the presentation of one content kind.
type Policy struct {
	// Noun is the plural name used in notices, e.g. "books"; Singular is
	// the name of one item, e.g. "book".
	Noun     string
	Singular string
	Layout   Layout
	Border   render.Tone

	// Panel returns the body of the item's panel (LayoutPanels).
	Panel func(it source.Item) string

	// Columns and Row describe the table (LayoutTable). rank is the 1-based
	// position of the item in the whole sequence.
	Columns []render.Column
	Row     func(it source.Item, rank int) []string
}

// Truncate shortens s to limit characters, ending in "..." when cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(runes[:max(limit, 0)])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// FormatCount formats n with thousands separators: 36255041 → "36,255,041".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// DisplayURL drops the query string and fragment so tracking parameters are
// not shown; the link target keeps them.
func DisplayURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// InSet returns a highlight predicate matching items whose ID is in ids.
func InSet(ids ...string) func(source.Item) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(it source.Item) bool { return set[it.ID] }
}

// Flagged is the highlight predicate using the fetched Highlight field.
func Flagged(it source.Item) bool { return it.Highlight }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Books shows one blue panel per book.
func Books(th render.Theme) Policy {
	return Policy{
		Noun:     "books",
		Singular: "book",
		Layout:   LayoutPanels,
		Border:   render.ToneInfo,
		Panel: func(it source.Item) string {
			description := it.Description
			if description == "" {
				description = th.Paint(render.ToneMuted, "No description available")
			}
			return th.Bold(it.Title) + "\n\n" +
				description + "\n\n" +
				th.Paint(render.ToneMuted, "Publisher: ") + orDefault(it.Publisher, "N/A") + "\n" +
				th.Paint(render.ToneMuted, "Published: ") + orDefault(it.Published, "N/A") + "\n\n" +
				th.Paint(render.ToneMuted, "Learn more: ") + th.Paint(render.ToneAccent, th.Link(DisplayURL(it.URL), it.URL))
		},
	}
}

// Courses shows one green panel per course.
func Courses(th render.Theme) Policy {
	return Policy{
		Noun:     "courses",
		Singular: "course",
		Layout:   LayoutPanels,
		Border:   render.ToneSuccess,
		Panel: func(it source.Item) string {
			description := it.Description
			if description == "" {
				description = th.Paint(render.ToneMuted, "No description available")
			}
			return th.Bold(it.Title) + "\n\n" +
				description + "\n\n" +
				th.Paint(render.ToneMuted, "Learn more: ") + th.Paint(render.ToneAccent, th.Link(DisplayURL(it.URL), it.URL))
		},
	}
}

// Packages shows a table of packages and download counts.
func Packages(th render.Theme) Policy {
	return Policy{
		Noun:     "packages",
		Singular: "package",
		Layout:   LayoutTable,
		Columns: []render.Column{
			{Title: "Package"},
			{Title: "Downloads", Align: render.AlignRight},
			{Title: "Description"},
		},
		Row: func(it source.Item, _ int) []string {
			return []string{
				th.Paint(render.ToneAccent, th.Link(it.Title, it.URL)),
				th.Paint(render.ToneWarn, "📦 "+FormatCount(it.Popularity)),
				th.Paint(render.ToneMuted, Truncate(it.Description, PackageDescriptionMax)),
			}
		},
	}
}

// Repos shows a table of repositories and star counts.
func Repos(th render.Theme) Policy {
	return Policy{
		Noun:     "repositories",
		Singular: "repository",
		Layout:   LayoutTable,
		Columns: []render.Column{
			{Title: "Repository"},
			{Title: "Stars", Align: render.AlignRight},
			{Title: "Description"},
		},
		Row: func(it source.Item, _ int) []string {
			return []string{
				th.Paint(render.ToneAccent, th.Link(it.Title, it.URL)),
				th.Paint(render.ToneWarn, "⭐ "+FormatCount(it.Popularity)),
				th.Paint(render.ToneMuted, Truncate(orDefault(it.Description, "No description"), RepoDescriptionMax)),
			}
		},
	}
}

// Videos shows a ranked table of videos by views. Rows for which highlighted
// returns true carry the highlight marker and emphasis.
func Videos(th render.Theme, highlighted func(source.Item) bool) Policy {
	if highlighted == nil {
		highlighted = Flagged
	}
	return Policy{
		Noun:     "videos",
		Singular: "video",
		Layout:   LayoutTable,
		Columns: []render.Column{
			{Title: "Rank", Align: render.AlignCenter},
			{Title: "Title"},
			{Title: "Views", Align: render.AlignRight},
		},
		Row: func(it source.Item, rank int) []string {
			title := Truncate(it.Title, VideoTitleMax)
			views := FormatCount(it.Popularity)
			if highlighted(it) {
				return []string{
					th.Strong(render.ToneHighlight, strconv.Itoa(rank)),
					th.Strong(render.ToneHighlight, th.Link(HighlightMark+title, it.URL)),
					th.Strong(render.ToneHighlight, views),
				}
			}
			return []string{
				th.Paint(render.ToneMuted, strconv.Itoa(rank)),
				th.Link(title, it.URL),
				th.Paint(render.ToneMuted, views),
			}
		},
	}
}

// Recent shows a table of recent activity with relative times against now.
func Recent(th render.Theme, now func() time.Time) Policy {
	if now == nil {
		now = time.Now
	}
	return Policy{
		Noun:     "recent activities",
		Singular: "recent activity",
		Layout:   LayoutTable,
		Columns: []render.Column{
			{Title: "Source", Align: render.AlignCenter},
			{Title: "Activity"},
			{Title: "When", Align: render.AlignRight},
			{Title: "Link", Align: render.AlignCenter},
		},
		Row: func(it source.Item, _ int) []string {
			when := "-"
			if !it.PublishedAt.IsZero() {
				when = humanize.RelTime(it.PublishedAt, now(), "ago", "from now")
			}
			return []string{
				PlatformIcon(it.Platform) + " " + it.Platform,
				Truncate(it.Title, RecentTitleMax),
				when,
				th.Paint(render.ToneAccent, th.Link("Click for details", it.URL)),
			}
		},
	}
}

// PlatformIcon returns the emoji shown next to a recent-activity source.
func PlatformIcon(platform string) string {
	switch platform {
	case "Blog":
		return "📝"
	case "GitHub":
		return "🐙"
	case "YouTube":
		return "🎥"
	case "Newsletter":
		return "📧"
	}
	return "🔗"
}
