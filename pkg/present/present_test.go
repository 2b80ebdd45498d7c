package present

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/ardalis/pkg/render"
	"github.com/elonfeng/ardalis/pkg/source"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "hello", limit: 50, want: "hello"},
		{name: "exact", in: strings.Repeat("a", 50), limit: 50, want: strings.Repeat("a", 50)},
		{name: "cut", in: strings.Repeat("a", 51), limit: 50, want: strings.Repeat("a", 47) + "..."},
		{name: "runes", in: "ééééé", limit: 4, want: "é..."},
		{name: "tiny limit", in: "abcdef", limit: 2, want: "ab"},
		{name: "empty", in: "", limit: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), max(tt.limit, len([]rune(tt.in))))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "36,255,041", FormatCount(36255041))
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "https://dometrain.com/course/x/",
		DisplayURL("https://dometrain.com/course/x/?ref=steve&coupon_code=ARDALIS"))
	assert.Equal(t, "https://ardalis.com/books", DisplayURL("https://ardalis.com/books#top"))
}

func TestPackages_Row(t *testing.T) {
	p := Packages(render.PlainTheme())
	require.Equal(t, LayoutTable, p.Layout)
	require.Len(t, p.Columns, 3)
	assert.Equal(t, render.AlignRight, p.Columns[1].Align)

	row := p.Row(source.Item{
		Title:       "Ardalis.GuardClauses",
		Description: "Guard clause extensions for validating method arguments",
		Popularity:  36255041,
	}, 1)
	assert.Equal(t, []string{
		"Ardalis.GuardClauses",
		"📦 36,255,041",
		"Guard clause extensions for validating method a...",
	}, row)
	assert.Len(t, []rune(row[2]), PackageDescriptionMax)
}

func TestRepos_Row(t *testing.T) {
	p := Repos(render.PlainTheme())
	row := p.Row(source.Item{Title: "Result", Popularity: 1234}, 1)
	assert.Equal(t, []string{"Result", "⭐ 1,234", "No description"}, row)

	long := strings.Repeat("x", 100)
	row = p.Row(source.Item{Title: "Result", Description: long}, 1)
	assert.Len(t, []rune(row[2]), RepoDescriptionMax)
}

func TestVideos_Highlight(t *testing.T) {
	p := Videos(render.PlainTheme(), InSet("mine"))

	mine := p.Row(source.Item{ID: "mine", Title: "My Talk", Popularity: 1200}, 2)
	assert.Equal(t, []string{"2", "⭐ My Talk", "1,200"}, mine)

	other := p.Row(source.Item{ID: "other", Title: "Keynote", Popularity: 5000}, 1)
	assert.Equal(t, []string{"1", "Keynote", "5,000"}, other)
	assert.NotContains(t, other[1], HighlightMark)
}

func TestVideos_DefaultPredicateUsesFlag(t *testing.T) {
	p := Videos(render.PlainTheme(), nil)

	row := p.Row(source.Item{Title: "Talk", Highlight: true}, 1)
	assert.True(t, strings.HasPrefix(row[1], HighlightMark))

	row = p.Row(source.Item{Title: strings.Repeat("t", 120)}, 1)
	assert.Len(t, []rune(row[1]), VideoTitleMax)
}

func TestBooks_Panel(t *testing.T) {
	p := Books(render.PlainTheme())
	require.Equal(t, LayoutPanels, p.Layout)

	body := p.Panel(source.Item{Title: "Book", URL: "https://ardalis.com/b?utm=x"})
	assert.Contains(t, body, "Book\n\nNo description available")
	assert.Contains(t, body, "Publisher: N/A")
	assert.Contains(t, body, "Published: N/A")
	assert.Contains(t, body, "Learn more: https://ardalis.com/b")
	assert.NotContains(t, body, "utm")
}

func TestCourses_Panel(t *testing.T) {
	p := Courses(render.PlainTheme())
	body := p.Panel(source.Item{Title: "SOLID", Description: "Principles", URL: "https://example.com/c"})
	assert.Equal(t, "SOLID\n\nPrinciples\n\nLearn more: https://example.com/c", body)
	assert.Equal(t, "courses", p.Noun)
}

func TestRecent_Row(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	p := Recent(render.PlainTheme(), func() time.Time { return now })

	row := p.Row(source.Item{
		Title:       strings.Repeat("w", 70),
		Platform:    "Blog",
		PublishedAt: now.Add(-72 * time.Hour),
		URL:         "https://ardalis.com/post",
	}, 1)
	assert.Equal(t, "📝 Blog", row[0])
	assert.Len(t, []rune(row[1]), RecentTitleMax)
	assert.Equal(t, "3 days ago", row[2])
	assert.Equal(t, "Click for details", row[3])

	row = p.Row(source.Item{Title: "undated", Platform: "Elsewhere"}, 1)
	assert.Equal(t, "🔗 Elsewhere", row[0])
	assert.Equal(t, "-", row[2])
}
