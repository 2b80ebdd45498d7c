// Package arrange orders a fetched collection for display: one stable sort by
// a primary key, optionally partitioned into groups ordered by key.
package arrange

import (
	"cmp"
	"slices"
	"strings"

	"github.com/elonfeng/ardalis/pkg/source"
)

// Policy describes how one content kind is ordered.
type Policy struct {
	// Compare orders items inside the whole collection, or inside each group
	// when GroupBy is set. Nil keeps the fetch order.
	Compare func(a, b source.Item) int

	// GroupBy extracts the grouping key. Nil disables grouping.
	GroupBy func(source.Item) string
}

// Entry is one item of an arranged sequence together with its group key.
type Entry struct {
	Item  source.Item
	Group string
}

// Sequence is the display order produced by Arrange.
type Sequence struct {
	Entries []Entry
	Grouped bool
}

// Len returns the number of entries.
func (s Sequence) Len() int { return len(s.Entries) }

// Groups returns the group keys in display order, each once.
func (s Sequence) Groups() []string {
	if !s.Grouped {
		return nil
	}
	var groups []string
	for i, e := range s.Entries {
		if i == 0 || e.Group != s.Entries[i-1].Group {
			groups = append(groups, e.Group)
		}
	}
	return groups
}

// Items returns the arranged items without group annotations.
func (s Sequence) Items() []source.Item {
	items := make([]source.Item, len(s.Entries))
	for i, e := range s.Entries {
		items[i] = e.Item
	}
	return items
}

// Arrange returns items in display order. Sorting is stable, so ties keep the
// fetch order and arranging an arranged collection changes nothing. Group keys
// are compared byte-wise. The input slice is not modified.
func Arrange(items []source.Item, p Policy) Sequence {
	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{Item: it}
		if p.GroupBy != nil {
			entries[i].Group = p.GroupBy(it)
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if p.GroupBy != nil {
			if c := strings.Compare(a.Group, b.Group); c != 0 {
				return c
			}
		}
		if p.Compare != nil {
			return p.Compare(a.Item, b.Item)
		}
		return 0
	})

	return Sequence{Entries: entries, Grouped: p.GroupBy != nil}
}

// ByPopularityDesc orders by download, star or view count, highest first.
func ByPopularityDesc(a, b source.Item) int {
	return cmp.Compare(b.Popularity, a.Popularity)
}

// ByYearDesc orders by the year found in Published, newest first.
func ByYearDesc(a, b source.Item) int {
	return cmp.Compare(ParseYear(b.Published), ParseYear(a.Published))
}

// ByPublishedAtDesc orders by timestamp, newest first.
func ByPublishedAtDesc(a, b source.Item) int {
	return b.PublishedAt.Compare(a.PublishedAt)
}

// ByPlatform groups by Platform, using "Other" when it is empty.
func ByPlatform(it source.Item) string {
	if strings.TrimSpace(it.Platform) == "" {
		return "Other"
	}
	return it.Platform
}
