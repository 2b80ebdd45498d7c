package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Feed is a named RSS/Atom feed URL.
type Feed struct {
	Name string
	URL  string
}

// Feeds collects recent activity from RSS/Atom feeds.
type Feeds struct {
	http    transport
	feeds   []Feed
	perFeed int
	timeout time.Duration
}

// NewFeeds creates a new recent-activity collector. Only the newest perFeed
// entries of each feed are kept; perFeed <= 0 keeps all of them.
func NewFeeds(client *http.Client, userAgent string, feeds []Feed, perFeed int, timeout time.Duration) *Feeds {
	return &Feeds{
		http:    newTransport(client, userAgent),
		feeds:   feeds,
		perFeed: perFeed,
		timeout: timeout,
	}
}

func (f *Feeds) Kind() Kind { return KindRecent }

func (f *Feeds) Fetch(ctx context.Context) ([]Item, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()

	log := zerolog.Ctx(ctx)
	results := make([][]Item, len(f.feeds))
	errs := make([]error, len(f.feeds))

	var eg errgroup.Group
	for i, feed := range f.feeds {
		eg.Go(func() error {
			items, err := f.collectFeed(ctx, feed)
			if err != nil {
				log.Warn().Err(err).Str("feed", feed.Name).Msg("failed to fetch feed")
				errs[i] = err
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = eg.Wait()

	var all []Item
	failed := 0
	for i := range f.feeds {
		if errs[i] != nil {
			failed++
			continue
		}
		all = append(all, results[i]...)
	}

	if failed > 0 && failed == len(f.feeds) {
		return nil, fail(KindRecent, errors.Join(errs...))
	}
	if all == nil {
		all = []Item{}
	}
	return all, nil
}

func (f *Feeds) collectFeed(ctx context.Context, feed Feed) ([]Item, error) {
	body, err := f.http.get(ctx, feed.URL, http.Header{"Accept": {"application/rss+xml, application/atom+xml, */*"}})
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := Item{
			Kind:     KindRecent,
			ID:       entry.GUID,
			Title:    entry.Title,
			URL:      entry.Link,
			Platform: feed.Name,
		}
		if item.URL == "" && len(entry.Links) > 0 {
			item.URL = entry.Links[0]
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			item.PublishedAt = entry.UpdatedParsed.UTC()
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if f.perFeed > 0 && len(items) > f.perFeed {
		items = items[:f.perFeed]
	}
	return items, nil
}
