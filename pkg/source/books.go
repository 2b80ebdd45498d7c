package source

import (
	"context"
	"net/http"
)

// Books fetches the published book list.
type Books struct {
	http     transport
	endpoint Endpoint
}

// NewBooks creates a new book fetcher.
func NewBooks(client *http.Client, userAgent string, endpoint Endpoint) *Books {
	return &Books{http: newTransport(client, userAgent), endpoint: endpoint}
}

func (b *Books) Kind() Kind { return KindBooks }

func (b *Books) Fetch(ctx context.Context) ([]Item, error) {
	ctx, cancel := withTimeout(ctx, b.endpoint.Timeout)
	defer cancel()

	var books []bookJSON
	if err := b.http.getJSON(ctx, b.endpoint.URL, nil, &books); err != nil {
		return nil, fail(KindBooks, err)
	}

	items := make([]Item, 0, len(books))
	for _, bk := range books {
		items = append(items, Item{
			Kind:        KindBooks,
			ID:          bk.ISBN,
			Title:       bk.Title,
			URL:         bk.Link,
			Description: bk.Description,
			Publisher:   bk.Publisher,
			Published:   bk.PublicationDate,
		})
	}
	return items, nil
}

type bookJSON struct {
	Title           string `json:"title"`
	Link            string `json:"link"`
	CoverImage      string `json:"coverImage"`
	Description     string `json:"description"`
	Publisher       string `json:"publisher"`
	PublicationDate string `json:"publicationDate"`
	ISBN            string `json:"isbn"`
}
