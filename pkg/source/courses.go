package source

import (
	"context"
	"net/http"
)

// Courses fetches the course catalog across training platforms.
type Courses struct {
	http     transport
	endpoint Endpoint
}

// NewCourses creates a new course fetcher.
func NewCourses(client *http.Client, userAgent string, endpoint Endpoint) *Courses {
	return &Courses{http: newTransport(client, userAgent), endpoint: endpoint}
}

func (c *Courses) Kind() Kind { return KindCourses }

func (c *Courses) Fetch(ctx context.Context) ([]Item, error) {
	ctx, cancel := withTimeout(ctx, c.endpoint.Timeout)
	defer cancel()

	var courses []courseJSON
	if err := c.http.getJSON(ctx, c.endpoint.URL, nil, &courses); err != nil {
		return nil, fail(KindCourses, err)
	}

	items := make([]Item, 0, len(courses))
	for _, co := range courses {
		items = append(items, Item{
			Kind:        KindCourses,
			Title:       co.Name,
			URL:         co.Link,
			Description: co.Description,
			Platform:    co.Platform,
		})
	}
	return items, nil
}

type courseJSON struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Platform    string `json:"platform"`
	Description string `json:"description"`
}
