package source

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// NuGet lists the packages owned by one NuGet profile.
type NuGet struct {
	http     transport
	endpoint Endpoint
	owner    string

	// IncludeSubpackages keeps ids such as "Owner.Result.AspNetCore". When
	// false only ids with at most one '.' are returned.
	IncludeSubpackages bool
}

// NewNuGet creates a new NuGet search fetcher. endpoint.URL is the search
// query endpoint, e.g. https://azuresearch-usnc.nuget.org/query.
func NewNuGet(client *http.Client, userAgent string, endpoint Endpoint, owner string) *NuGet {
	return &NuGet{http: newTransport(client, userAgent), endpoint: endpoint, owner: owner}
}

func (n *NuGet) Kind() Kind { return KindPackages }

func (n *NuGet) Fetch(ctx context.Context) ([]Item, error) {
	ctx, cancel := withTimeout(ctx, n.endpoint.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", "owner:"+n.owner)
	params.Set("take", "100")

	var result nugetSearchResult
	if err := n.http.getJSON(ctx, n.endpoint.URL+"?"+params.Encode(), nil, &result); err != nil {
		return nil, fail(KindPackages, err)
	}
	if result.Data == nil {
		return nil, fail(KindPackages, errors.New("search response has no data"))
	}

	items := make([]Item, 0, len(result.Data))
	for _, p := range result.Data {
		if !n.IncludeSubpackages && IsSubpackage(p.ID) {
			continue
		}
		items = append(items, Item{
			Kind:        KindPackages,
			ID:          p.ID,
			Title:       p.ID,
			URL:         "https://www.nuget.org/packages/" + p.ID,
			Description: p.Description,
			Popularity:  p.TotalDownloads,
		})
	}
	return items, nil
}

// IsSubpackage reports whether id has more than one '.' separator.
func IsSubpackage(id string) bool {
	return strings.Count(id, ".") > 1
}

type nugetSearchResult struct {
	Data []nugetPackage `json:"data"`
}

type nugetPackage struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	TotalDownloads int64  `json:"totalDownloads"`
}
