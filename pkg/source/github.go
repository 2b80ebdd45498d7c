package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxRepoFetches bounds concurrent repository requests.
const maxRepoFetches = 4

// GitHub collects metadata for a fixed list of repositories owned by one account.
type GitHub struct {
	http     transport
	endpoint Endpoint
	token    string
	owner    string
	repos    []string
}

// NewGitHub creates a new GitHub repository fetcher. endpoint.URL is the API
// base, e.g. https://api.github.com.
func NewGitHub(client *http.Client, userAgent string, endpoint Endpoint, token, owner string, repos []string) *GitHub {
	return &GitHub{
		http:     newTransport(client, userAgent),
		endpoint: endpoint,
		token:    token,
		owner:    owner,
		repos:    repos,
	}
}

func (g *GitHub) Kind() Kind { return KindRepos }

// Fetch requests every repository independently. A repository that fails is
// logged and left out; only when all of them fail is the fetch a failure.
func (g *GitHub) Fetch(ctx context.Context) ([]Item, error) {
	ctx, cancel := withTimeout(ctx, g.endpoint.Timeout)
	defer cancel()

	log := zerolog.Ctx(ctx)
	results := make([]*Item, len(g.repos))
	errs := make([]error, len(g.repos))

	var eg errgroup.Group
	eg.SetLimit(maxRepoFetches)
	for i, name := range g.repos {
		eg.Go(func() error {
			item, err := g.fetchRepo(ctx, name)
			if err != nil {
				log.Warn().Err(err).Str("repo", name).Msg("failed to fetch repository")
				errs[i] = err
				return nil
			}
			results[i] = item
			return nil
		})
	}
	_ = eg.Wait()

	items := make([]Item, 0, len(results))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}

	if len(items) == 0 && len(g.repos) > 0 {
		return nil, fail(KindRepos, errors.Join(errs...))
	}
	return items, nil
}

func (g *GitHub) fetchRepo(ctx context.Context, name string) (*Item, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s",
		strings.TrimRight(g.endpoint.URL, "/"), url.PathEscape(g.owner), url.PathEscape(name))

	header := http.Header{}
	header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		header.Set("Authorization", "Bearer "+g.token)
	}

	var repo ghRepo
	if err := g.http.getJSON(ctx, reqURL, header, &repo); err != nil {
		return nil, fmt.Errorf("repo %s: %w", name, err)
	}

	title := repo.Name
	if title == "" {
		title = name
	}
	return &Item{
		Kind:        KindRepos,
		ID:          repo.FullName,
		Title:       title,
		URL:         repo.HTMLURL,
		Description: repo.Description,
		Popularity:  repo.Stars,
	}, nil
}

type ghRepo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int64  `json:"stargazers_count"`
}
