package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind identifies which content collection an item belongs to.
type Kind string

const (
	KindBooks    Kind = "books"
	KindCourses  Kind = "courses"
	KindPackages Kind = "packages"
	KindRepos    Kind = "repos"
	KindVideos   Kind = "videos"
	KindRecent   Kind = "recent"
)

// Item is the standardized record for every content kind. Fields that do not
// apply to a kind are left zero.
type Item struct {
	Kind        Kind      `json:"kind"`
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Popularity  int64     `json:"popularity"`
	Publisher   string    `json:"publisher,omitempty"`
	Published   string    `json:"published,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	Highlight   bool      `json:"highlight,omitempty"`
}

// Fetcher is the interface every content source must implement.
type Fetcher interface {
	Kind() Kind
	Fetch(ctx context.Context) ([]Item, error)
}

// Endpoint is a remote URL with the time budget allowed for one fetch.
type Endpoint struct {
	URL     string
	Timeout time.Duration
}

// AllKinds returns all known content kinds.
func AllKinds() []Kind {
	return []Kind{
		KindBooks,
		KindCourses,
		KindPackages,
		KindRepos,
		KindVideos,
		KindRecent,
	}
}

// FetchError is the single failure signal a Fetcher returns. Transport,
// status and decoding problems all collapse into it; Err keeps the cause.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsForbidden reports whether err was caused by an HTTP 403 response.
func IsForbidden(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusForbidden
}

func fail(kind Kind, err error) error {
	return &FetchError{Kind: kind, Err: err}
}
