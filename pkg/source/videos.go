package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var yearInName = regexp.MustCompile(`\b(20\d{2})\b`)

// NoPlaylistError is returned when no conference playlist matches the year.
type NoPlaylistError struct {
	Year      int
	Available []int
}

func (e *NoPlaylistError) Error() string {
	return fmt.Sprintf("no playlist found for year %d", e.Year)
}

// Playlist is one entry of playlists.json.
type Playlist struct {
	Name       string          `json:"name"`
	URL        string          `json:"url"`
	Highlights []highlightJSON `json:"highlight-videos"`
}

type highlightJSON struct {
	URL string `json:"url"`
}

// HighlightIDs returns the video ids of the playlist's highlighted videos.
func (p Playlist) HighlightIDs() map[string]bool {
	ids := make(map[string]bool, len(p.Highlights))
	for _, h := range p.Highlights {
		if id := VideoID(h.URL); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// Videos ranks the videos of one yearly conference playlist by view count,
// using the playlist index and the video statistics API.
type Videos struct {
	http      transport
	playlists Endpoint
	api       Endpoint
	apiKey    string
	year      int
}

// NewVideos creates a new video statistics fetcher for the given year.
func NewVideos(client *http.Client, userAgent string, playlists, api Endpoint, apiKey string, year int) *Videos {
	return &Videos{
		http:      newTransport(client, userAgent),
		playlists: playlists,
		api:       api,
		apiKey:    apiKey,
		year:      year,
	}
}

func (v *Videos) Kind() Kind { return KindVideos }

func (v *Videos) Fetch(ctx context.Context) ([]Item, error) {
	playlist, err := v.findPlaylist(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, v.api.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("playlistUrl", playlist.URL)
	reqURL := strings.TrimRight(v.api.URL, "/") + "/videos/top?" + params.Encode()

	header := http.Header{}
	if v.apiKey != "" {
		header.Set("X-Api-Key", v.apiKey)
	}

	var videos []videoJSON
	if err := v.http.getJSON(ctx, reqURL, header, &videos); err != nil {
		return nil, fail(KindVideos, err)
	}

	highlights := playlist.HighlightIDs()
	items := make([]Item, 0, len(videos))
	for _, vid := range videos {
		link := vid.URL
		if link == "" {
			link = "https://www.youtube.com/watch?v=" + vid.ID
		}
		items = append(items, Item{
			Kind:       KindVideos,
			ID:         vid.ID,
			Title:      vid.Title,
			URL:        link,
			Popularity: vid.ViewCount,
			Platform:   playlist.Name,
			Highlight:  highlights[vid.ID],
		})
	}
	return items, nil
}

func (v *Videos) findPlaylist(ctx context.Context) (*Playlist, error) {
	ctx, cancel := withTimeout(ctx, v.playlists.Timeout)
	defer cancel()

	var playlists []Playlist
	if err := v.http.getJSON(ctx, v.playlists.URL, nil, &playlists); err != nil {
		return nil, fail(KindVideos, err)
	}

	year := strconv.Itoa(v.year)
	for i := range playlists {
		if strings.Contains(strings.ToLower(playlists[i].Name), year) {
			return &playlists[i], nil
		}
	}

	var available []int
	for _, p := range playlists {
		if m := yearInName.FindStringSubmatch(p.Name); m != nil {
			y, _ := strconv.Atoi(m[1])
			available = append(available, y)
		}
	}
	return nil, &NoPlaylistError{Year: v.year, Available: available}
}

// VideoID extracts the "v" query parameter of a YouTube watch URL.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

type videoJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	ViewCount int64  `json:"viewCount"`
}
