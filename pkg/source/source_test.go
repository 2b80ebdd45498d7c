package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func endpoint(url string) Endpoint {
	return Endpoint{URL: url, Timeout: 2 * time.Second}
}

func TestBooks_Fetch(t *testing.T) {
	srv := serveJSON(t, map[string]string{
		"/books.json": `[
			{"title":"Book A","link":"https://example.com/a","description":"first","publisher":"Pub","publicationDate":"2021"},
			{"title":"Book B","link":"https://example.com/b","publicationDate":"March 2023"}
		]`,
	})

	items, err := NewBooks(srv.Client(), "", endpoint(srv.URL+"/books.json")).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, KindBooks, items[0].Kind)
	assert.Equal(t, "Book A", items[0].Title)
	assert.Equal(t, "Pub", items[0].Publisher)
	assert.Equal(t, "2021", items[0].Published)
	assert.Equal(t, "March 2023", items[1].Published)
}

func TestBooks_EmptyIsNotFailure(t *testing.T) {
	srv := serveJSON(t, map[string]string{"/books.json": `[]`})

	items, err := NewBooks(srv.Client(), "", endpoint(srv.URL+"/books.json")).Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFetch_FailuresCollapseIntoFetchError(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]string
		path   string
	}{
		{name: "not found", routes: map[string]string{}, path: "/courses.json"},
		{name: "malformed json", routes: map[string]string{"/courses.json": `{"oops"`}, path: "/courses.json"},
		{name: "wrong shape", routes: map[string]string{"/courses.json": `{"name":"x"}`}, path: "/courses.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.routes)
			_, err := NewCourses(srv.Client(), "", endpoint(srv.URL+tt.path)).Fetch(context.Background())
			require.Error(t, err)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, KindCourses, fe.Kind)
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	books := NewBooks(srv.Client(), "", Endpoint{URL: srv.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := books.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewCourses(srv.Client(), "", endpoint(srv.URL)).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, got)
}

func TestNuGet_Fetch(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"Owner.Result","description":"result","totalDownloads":6326436},
			{"id":"Owner.Result.AspNetCore","description":"sub","totalDownloads":10},
			{"id":"Owner.GuardClauses","description":"guards","totalDownloads":36255041}
		]}`))
	}))
	defer srv.Close()

	n := NewNuGet(srv.Client(), "", endpoint(srv.URL+"/query"), "owner")
	items, err := n.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "owner:owner", query)
	require.Len(t, items, 2)
	assert.Equal(t, "Owner.Result", items[0].ID)
	assert.Equal(t, int64(6326436), items[0].Popularity)
	assert.Equal(t, "https://www.nuget.org/packages/Owner.Result", items[0].URL)

	n.IncludeSubpackages = true
	items, err = n.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestNuGet_MissingDataIsFailure(t *testing.T) {
	srv := serveJSON(t, map[string]string{"/query": `{}`})

	_, err := NewNuGet(srv.Client(), "", endpoint(srv.URL+"/query"), "owner").Fetch(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestIsSubpackage(t *testing.T) {
	assert.False(t, IsSubpackage("Ardalis"))
	assert.False(t, IsSubpackage("Ardalis.Result"))
	assert.True(t, IsSubpackage("Ardalis.Result.AspNetCore"))
}

func TestGitHub_PartialFailureDropsRepo(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/repos/owner/Alpha":
			_, _ = w.Write([]byte(`{"name":"Alpha","full_name":"owner/Alpha","html_url":"https://github.com/owner/Alpha","description":"a","stargazers_count":10}`))
		case "/repos/owner/Gamma":
			_, _ = w.Write([]byte(`{"name":"Gamma","full_name":"owner/Gamma","html_url":"https://github.com/owner/Gamma","stargazers_count":30}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	gh := NewGitHub(srv.Client(), "", endpoint(srv.URL), "tok", "owner", []string{"Alpha", "Beta", "Gamma"})
	items, err := gh.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha", items[0].Title)
	assert.Equal(t, "Gamma", items[1].Title)
	assert.Equal(t, int64(30), items[1].Popularity)
	assert.Equal(t, "Bearer tok", auth)
}

func TestGitHub_AllFailIsFailure(t *testing.T) {
	srv := serveJSON(t, map[string]string{})

	gh := NewGitHub(srv.Client(), "", endpoint(srv.URL), "", "owner", []string{"Alpha", "Beta"})
	_, err := gh.Fetch(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindRepos, fe.Kind)
}

func TestVideos_Fetch(t *testing.T) {
	var apiKey, playlistURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/playlists.json":
			_, _ = w.Write([]byte(`[
				{"name":".NET Conf 2023","url":"https://youtube.com/playlist?list=A"},
				{"name":".NET Conf 2024","url":"https://youtube.com/playlist?list=B",
				 "highlight-videos":[{"url":"https://www.youtube.com/watch?v=mine&t=3"}]}
			]`))
		case "/videos/top":
			apiKey = r.Header.Get("X-Api-Key")
			playlistURL = r.URL.Query().Get("playlistUrl")
			_, _ = w.Write([]byte(`[
				{"id":"other","title":"Keynote","url":"https://www.youtube.com/watch?v=other","viewCount":5000},
				{"id":"mine","title":"My Talk","viewCount":1200}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	v := NewVideos(srv.Client(), "", endpoint(srv.URL+"/playlists.json"), endpoint(srv.URL), "secret", 2024)
	items, err := v.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, "https://youtube.com/playlist?list=B", playlistURL)
	require.Len(t, items, 2)
	assert.False(t, items[0].Highlight)
	assert.True(t, items[1].Highlight)
	assert.Equal(t, "https://www.youtube.com/watch?v=mine", items[1].URL)
	assert.Equal(t, int64(5000), items[0].Popularity)
}

func TestVideos_NoPlaylist(t *testing.T) {
	srv := serveJSON(t, map[string]string{
		"/playlists.json": `[{"name":".NET Conf 2022","url":"a"},{"name":".NET Conf 2023","url":"b"},{"name":"Misc","url":"c"}]`,
	})

	v := NewVideos(srv.Client(), "", endpoint(srv.URL+"/playlists.json"), endpoint(srv.URL), "", 2019)
	_, err := v.Fetch(context.Background())

	var np *NoPlaylistError
	require.ErrorAs(t, err, &np)
	assert.Equal(t, 2019, np.Year)
	assert.Equal(t, []int{2022, 2023}, np.Available)
}

func TestVideos_ForbiddenIsDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/playlists.json" {
			_, _ = w.Write([]byte(`[{"name":".NET Conf 2024","url":"p"}]`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	v := NewVideos(srv.Client(), "", endpoint(srv.URL+"/playlists.json"), endpoint(srv.URL), "bad", 2024)
	_, err := v.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
	assert.False(t, IsForbidden(errors.New("403")))
}

func TestVideoID(t *testing.T) {
	assert.Equal(t, "abc", VideoID("https://www.youtube.com/watch?v=abc"))
	assert.Equal(t, "abc", VideoID("https://www.youtube.com/watch?list=x&v=abc&t=1"))
	assert.Equal(t, "", VideoID("https://youtu.be/abc"))
	assert.Equal(t, "", VideoID("://bad"))
}

const rssBody = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Blog</title>
<item><title>Old post</title><link>https://example.com/old</link><guid>1</guid><pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate></item>
<item><title>New post</title><link>https://example.com/new</link><guid>2</guid><pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate></item>
<item><title>Mid post</title><link>https://example.com/mid</link><guid>3</guid><pubDate>Fri, 01 Mar 2024 10:00:00 GMT</pubDate></item>
</channel></rss>`

func TestFeeds_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rss.xml" {
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssBody))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	feeds := NewFeeds(srv.Client(), "", []Feed{
		{Name: "Blog", URL: srv.URL + "/rss.xml"},
		{Name: "Broken", URL: srv.URL + "/missing.xml"},
	}, 2, time.Second)

	items, err := feeds.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "New post", items[0].Title)
	assert.Equal(t, "Mid post", items[1].Title)
	assert.Equal(t, "Blog", items[0].Platform)
	assert.Equal(t, 2024, items[0].PublishedAt.Year())
}

func TestFeeds_AllFailIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	feeds := NewFeeds(srv.Client(), "", []Feed{{Name: "Blog", URL: srv.URL}}, 5, time.Second)
	_, err := feeds.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "fetch recent"))
}
