package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/elonfeng/ardalis/internal/config"
	"github.com/elonfeng/ardalis/internal/logging"
	"github.com/elonfeng/ardalis/pkg/arrange"
	"github.com/elonfeng/ardalis/pkg/catalog"
	"github.com/elonfeng/ardalis/pkg/listing"
	"github.com/elonfeng/ardalis/pkg/present"
	"github.com/elonfeng/ardalis/pkg/render"
	"github.com/elonfeng/ardalis/pkg/source"
)

const (
	booksPageURL   = "https://ardalis.com/books"
	coursesPageURL = "https://ardalis.com/courses"
	nugetProfile   = "https://www.nuget.org/profiles/"
	githubProfile  = "https://github.com/"
	blogURL        = "https://ardalis.com"
)

// app holds what every command needs once flags and config are known.
type app struct {
	cfg    *config.Config
	client *http.Client
	out    render.Renderer
	theme  render.Theme
	keys   render.KeyReader
	apiKey string
	now    func() time.Time
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// init loads config, builds the logger and the terminal, and returns ctx
// carrying the logger.
func (a *app) init(ctx context.Context) (context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ctx, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)
	logger.Debug().Str("config", cfgFile).Int("page_size", cfg.PageSize).Msg("config loaded")

	term := render.NewTerminal(os.Stdout)
	a.cfg = cfg
	a.client = &http.Client{}
	a.out = term
	a.theme = term.Theme()
	a.keys = render.NewKeyboard(os.Stdin)
	a.apiKey = cfg.Videos.APIKey
	if a.apiKey == "" {
		a.apiKey = apiKey
	}
	a.now = time.Now

	return logger.WithContext(ctx), nil
}

func (a *app) options(f listFlags) listing.Options {
	size := f.size
	if size == 0 {
		size = a.cfg.PageSize
	}
	return listing.Options{PageSize: size, Unpaged: f.all}
}

func (a *app) run(ctx context.Context, d listing.Descriptor, f listFlags) error {
	_, err := listing.NewRunner(a.out, a.keys).Run(ctx, d, a.options(f))
	if err != nil {
		return fmt.Errorf("%s: %w", d.Kind, err)
	}
	return nil
}

func (a *app) footer(label, url string) string {
	return a.theme.Paint(render.ToneMuted, label) + a.theme.Paint(render.ToneAccent, a.theme.Link(url, url))
}

func endpoint(e config.EndpointConfig, def time.Duration) source.Endpoint {
	return source.Endpoint{URL: e.URL, Timeout: e.ParseTimeout(def)}
}

func (a *app) booksDescriptor() listing.Descriptor {
	return listing.Descriptor{
		Kind:     source.KindBooks,
		Heading:  "Ardalis's Published Books",
		Tone:     render.ToneInfo,
		Fetcher:  source.NewBooks(a.client, a.cfg.UserAgent, endpoint(a.cfg.Endpoints.Books, 10*time.Second)),
		Fallback: catalog.Defaults(source.KindBooks),
		Arrange:  arrange.Policy{Compare: arrange.ByYearDesc},
		Present:  present.Books(a.theme),
		Footer:   []string{a.footer("Learn more at: ", booksPageURL)},
	}
}

func (a *app) coursesDescriptor() listing.Descriptor {
	return listing.Descriptor{
		Kind:     source.KindCourses,
		Heading:  "Ardalis's Available Courses",
		Tone:     render.ToneSuccess,
		Fetcher:  source.NewCourses(a.client, a.cfg.UserAgent, endpoint(a.cfg.Endpoints.Courses, 10*time.Second)),
		Fallback: catalog.Defaults(source.KindCourses),
		Arrange:  arrange.Policy{GroupBy: arrange.ByPlatform},
		Present:  present.Courses(a.theme),
		Footer:   []string{a.footer("Learn more at: ", coursesPageURL)},
	}
}

func (a *app) packagesDescriptor(subpackages bool) listing.Descriptor {
	nuget := source.NewNuGet(a.client, a.cfg.UserAgent, endpoint(a.cfg.Endpoints.Packages, 10*time.Second), a.cfg.Owner)
	nuget.IncludeSubpackages = subpackages

	fallback := catalog.Defaults(source.KindPackages)
	if !subpackages {
		fallback = withoutSubpackages(fallback)
	}

	return listing.Descriptor{
		Kind:     source.KindPackages,
		Heading:  "Ardalis's Popular NuGet Packages",
		Tone:     render.ToneSuccess,
		Fetcher:  nuget,
		Fallback: fallback,
		Arrange:  arrange.Policy{Compare: arrange.ByPopularityDesc},
		Present:  present.Packages(a.theme),
		Footer:   []string{a.footer("Visit: ", nugetProfile+a.cfg.Owner)},
	}
}

func withoutSubpackages(items []source.Item) []source.Item {
	out := items[:0]
	for _, it := range items {
		if !source.IsSubpackage(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

func (a *app) reposDescriptor() listing.Descriptor {
	return listing.Descriptor{
		Kind:    source.KindRepos,
		Heading: "Ardalis's Popular GitHub Repositories",
		Tone:    render.ToneSuccess,
		Fetcher: source.NewGitHub(a.client, a.cfg.UserAgent, endpoint(a.cfg.Endpoints.GitHub, 10*time.Second),
			a.cfg.GitHub.Token, a.cfg.Owner, a.cfg.Repos),
		Fallback: catalog.Defaults(source.KindRepos),
		Arrange:  arrange.Policy{Compare: arrange.ByPopularityDesc},
		Present:  present.Repos(a.theme),
		Footer:   []string{a.footer("Visit: ", githubProfile+a.cfg.Owner)},
	}
}

func (a *app) videosDescriptor(year int) listing.Descriptor {
	return listing.Descriptor{
		Kind:    source.KindVideos,
		Heading: fmt.Sprintf(".NET Conf %d - Top Videos by Views", year),
		Tone:    render.ToneSuccess,
		Fetcher: source.NewVideos(a.client, a.cfg.UserAgent,
			endpoint(a.cfg.Endpoints.Playlists, 30*time.Second),
			endpoint(a.cfg.Endpoints.VideosAPI, 30*time.Second),
			a.apiKey, year),
		Fallback: catalog.Defaults(source.KindVideos),
		Arrange:  arrange.Policy{Compare: arrange.ByPopularityDesc},
		Present:  present.Videos(a.theme, nil),
		Footer:   []string{a.theme.Paint(render.ToneMuted, present.HighlightMark+"indicates Ardalis's video")},
		Diagnose: listing.DiagnoseVideos,
	}
}

func (a *app) recentDescriptor() listing.Descriptor {
	feeds := make([]source.Feed, len(a.cfg.Feeds))
	for i, f := range a.cfg.Feeds {
		feeds[i] = source.Feed{Name: f.Name, URL: f.URL}
	}

	return listing.Descriptor{
		Kind:     source.KindRecent,
		Heading:  "Ardalis's Recent Activity",
		Tone:     render.ToneInfo,
		Fetcher:  source.NewFeeds(a.client, a.cfg.UserAgent, feeds, a.cfg.Recent.PerFeed, a.cfg.Recent.ParseTimeout()),
		Fallback: catalog.Defaults(source.KindRecent),
		Arrange:  arrange.Policy{Compare: arrange.ByPublishedAtDesc},
		Present:  present.Recent(a.theme, a.now),
		Footer:   []string{a.footer("More at: ", blogURL)},
	}
}

func (a *app) runBooks(ctx context.Context, f listFlags) error {
	return a.run(ctx, a.booksDescriptor(), f)
}

func (a *app) runCourses(ctx context.Context, f listFlags) error {
	return a.run(ctx, a.coursesDescriptor(), f)
}

func (a *app) runPackages(ctx context.Context, f listFlags, subpackages bool) error {
	return a.run(ctx, a.packagesDescriptor(subpackages), f)
}

func (a *app) runRepos(ctx context.Context, f listFlags) error {
	return a.run(ctx, a.reposDescriptor(), f)
}

func (a *app) runVideos(ctx context.Context, f listFlags, year int) error {
	return a.run(ctx, a.videosDescriptor(year), f)
}

func (a *app) runRecent(ctx context.Context, f listFlags) error {
	return a.run(ctx, a.recentDescriptor(), f)
}
