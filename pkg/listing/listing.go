// Package listing runs one content command: fetch the collection, fall back
// to built-in data on failure, arrange it and hand it to the pager.
package listing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/elonfeng/ardalis/pkg/arrange"
	"github.com/elonfeng/ardalis/pkg/pager"
	"github.com/elonfeng/ardalis/pkg/present"
	"github.com/elonfeng/ardalis/pkg/render"
	"github.com/elonfeng/ardalis/pkg/source"
)

// Diagnosis is a kind-specific reaction to a fetch failure.
type Diagnosis struct {
	// Lines are shown to the user before anything else happens.
	Lines []string
	// Stop ends the command after Lines instead of using fallback data.
	Stop bool
}

// Descriptor is everything that differs between content kinds.
type Descriptor struct {
	Kind     source.Kind
	Heading  string
	Tone     render.Tone
	Fetcher  source.Fetcher
	Fallback []source.Item
	Arrange  arrange.Policy
	Present  present.Policy
	Footer   []string

	// Diagnose inspects a fetch failure. Nil means plain fallback.
	Diagnose func(err error) Diagnosis
}

// Options are the caller's display choices.
type Options struct {
	PageSize int
	Unpaged  bool
}

// Outcome reports what a run did.
type Outcome struct {
	UsedFallback bool
	Empty        bool
	Halted       bool
	Display      pager.Result
}

// Runner executes descriptors against one renderer and keyboard.
type Runner struct {
	r     render.Renderer
	pager *pager.Pager
}

// NewRunner creates a runner.
func NewRunner(r render.Renderer, keys render.KeyReader) *Runner {
	return &Runner{r: r, pager: pager.New(r, keys)}
}

// Run executes d. Any fetch failure is replaced by d.Fallback with a notice;
// an empty successful fetch is reported as such and is not replaced. Only
// cancellation of ctx and paging errors are returned.
func (run *Runner) Run(ctx context.Context, d Descriptor, opts Options) (Outcome, error) {
	var out Outcome
	log := zerolog.Ctx(ctx)

	if !opts.Unpaged && opts.PageSize <= 0 {
		return out, fmt.Errorf("%w: got %d", pager.ErrInvalidPageSize, opts.PageSize)
	}

	run.r.Heading(d.Tone, d.Heading)

	items, err := d.Fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		log.Warn().Err(err).Str("kind", string(d.Kind)).Msg("fetch failed, using fallback")

		var diag Diagnosis
		if d.Diagnose != nil {
			diag = d.Diagnose(err)
		}
		for _, line := range diag.Lines {
			run.r.Line(line)
		}
		if diag.Stop {
			out.Halted = true
			return out, nil
		}
		if len(diag.Lines) > 0 {
			run.r.Blank()
		}

		run.r.Notice(render.ToneMuted, fmt.Sprintf("Using fallback %s list...", d.Present.Singular))
		run.r.Blank()
		items = d.Fallback
		out.UsedFallback = true
	}

	if len(items) == 0 {
		run.r.Notice(render.ToneWarn, fmt.Sprintf("No %s available at the moment.", d.Present.Noun))
		out.Empty = true
		return out, nil
	}

	seq := arrange.Arrange(items, d.Arrange)
	log.Debug().Str("kind", string(d.Kind)).Int("items", seq.Len()).Msg("displaying")

	mode := pager.Paged
	if opts.Unpaged {
		mode = pager.Unpaged
	}
	res, err := run.pager.Display(ctx, seq, opts.PageSize, mode, d.Present)
	out.Display = res
	if err != nil {
		return out, err
	}

	if len(d.Footer) > 0 {
		run.r.Blank()
		for _, line := range d.Footer {
			run.r.Line(line)
		}
	}
	return out, nil
}

// Forbidden returns the remediation lines for a rejected API key, or nil when
// err is not an HTTP 403.
func Forbidden(err error) []string {
	if !source.IsForbidden(err) {
		return nil
	}
	return []string{
		"YouTube API returned 403 Forbidden. Please check:",
		"  1. Your API key is valid",
		"  2. YouTube Data API v3 is enabled in your Google Cloud project",
		"     https://console.cloud.google.com/apis/library/youtube.googleapis.com",
		"  3. Your API key has the proper restrictions (or none for testing)",
		"  4. You haven't exceeded your daily quota",
	}
}

// DiagnoseVideos reports a missing playlist (and stops) or a 403 (and falls
// back); everything else falls back silently.
func DiagnoseVideos(err error) Diagnosis {
	var np *source.NoPlaylistError
	if errors.As(err, &np) {
		lines := []string{fmt.Sprintf("No playlist found for .NET Conf %d", np.Year)}
		if len(np.Available) > 0 {
			years := make([]string, len(np.Available))
			for i, y := range np.Available {
				years[i] = strconv.Itoa(y)
			}
			lines = append(lines, "Available years: "+strings.Join(years, ", "))
		}
		return Diagnosis{Lines: lines, Stop: true}
	}
	return Diagnosis{Lines: Forbidden(err)}
}
