// Package discovery owns the date-driven discovery state machine and the
// filter/sort transform that produces the displayed movie list.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"moviedate/facets"
	"moviedate/models"
	"moviedate/services"

	"github.com/hashicorp/go-hclog"
)

// FailureMessage is the single user-facing message for any fetch failure
const FailureMessage = "Failed to fetch movies. Please try again later."

const dateLayout = "2006-01-02"

// Fetcher runs a discovery query against the movie catalog
type Fetcher interface {
	DiscoverByDate(ctx context.Context, q models.QueryParams) ([]models.Movie, error)
}

// Pipeline holds the discovery state for one presentation session. Fetches
// run on their own goroutines; a completion is committed only while its
// generation is still the current one, so superseded responses are dropped
// on arrival instead of being cancelled in flight.
type Pipeline struct {
	fetcher        Fetcher
	logger         hclog.Logger
	requestTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.RWMutex
	closed     bool
	generation uint64
	date       time.Time // zero when idle
	exactYear  bool
	phase      models.Phase
	raw        []models.Movie
	facets     facets.Result
	genre      *int
	language   *string
	sortKey    models.SortKey
	displayed  []models.Movie
	errMsg     string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the pipeline logger
func WithLogger(logger hclog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRequestTimeout bounds each catalog fetch. Zero means no bound beyond
// the fetcher's own.
func WithRequestTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.requestTimeout = d
	}
}

// WithExactYear sets whether queries are restricted to the selected year
func WithExactYear(exact bool) Option {
	return func(p *Pipeline) {
		p.exactYear = exact
	}
}

// WithSort sets the initial sort key
func WithSort(key models.SortKey) Option {
	return func(p *Pipeline) {
		if key.Valid() {
			p.sortKey = key
		}
	}
}

// New creates an idle pipeline
func New(fetcher Fetcher, opts ...Option) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		fetcher:   fetcher,
		logger:    hclog.NewNullLogger(),
		ctx:       ctx,
		cancel:    cancel,
		exactYear: true,
		phase:     models.PhaseIdle,
		sortKey:   models.DefaultSortKey,
		facets:    facets.Derive(nil),
		displayed: []models.Movie{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SelectDate starts a discovery query for the given day. A zero time clears
// the selection.
func (p *Pipeline) SelectDate(t time.Time) {
	if t.IsZero() {
		p.ClearDate()
		return
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.date = day
	p.startFetchLocked()
}

// ClearDate returns the pipeline to idle and drops any in-flight result
func (p *Pipeline) ClearDate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.date = time.Time{}
	p.phase = models.PhaseIdle
	p.resetResultsLocked()
	p.logger.Debug("date cleared", "generation", p.generation)
}

// SetExactYear toggles between single-year and any-year queries. With a date
// selected the query is re-issued as if the date were selected again.
func (p *Pipeline) SetExactYear(exact bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exactYear == exact {
		return
	}
	p.exactYear = exact
	if !p.date.IsZero() && !p.closed {
		p.startFetchLocked()
	}
}

// SetGenre selects a genre facet; nil clears it. Ignored while idle.
func (p *Pipeline) SetGenre(id *int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.date.IsZero() {
		p.logger.Debug("ignoring genre selection while idle")
		return
	}
	if id != nil {
		v := *id
		id = &v
	}
	p.genre = id
	p.recomputeLocked()
}

// SetLanguage selects a language facet; nil or an empty code clears it.
// Codes are stored normalized. Ignored while idle.
func (p *Pipeline) SetLanguage(code *string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.date.IsZero() {
		p.logger.Debug("ignoring language selection while idle")
		return
	}
	if v := normalizedCode(code); v != "" {
		p.language = &v
	} else {
		p.language = nil
	}
	p.recomputeLocked()
}

// SetSort changes the displayed ordering
func (p *Pipeline) SetSort(key models.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("unknown sort key %q", key)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sortKey = key
	p.recomputeLocked()
	return nil
}

// State returns a copy of the current state
func (p *Pipeline) State() models.DiscoveryState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := models.DiscoveryState{
		Phase:        p.phase,
		ExactYear:    p.exactYear,
		Movies:       append([]models.Movie{}, p.displayed...),
		TotalResults: len(p.raw),
		Genres:       append([]models.Genre{}, p.facets.Genres...),
		Languages:    append([]models.Language{}, p.facets.Languages...),
		SortKey:      p.sortKey,
		Loading:      p.phase == models.PhaseLoading,
	}
	if !p.date.IsZero() {
		d := p.date.Format(dateLayout)
		state.Date = &d
	}
	if p.genre != nil {
		g := *p.genre
		state.SelectedGenre = &g
	}
	if p.language != nil {
		l := *p.language
		state.SelectedLanguage = &l
	}
	if p.errMsg != "" {
		e := p.errMsg
		state.Error = &e
	}
	return state
}

// Movie looks up a movie in the current raw result set
func (p *Pipeline) Movie(id int) (models.Movie, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, m := range p.raw {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Wait blocks until every started fetch has resolved
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to finish. Later date
// selections are ignored.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// startFetchLocked resets selections and launches a fetch for p.date
func (p *Pipeline) startFetchLocked() {
	p.generation++
	gen := p.generation
	params := models.QueryParamsFromDate(p.date, p.exactYear)

	p.phase = models.PhaseLoading
	p.resetResultsLocked()

	p.logger.Debug("discovery started", "generation", gen, "date", p.date.Format(dateLayout), "exact_year", p.exactYear)

	p.wg.Add(1)
	go p.fetch(gen, params)
}

func (p *Pipeline) fetch(gen uint64, params models.QueryParams) {
	defer p.wg.Done()

	ctx := p.ctx
	if p.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()
	}

	movies, err := p.fetcher.DiscoverByDate(ctx, params)
	p.commit(gen, movies, err)
}

func (p *Pipeline) commit(gen uint64, movies []models.Movie, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.logger.Debug("discarding stale discovery result", "generation", gen, "current", p.generation)
		return
	}

	if err != nil {
		p.logFailure(gen, err)
		p.phase = models.PhaseFailed
		p.resetResultsLocked()
		p.errMsg = FailureMessage
		return
	}

	p.phase = models.PhaseReady
	p.raw = append([]models.Movie{}, movies...)
	p.facets = facets.Derive(p.raw)
	p.recomputeLocked()
	p.logger.Info("discovery ready",
		"generation", gen,
		"date", p.date.Format(dateLayout),
		"results", len(p.raw),
		"genres", len(p.facets.Genres),
		"languages", len(p.facets.Languages))
}

func (p *Pipeline) logFailure(gen uint64, err error) {
	var fetchErr *services.FetchError
	if errors.As(err, &fetchErr) {
		p.logger.Error("discovery fetch failed",
			"generation", gen,
			"kind", fetchErr.Kind,
			"status", fetchErr.Status,
			"error", err)
		return
	}
	p.logger.Error("discovery fetch failed", "generation", gen, "error", err)
}

// resetResultsLocked clears results, facets, selections and error; sort key
// and exact-year setting survive.
func (p *Pipeline) resetResultsLocked() {
	p.raw = nil
	p.facets = facets.Derive(nil)
	p.genre = nil
	p.language = nil
	p.errMsg = ""
	p.displayed = []models.Movie{}
}

func normalizedCode(code *string) string {
	if code == nil {
		return ""
	}
	return facets.NormalizeCode(*code)
}

func (p *Pipeline) recomputeLocked() {
	p.displayed = Apply(p.raw, Filters{
		Genre:    p.genre,
		Language: p.language,
		Sort:     p.sortKey,
	})
}
