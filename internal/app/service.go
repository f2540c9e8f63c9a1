// Package service owns the visualization pages: it loads their datasets,
// builds the charts once and serves them to the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/dataset"
	"github.com/okian/vizpages/internal/domain/tooltip"
	"github.com/okian/vizpages/pkg/logger"
	"github.com/okian/vizpages/pkg/metrics"
)

const defaultLoadConcurrency = 4

// Loader fetches one dataset body per source.
type Loader interface {
	LoadAll(ctx context.Context, srcs ...string) ([][]byte, error)
}

// PageStatus is the public view of one registered page.
type PageStatus struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Sources  []string  `json:"sources"`
	Ready    bool      `json:"ready"`
	Marks    int       `json:"marks"`
	Error    string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
	LoadMs   float64   `json:"loadMs"`
}

// HoverResult is what one pointer enter followed by leave does to a page.
type HoverResult struct {
	Index       int              `json:"index"`
	Enter       tooltip.Snapshot `json:"enter"`
	Leave       tooltip.Snapshot `json:"leave"`
	EnterStroke chart.Stroke     `json:"enterStroke"`
	LeaveStroke chart.Stroke     `json:"leaveStroke"`
}

type pageState struct {
	page     Page
	chart    *chart.Chart
	err      error
	loadedAt time.Time
	loadTime time.Duration
}

// Service implements the page dependencies of the HTTP API and the CLI.
type Service struct {
	mu sync.RWMutex

	loader      Loader
	pages       []Page
	states      map[string]*pageState
	concurrency int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader replaces the dataset loader.
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithSources wires the built-in pages to src.
func WithSources(src Sources) Option {
	return func(s *Service) {
		s.pages = BuiltinPages(src)
	}
}

// WithPages replaces the registered pages.
func WithPages(pages ...Page) Option {
	return func(s *Service) {
		s.pages = pages
	}
}

// WithLoadConcurrency bounds how many pages load at once.
func WithLoadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New constructs a Service serving the built-in pages from the default data
// layout.
func New(opts ...Option) *Service {
	s := &Service{
		loader:      dataset.NewLoader(),
		pages:       BuiltinPages(DefaultSources()),
		concurrency: defaultLoadConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads and builds every page. A page whose datasets fail stays
// registered but unavailable; Start itself only fails when ctx ends first.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.states = make(map[string]*pageState, len(s.pages))
	for _, p := range s.pages {
		s.states[p.Name] = &pageState{page: p, err: ErrNotStarted}
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "loading pages", logger.Int("pages", len(s.pages)), logger.Int("concurrency", s.concurrency))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, p := range s.pages {
		g.Go(func() error {
			s.load(gctx, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	ready := 0
	for _, st := range s.Pages() {
		if st.Ready {
			ready++
		}
	}
	s.logger.Info(ctx, "pages loaded", logger.Int("ready", ready), logger.Int("pages", len(s.pages)))
	return nil
}

// Reload loads and rebuilds one page.
func (s *Service) Reload(ctx context.Context, name string) error {
	s.mu.RLock()
	st, ok := s.states[name]
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return s.load(ctx, st.page)
}

// Stop forgets every built chart.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.states = nil
	s.started = false
	s.logger.Info(context.Background(), "page service stopped")
}

func (s *Service) load(ctx context.Context, p Page) error {
	log := s.logger.With(logger.String("page", p.Name))
	source := dataset.KindFile
	if len(p.Sources) > 0 {
		source = dataset.Kind(p.Sources[0])
	}

	start := time.Now()
	c, size, err := s.build(ctx, p)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoadDuration(p.Name, source, float64(elapsed.Microseconds())/1000)

	st := &pageState{page: p, chart: c, err: err, loadedAt: time.Now(), loadTime: elapsed}
	if err != nil {
		metrics.RecordDatasetLoad(p.Name, source, "error")
		metrics.RecordErrorByComponent("loader", errorType(err))
		log.Error(ctx, "page unavailable", logger.Error(err), logger.Duration("elapsed", elapsed))
	} else {
		metrics.RecordDatasetLoad(p.Name, source, "ok")
		metrics.UpdateDatasetBytes(p.Name, size)
		metrics.UpdateMarks(p.Name, len(c.Marks))
		log.Info(ctx, "page built", logger.Int("marks", len(c.Marks)), logger.Duration("elapsed", elapsed))
	}

	s.mu.Lock()
	if s.states != nil {
		s.states[p.Name] = st
	}
	s.mu.Unlock()
	return err
}

func (s *Service) build(ctx context.Context, p Page) (*chart.Chart, int, error) {
	bodies, err := s.loader.LoadAll(ctx, p.Sources...)
	if err != nil {
		return nil, 0, err
	}
	size := 0
	for _, b := range bodies {
		size += len(b)
	}
	c, err := p.Build(bodies)
	if err != nil {
		return nil, size, err
	}
	return c, size, nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, dataset.ErrStatus):
		return "status"
	case errors.Is(err, dataset.ErrFetch):
		return "fetch"
	case errors.Is(err, dataset.ErrDecode), errors.Is(err, dataset.ErrPathNotFound):
		return "decode"
	default:
		return "build"
	}
}

// Chart returns the built chart of page name.
func (s *Service) Chart(name string) (*chart.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	st, ok := s.states[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	if st.err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPageUnavailable, name, st.err)
	}
	return st.chart, nil
}

// Pages lists every registered page in name order.
func (s *Service) Pages() []PageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PageStatus, 0, len(s.pages))
	for _, p := range s.pages {
		ps := PageStatus{Name: p.Name, Title: p.Title, Sources: p.Sources}
		if st, ok := s.states[p.Name]; ok {
			ps.LoadedAt = st.loadedAt
			ps.LoadMs = float64(st.loadTime.Microseconds()) / 1000
			if st.err != nil {
				ps.Error = st.err.Error()
			} else {
				ps.Ready = true
				ps.Marks = len(st.chart.Marks)
			}
		} else {
			ps.Error = ErrNotStarted.Error()
		}
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Hover replays a pointer entering then leaving mark index of page name on a
// fresh view.
func (s *Service) Hover(ctx context.Context, name string, index int, p tooltip.Pointer) (HoverResult, error) {
	c, err := s.Chart(name)
	if err != nil {
		return HoverResult{}, err
	}
	v := c.NewView(tooltip.WithObserver(func(_, to tooltip.State) {
		metrics.RecordTooltipTransition(name, to.String())
	}))
	if err := v.Enter(index, p); err != nil {
		return HoverResult{}, err
	}
	res := HoverResult{Index: index, Enter: v.Tooltip.Snapshot(), EnterStroke: v.Stroke(index)}
	if err := v.Leave(index); err != nil {
		return HoverResult{}, err
	}
	res.Leave = v.Tooltip.Snapshot()
	res.LeaveStroke = v.Stroke(index)
	s.logger.Debug(ctx, "hover replayed",
		logger.String("page", name),
		logger.Int("index", index),
		logger.String("state", res.Enter.State.String()))
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	pages := s.Pages()
	s.mu.RLock()
	defer s.mu.RUnlock()

	ready, marks := 0, 0
	for _, p := range pages {
		if p.Ready {
			ready++
			marks += p.Marks
		}
	}
	return map[string]any{
		"started":         s.started,
		"pages":           len(pages),
		"readyPages":      ready,
		"totalMarks":      marks,
		"loadConcurrency": s.concurrency,
	}
}
