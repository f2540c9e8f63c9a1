// Package dataset fetches the JSON resources chart pages are built from.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/vizpages/pkg/logger"
)

// Source kinds, as reported by Kind.
const (
	KindHTTP = "http"
	KindFile = "file"
)

const filePrefix = "file://"

// Loader reads dataset bodies from HTTP URLs or local files. It does not
// retry; a zero timeout means requests run until ctx ends.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	baseDir string
	log     logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http and https sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds each individual load. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithBaseDir resolves relative file sources against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) { l.baseDir = dir }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader returns a Loader using http.DefaultClient and the working
// directory.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{client: http.DefaultClient, log: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Kind reports whether src is fetched over HTTP or read from disk.
func Kind(src string) string {
	if isHTTP(src) {
		return KindHTTP
	}
	return KindFile
}

// Load returns the body of src.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmptySource
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	var (
		body []byte
		err  error
	)
	if isHTTP(src) {
		body, err = l.fetch(ctx, src)
	} else {
		body, err = l.read(ctx, src)
	}
	if err != nil {
		l.log.Debug(ctx, "dataset load failed", logger.String("source", src), logger.Error(err))
		return nil, err
	}
	l.log.Debug(ctx, "dataset loaded",
		logger.String("source", src),
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", time.Since(start)))
	return body, nil
}

// LoadAll loads every source concurrently and returns the bodies in source
// order. The first failure cancels the rest and is returned alone.
func (l *Loader) LoadAll(ctx context.Context, srcs ...string) ([][]byte, error) {
	bodies := make([][]byte, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			body, err := l.Load(gctx, src)
			if err != nil {
				return err
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %d", ErrStatus, url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	return body, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, src, err)
	}
	path := strings.TrimPrefix(src, filePrefix)
	if !filepath.IsAbs(path) && l.baseDir != "" {
		path = filepath.Join(l.baseDir, path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, src, err)
	}
	return body, nil
}

func isHTTP(src string) bool {
	s := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
