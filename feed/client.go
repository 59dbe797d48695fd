package feed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/signalsfoundry/orbital-sentinel/internal/logging"
)

// DefaultBaseURL is the Celestrak GP endpoint serving TLE text per GROUP.
const DefaultBaseURL = "https://celestrak.org/NORAD/elements/gp.php"

// DefaultMaxAge is how long cached TLE text stays fresh before a new fetch
// is attempted.
const DefaultMaxAge = 24 * time.Hour

// Client fetches category TLE text into a local cache directory and serves
// it back, falling back to stale cache when the remote feed is unreachable.
type Client struct {
	baseURL string
	dataDir string
	maxAge  time.Duration
	log     logging.Logger

	grab *grab.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream feed endpoint (used by tests).
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithMaxAge overrides the cache staleness interval.
func WithMaxAge(d time.Duration) Option { return func(c *Client) { c.maxAge = d } }

// WithLogger attaches a logger for fetch/fallback reporting.
func WithLogger(l logging.Logger) Option { return func(c *Client) { c.log = l } }

// NewClient constructs a Client caching under dataDir.
func NewClient(dataDir string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		dataDir: dataDir,
		maxAge:  DefaultMaxAge,
		log:     logging.Noop(),
		grab:    grab.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CachePath returns the on-disk location of a category's TLE text.
func (c *Client) CachePath(cat Category) string {
	return filepath.Join(c.dataDir, string(cat.Kind), cat.Name+".txt")
}

// Text returns the TLE text for a category, refreshing the cache first when
// it is stale. A failed fetch falls back to whatever cache exists; only a
// missing cache after a failed fetch is an error, and callers treat that as
// "zero records for this category", never as a fatal build error.
func (c *Client) Text(ctx context.Context, cat Category) (string, error) {
	path := c.CachePath(cat)

	if NeedsUpdate(path, c.maxAge) {
		if err := c.fetch(ctx, cat, path); err != nil {
			c.log.Warn(ctx, "feed fetch failed, falling back to cache",
				logging.String("category", cat.Name),
				logging.String("error", err.Error()),
			)
		} else {
			c.log.Info(ctx, "updated category TLE data",
				logging.String("category", cat.Name),
				logging.String("path", path),
			)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no TLE data for category %q: %w", cat.Name, err)
	}
	return string(data), nil
}

// fetch downloads the category feed to a temp file and renames it over the
// cache path, so a partial download never clobbers a usable cache.
func (c *Client) fetch(ctx context.Context, cat Category, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	u := fmt.Sprintf("%s?GROUP=%s&FORMAT=tle", c.baseURL, url.QueryEscape(cat.Group))
	tmp := dst + ".tmp"

	req, err := grab.NewRequest(tmp, u)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.NoResume = true
	req = req.WithContext(ctx)

	resp := c.grab.Do(req)
	if err := resp.Err(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download %q: %w", u, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install cache file: %w", err)
	}
	return nil
}

// NeedsUpdate reports whether the cache file at path is missing or older
// than maxAge. The check is mtime-based and not atomic against concurrent
// writers; a single active build is assumed.
func NeedsUpdate(path string, maxAge time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > maxAge
}
