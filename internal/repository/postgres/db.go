package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// ErrMissingDatabaseURL is returned when Connect is called with an empty
// connection URL. This is a configuration error, not a driver failure.
var ErrMissingDatabaseURL = errors.New("database URL is not set")

// attempt is an in-flight connection attempt shared by concurrent callers.
// done is closed once db/err are set.
type attempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// ConnCache caches a single database connection for the whole process.
// The first caller dials; callers arriving while that attempt is in
// flight wait on it and observe the same outcome. A failed attempt is
// cleared so a later call may retry. Once connected the handle is
// returned to every caller with no further work.
type ConnCache struct {
	mu       sync.Mutex
	open     func(ctx context.Context, url string) (*sql.DB, error)
	db       *sql.DB
	inflight *attempt
}

// NewConnCache returns a ConnCache using the given opener. A nil opener
// means the default lib/pq open-and-ping.
func NewConnCache(open func(ctx context.Context, url string) (*sql.DB, error)) *ConnCache {
	if open == nil {
		open = openPostgres
	}
	return &ConnCache{open: open}
}

func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Get returns the cached connection, dialing at most once at a time.
func (c *ConnCache) Get(ctx context.Context, url string) (*sql.DB, error) {
	c.mu.Lock()
	if c.db != nil {
		db := c.db
		c.mu.Unlock()
		return db, nil
	}
	if url == "" {
		c.mu.Unlock()
		return nil, ErrMissingDatabaseURL
	}
	if c.inflight != nil {
		att := c.inflight
		c.mu.Unlock()
		select {
		case <-att.done:
			return att.db, att.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	att := &attempt{done: make(chan struct{})}
	c.inflight = att
	c.mu.Unlock()

	db, err := c.open(ctx, url)

	c.mu.Lock()
	if err == nil {
		c.db = db
	}
	// On failure this clears the marker so the next caller retries.
	c.inflight = nil
	att.db, att.err = db, err
	close(att.done)
	c.mu.Unlock()

	return db, err
}

// Reset closes and forgets the cached connection. Tests only; the
// process never tears the connection down implicitly.
func (c *ConnCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
	c.inflight = nil
}

// defaultCache is the process-wide connection cache, constructed on
// first use by Connect.
var defaultCache = NewConnCache(nil)

// Connect returns the process-wide shared connection, establishing it on
// first call. Concurrent callers during an in-flight attempt share one
// physical dial and the same result.
func Connect(ctx context.Context, url string) (*sql.DB, error) {
	return defaultCache.Get(ctx, url)
}
