// Package suggest drives cover lookups from an edit form: it debounces title
// and platform changes, discards stale results and remembers an explicitly
// chosen suggestion so it is not looked up again.
package suggest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
)

const (
	// DefaultDelay is the quiet period before a lookup is issued.
	DefaultDelay = 300 * time.Millisecond
	// DefaultLimit is the number of candidates requested per lookup.
	DefaultLimit = enrichment.DefaultOptionLimit
)

// Resolver is the lookup the driver schedules. *enrichment.Resolver
// satisfies it.
type Resolver interface {
	ResolveCoverOptions(ctx context.Context, title string, p platform.Platform, limit int) []enrichment.Candidate
}

// Draft is the record being edited.
type Draft struct {
	Title    string
	Platform platform.Platform
	Year     int
	CoverURL string
}

// Update is delivered after a lookup that was still current when it
// finished. Draft already has the top candidate's cover applied.
type Update struct {
	Title      string
	Platform   platform.Platform
	Candidates []enrichment.Candidate
	Draft      Draft
}

// Driver debounces lookups for a single form. The zero value is not usable;
// create one with New.
type Driver struct {
	resolver Resolver
	clock    clockwork.Clock
	delay    time.Duration
	limit    int
	onUpdate func(Update)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	token  uint64
	timer  clockwork.Timer
	draft  Draft
	locked string
	closed bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the real clock, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(d *Driver) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithDelay sets the quiet period. Non-positive values are ignored.
func WithDelay(delay time.Duration) Option {
	return func(d *Driver) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithLimit sets how many candidates each lookup asks for.
func WithLimit(limit int) Option {
	return func(d *Driver) {
		if limit > 0 {
			d.limit = limit
		}
	}
}

// OnUpdate registers the callback for fresh results. It runs on the lookup
// goroutine without the driver's lock held, so it may call back into the
// driver.
func OnUpdate(fn func(Update)) Option {
	return func(d *Driver) {
		d.onUpdate = fn
	}
}

// New creates a Driver for a form whose current values are initial.
func New(resolver Resolver, initial Draft, opts ...Option) *Driver {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Driver{
		resolver: resolver,
		clock:    clockwork.NewRealClock(),
		delay:    DefaultDelay,
		limit:    DefaultLimit,
		ctx:      ctx,
		cancel:   cancel,
		draft:    initial,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetTitle records a title edit and schedules a lookup. Editing the title
// clears the lock unless the normalized text is unchanged.
func (d *Driver) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.draft.Title = title
	normalized := enrichment.Normalize(title)
	if d.locked != "" && normalized == d.locked {
		return
	}
	d.locked = ""
	d.scheduleLocked(normalized)
}

// SetPlatform records a platform change and schedules a lookup for the
// current title, unless that title is locked.
func (d *Driver) SetPlatform(p platform.Platform) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.draft.Platform = p
	normalized := enrichment.Normalize(d.draft.Title)
	if d.locked != "" && normalized == d.locked {
		return
	}
	d.scheduleLocked(normalized)
}

// Choose applies an explicitly picked candidate to the draft and locks its
// title. Any pending or in-flight lookup is discarded.
func (d *Driver) Choose(c enrichment.Candidate) Draft {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.draft.Title = c.Title
	d.draft.CoverURL = c.ThumbnailURL
	if p, ok := c.Platform(); ok {
		d.draft.Platform = p
	}
	d.draft.Year = c.Year(d.draft.Year)
	d.locked = enrichment.Normalize(c.Title)
	d.supersedeLocked()

	return d.draft
}

// Draft returns the current draft.
func (d *Driver) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// Locked returns the normalized title of the last chosen candidate, or ""
// when nothing is locked.
func (d *Driver) Locked() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// Close tears the driver down. Results arriving afterwards are dropped and
// further edits are ignored.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.supersedeLocked()
	d.mu.Unlock()

	d.cancel()
}

// Wait blocks until every scheduled lookup has either been cancelled or
// finished.
func (d *Driver) Wait() {
	d.wg.Wait()
}

// scheduleLocked replaces any pending lookup with one for the current draft
// after the quiet period. A blank title only cancels.
func (d *Driver) scheduleLocked(normalizedTitle string) {
	d.supersedeLocked()
	if normalizedTitle == "" {
		return
	}

	token := d.token
	title := d.draft.Title
	p := d.draft.Platform

	d.wg.Add(1)
	d.timer = d.clock.AfterFunc(d.delay, func() {
		go d.lookup(token, title, p)
	})
}

// supersedeLocked invalidates the current token and stops the pending timer.
func (d *Driver) supersedeLocked() {
	d.token++
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
}

func (d *Driver) currentLocked(token uint64) bool {
	return !d.closed && token == d.token
}

func (d *Driver) lookup(token uint64, title string, p platform.Platform) {
	defer d.wg.Done()

	d.mu.Lock()
	current := d.currentLocked(token)
	d.mu.Unlock()
	if !current {
		return
	}

	candidates := d.resolver.ResolveCoverOptions(d.ctx, title, p, d.limit)

	d.mu.Lock()
	if !d.currentLocked(token) {
		d.mu.Unlock()
		slog.Debug("Discarding stale suggestions", "title", title, "platform", p)
		return
	}
	if len(candidates) > 0 {
		d.draft.CoverURL = candidates[0].ThumbnailURL
	}
	update := Update{
		Title:      title,
		Platform:   p,
		Candidates: candidates,
		Draft:      d.draft,
	}
	d.mu.Unlock()

	if d.onUpdate != nil {
		d.onUpdate(update)
	}
}
