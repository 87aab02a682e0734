package intention

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	appLog "spiritedlamb/internal/log"
)

// Daily remembers the first real answer of each day and shares a single
// upstream call between concurrent callers. Fallback answers are not cached,
// so the next page load asks again; nothing is retried automatically.
//
// Daily implements cron.Job so a schedule can pre-warm the day's value.
type Daily struct {
	next Provider
	loc  *time.Location
	now  func() time.Time

	mu    sync.Mutex
	day   string
	value string

	group singleflight.Group
}

func NewDaily(next Provider, loc *time.Location) *Daily {
	if loc == nil {
		loc = time.Local
	}
	return &Daily{next: next, loc: loc, now: time.Now}
}

func (d *Daily) FetchDailyIntention(ctx context.Context) string {
	key := d.dayKey()
	if v, ok := d.cached(key); ok {
		return v
	}
	return d.fetch(ctx, key)
}

// Run refreshes today's value regardless of the cache.
func (d *Daily) Run() {
	key := d.dayKey()
	v := d.fetch(context.Background(), key)
	appLog.Info("daily intention refreshed", "day", key, "fallback", v == Fallback)
}

func (d *Daily) fetch(ctx context.Context, key string) string {
	// The shared call outlives any single request: a caller that goes away
	// simply stops waiting.
	callCtx := context.WithoutCancel(ctx)
	ch := d.group.DoChan(key, func() (any, error) {
		v := d.next.FetchDailyIntention(callCtx)
		if v != Fallback {
			d.mu.Lock()
			d.day, d.value = key, v
			d.mu.Unlock()
		}
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val.(string)
	case <-ctx.Done():
		return Fallback
	}
}

func (d *Daily) cached(key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.day == key && d.value != "" {
		return d.value, true
	}
	return "", false
}

func (d *Daily) dayKey() string {
	return d.now().In(d.loc).Format("2006-01-02")
}
