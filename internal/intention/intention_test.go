package intention

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGeminiWithoutKeyMakesNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{Model: "m", Prompt: "p", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	if got := g.FetchDailyIntention(context.Background()); got != Fallback {
		t.Errorf("got %q, want fallback", got)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestGeminiFailureResolvesToFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", Model: "m", Prompt: "p", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	if got := g.FetchDailyIntention(context.Background()); got != Fallback {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGeminiUnreachableResolvesToFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", Model: "m", Prompt: "p", BaseURL: url + "/"})
	if got := g.FetchDailyIntention(context.Background()); got != Fallback {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGeminiReturnsGeneratedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  Walk gently by the sea today.\n"}]}}]}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", Model: "m", Prompt: "p", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	if got := g.FetchDailyIntention(context.Background()); got != "Walk gently by the sea today." {
		t.Errorf("got %q", got)
	}
}

type countingProvider struct {
	calls   int32
	answers []string
	gate    chan struct{}
}

func (p *countingProvider) FetchDailyIntention(ctx context.Context) string {
	n := atomic.AddInt32(&p.calls, 1)
	if p.gate != nil {
		<-p.gate
	}
	i := int(n) - 1
	if i >= len(p.answers) {
		i = len(p.answers) - 1
	}
	return p.answers[i]
}

func newTestDaily(p Provider, now *time.Time) *Daily {
	d := NewDaily(p, time.UTC)
	d.now = func() time.Time { return *now }
	return d
}

func TestDailyCachesPerDay(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := &countingProvider{answers: []string{"first", "second"}}
	d := newTestDaily(p, &now)

	if got := d.FetchDailyIntention(context.Background()); got != "first" {
		t.Fatalf("got %q", got)
	}
	if got := d.FetchDailyIntention(context.Background()); got != "first" {
		t.Fatalf("second call same day = %q, want cached", got)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}

	now = now.Add(24 * time.Hour)
	if got := d.FetchDailyIntention(context.Background()); got != "second" {
		t.Errorf("next day = %q, want fresh value", got)
	}
}

func TestDailyDoesNotCacheFallback(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := &countingProvider{answers: []string{Fallback, "recovered"}}
	d := newTestDaily(p, &now)

	if got := d.FetchDailyIntention(context.Background()); got != Fallback {
		t.Fatalf("got %q", got)
	}
	if got := d.FetchDailyIntention(context.Background()); got != "recovered" {
		t.Errorf("got %q, fallback should not be cached", got)
	}
}

func TestDailySharesInFlightCall(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := &countingProvider{answers: []string{"shared"}, gate: make(chan struct{})}
	d := newTestDaily(p, &now)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.FetchDailyIntention(context.Background())
		}(i)
	}

	// Let every goroutine reach the shared call before releasing it.
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&p.calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(p.gate)
	wg.Wait()

	if n := atomic.LoadInt32(&p.calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	for i, r := range results {
		if r != "shared" {
			t.Errorf("caller %d got %q", i, r)
		}
	}
}

func TestDailyCallerCancellationGetsFallback(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := &countingProvider{answers: []string{"late"}, gate: make(chan struct{})}
	d := newTestDaily(p, &now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := d.FetchDailyIntention(ctx); got != Fallback {
		t.Errorf("cancelled caller got %q, want fallback", got)
	}

	close(p.gate)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, ok := d.cached("2026-10-15"); ok {
			if v != "late" {
				t.Errorf("cached %q", v)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("upstream result was not kept after the caller left")
}

func TestDailyRunRefreshes(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	p := &countingProvider{answers: []string{"morning", "refreshed"}}
	d := newTestDaily(p, &now)

	d.FetchDailyIntention(context.Background())
	d.Run()
	if got := d.FetchDailyIntention(context.Background()); got != "refreshed" {
		t.Errorf("got %q after Run", got)
	}
}

func TestStaticAndFunc(t *testing.T) {
	if Static("x").FetchDailyIntention(context.Background()) != "x" {
		t.Error("Static")
	}
	f := ProviderFunc(func(context.Context) string { return "y" })
	if f.FetchDailyIntention(context.Background()) != "y" {
		t.Error("ProviderFunc")
	}
}
