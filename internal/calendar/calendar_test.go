package calendar

import (
	"reflect"
	"testing"
	"time"

	"spiritedlamb/internal/model"
	"spiritedlamb/internal/store"
)

var testNow = time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)

func seedEvents() []model.Event {
	return store.Seed(testNow).Events()
}

func TestGridShapeForManyMonths(t *testing.T) {
	locs := []*time.Location{time.UTC, time.FixedZone("PST", -8*3600)}
	for _, loc := range locs {
		for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
			for m := 0; m < 12*12; m++ {
				ref := time.Date(2020, time.January, 17, 15, 30, 0, 0, loc).AddDate(0, m, 0)
				days := BuildMonthGrid(ref, nil, ws)

				if len(days)%7 != 0 {
					t.Fatalf("%s ws=%v: len=%d not a multiple of 7", ref.Format("2006-01"), ws, len(days))
				}
				if len(days) < 28 || len(days) > 42 {
					t.Fatalf("%s: unexpected grid length %d", ref.Format("2006-01"), len(days))
				}
				if days[0].Date.Weekday() != ws {
					t.Fatalf("%s: grid starts on %v, want %v", ref.Format("2006-01"), days[0].Date.Weekday(), ws)
				}
				wantEnd := time.Weekday((int(ws) + 6) % 7)
				if days[len(days)-1].Date.Weekday() != wantEnd {
					t.Fatalf("%s: grid ends on %v, want %v", ref.Format("2006-01"), days[len(days)-1].Date.Weekday(), wantEnd)
				}
				for i, d := range days {
					inMonth := d.Date.Month() == ref.Month() && d.Date.Year() == ref.Year()
					if d.InMonth != inMonth {
						t.Fatalf("%s: day %s InMonth=%v", ref.Format("2006-01"), d.Date.Format("2006-01-02"), d.InMonth)
					}
					if i > 0 && keyOf(d.Date) == keyOf(days[i-1].Date) {
						t.Fatalf("%s: repeated date %s", ref.Format("2006-01"), d.Date.Format("2006-01-02"))
					}
				}
			}
		}
	}
}

func TestOctober2026Layout(t *testing.T) {
	days := BuildMonthGrid(testNow, nil, time.Sunday)
	if len(days) != 35 {
		t.Fatalf("len = %d, want 35", len(days))
	}
	if got := days[0].Date.Format("2006-01-02"); got != "2026-09-27" {
		t.Errorf("first cell = %s, want 2026-09-27", got)
	}
	if got := days[34].Date.Format("2006-01-02"); got != "2026-10-31" {
		t.Errorf("last cell = %s, want 2026-10-31", got)
	}
}

func TestEventsLandInExactlyOneDay(t *testing.T) {
	events := seedEvents()
	days := BuildMonthGrid(testNow, events, time.Sunday)

	seen := map[string]int{}
	for _, d := range days {
		for _, e := range d.Events {
			seen[e.ID]++
			if keyOf(e.Start) != keyOf(d.Date) {
				t.Errorf("event %s (%s) bucketed under %s", e.ID, e.Start, d.Date)
			}
		}
	}
	for _, e := range events {
		if seen[e.ID] != 1 {
			t.Errorf("event %s appears %d times", e.ID, seen[e.ID])
		}
	}
}

func TestSeedScenarioBadges(t *testing.T) {
	events := seedEvents()

	badges := func(c Category) map[string]int {
		out := map[string]int{}
		for _, d := range BuildMonthGrid(testNow, Filter(events, c), time.Sunday) {
			if d.InMonth && d.HasEvents() {
				out[d.Date.Format("2006-01-02")] = len(d.Events)
			}
		}
		return out
	}

	want := map[string]int{"2026-10-01": 1, "2026-10-03": 1, "2026-10-06": 1, "2026-10-08": 1}
	if got := badges(All); !reflect.DeepEqual(got, want) {
		t.Errorf("All badges = %v, want %v", got, want)
	}
	if got := badges(Category(model.TypePrayer)); !reflect.DeepEqual(got, map[string]int{"2026-10-01": 1}) {
		t.Errorf("Prayer badges = %v, want only the beach rosary day", got)
	}
}

func TestEventBucketsUseReferenceLocation(t *testing.T) {
	// 2026-10-02 03:00 UTC is still 2026-10-01 in Los Angeles (UTC-7).
	pdt := time.FixedZone("PDT", -7*3600)
	e := model.Event{ID: "x", Start: time.Date(2026, 10, 2, 3, 0, 0, 0, time.UTC), Tags: []string{}}
	days := BuildMonthGrid(time.Date(2026, 10, 10, 0, 0, 0, 0, pdt), []model.Event{e}, time.Sunday)
	for _, d := range days {
		if d.HasEvents() && d.Date.Day() != 1 {
			t.Errorf("event bucketed on %s, want Oct 1 local", d.Date.Format("2006-01-02"))
		}
	}
}

func TestSameDayEventsKeepStoreOrder(t *testing.T) {
	day := testNow
	a := model.Event{ID: "a", Start: day.Add(5 * time.Hour), Tags: []string{}}
	b := model.Event{ID: "b", Start: day.Add(1 * time.Hour), Tags: []string{}}
	days := BuildMonthGrid(testNow, []model.Event{a, b}, time.Sunday)

	for _, d := range days {
		if !d.HasEvents() {
			continue
		}
		if len(d.Events) != 2 || d.Events[0].ID != "a" || d.Events[1].ID != "b" {
			t.Fatalf("events = %+v, want [a b] in store order", d.Events)
		}
		got, _ := Closed.Activate(d).Event()
		if got.ID != "a" {
			t.Errorf("activate opened %q, want first by store order", got.ID)
		}
	}
}

func TestFilter(t *testing.T) {
	events := seedEvents()

	if got := Filter(events, All); !reflect.DeepEqual(got, events) {
		t.Errorf("Filter(All) changed the sequence")
	}
	for _, c := range Categories() {
		once := Filter(events, c)
		twice := Filter(once, c)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Filter(%s) not idempotent", c)
		}
		for _, e := range once {
			if !c.Matches(e) {
				t.Errorf("Filter(%s) kept %s of type %s", c, e.ID, e.Type)
			}
		}
	}
	social := Filter(events, Category(model.TypeSocial))
	if len(social) != 2 || social[0].ID != "2" || social[1].ID != "3" {
		t.Errorf("Social = %v", social)
	}
	if got := Filter(events, Category(model.TypeStudy)); len(got) != 0 {
		t.Errorf("Study should be empty, got %d", len(got))
	}
	if got := Filter(events, Category("Bogus")); !reflect.DeepEqual(got, events) {
		t.Errorf("unknown category should behave like All")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", All, true},
		{"All", All, true},
		{"Prayer", Category(model.TypePrayer), true},
		{"prayer", All, false},
		{"Party", All, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAdvanceMonthAddsDays(t *testing.T) {
	ref := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	got := AdvanceMonth(ref, 30)
	if got.Format("2006-01-02") != "2026-03-02" {
		t.Errorf("AdvanceMonth(+30) = %s, want 2026-03-02 (February skipped)", got.Format("2006-01-02"))
	}
	if back := AdvanceMonth(got, -30); !back.Equal(ref) {
		t.Errorf("AdvanceMonth(-30) = %s", back)
	}
}

func TestDisclosureTransitions(t *testing.T) {
	events := seedEvents()
	if Closed.IsOpen() {
		t.Fatal("zero value must be closed")
	}

	empty := Day{Date: testNow}
	if Closed.Activate(empty).IsOpen() {
		t.Error("activating an empty day must not open")
	}

	d := Closed.Activate(Day{Events: events[:1]})
	if e, ok := d.Event(); !ok || e.ID != "1" {
		t.Fatalf("expected event 1 open, got %v %v", e.ID, ok)
	}
	if still := d.Activate(empty); !still.IsOpen() {
		t.Error("empty day must leave an open disclosure alone")
	}

	d = d.Activate(Day{Events: events[2:]})
	if e, _ := d.Event(); e.ID != "3" {
		t.Errorf("open replaced with %s, want 3", e.ID)
	}
	if d.Close().IsOpen() {
		t.Error("Close must close")
	}
}

func TestWeekdays(t *testing.T) {
	got := Weekdays(time.Monday)
	if got[0] != time.Monday || got[6] != time.Sunday {
		t.Errorf("Weekdays(Monday) = %v", got)
	}
}
