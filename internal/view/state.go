package view

import (
	"net/url"
	"strconv"
	"time"

	"spiritedlamb/internal/calendar"
)

const (
	refLayout = "2006-01-02"

	// MonthStep is how far the previous/next controls move the reference
	// date.
	MonthStep = 30
)

// State is everything the page remembers between requests. It travels in
// the query string; each transition returns a new State.
type State struct {
	Ref      time.Time
	Category calendar.Category
	// Open is the id of the disclosed event, empty when closed.
	Open string
	Hero int
}

func NewState(now time.Time) State {
	return State{Ref: now, Category: calendar.All}
}

// ParseState reads a State from query parameters. Malformed values fall back
// to the defaults for now.
func ParseState(q url.Values, now time.Time) State {
	s := NewState(now)
	if raw := q.Get("ref"); raw != "" {
		if ref, err := time.ParseInLocation(refLayout, raw, now.Location()); err == nil {
			s.Ref = ref
		}
	}
	s.Category, _ = calendar.ParseCategory(q.Get("category"))
	s.Open = q.Get("open")
	if n, err := strconv.Atoi(q.Get("hero")); err == nil && n >= 0 {
		s.Hero = n
	}
	return s
}

// Query encodes s, leaving out defaults.
func (s State) Query(now time.Time) url.Values {
	q := url.Values{}
	if !sameDay(s.Ref, now) {
		q.Set("ref", s.Ref.Format(refLayout))
	}
	if s.Category != calendar.All && s.Category != "" {
		q.Set("category", string(s.Category))
	}
	if s.Open != "" {
		q.Set("open", s.Open)
	}
	if s.Hero > 0 {
		q.Set("hero", strconv.Itoa(s.Hero))
	}
	return q
}

// Href is the page link for s, anchored at the calendar section.
func (s State) Href(now time.Time) string {
	return s.link(now, "events")
}

func (s State) link(now time.Time, anchor string) string {
	q := s.Query(now).Encode()
	if q == "" {
		return "/#" + anchor
	}
	return "/?" + q + "#" + anchor
}

func (s State) WithCategory(c calendar.Category) State {
	s.Category = c
	return s
}

func (s State) Advance(deltaDays int) State {
	s.Ref = calendar.AdvanceMonth(s.Ref, deltaDays)
	return s
}

// Activate opens the first event of day; an empty day changes nothing.
func (s State) Activate(day calendar.Day) State {
	if e, ok := calendar.Closed.Activate(day).Event(); ok {
		s.Open = e.ID
	}
	return s
}

// Show discloses the event with the given id directly, as the event cards do.
func (s State) Show(id string) State {
	s.Open = id
	return s
}

func (s State) Close() State {
	s.Open = ""
	return s
}

// NextHero advances the hero slide index, wrapping at n.
func (s State) NextHero(n int) State {
	if n <= 0 {
		s.Hero = 0
		return s
	}
	s.Hero = (s.Hero + 1) % n
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
