package view

import (
	"strings"
	"time"

	"spiritedlamb/internal/calendar"
	"spiritedlamb/internal/model"
	"spiritedlamb/internal/store"
)

// Options are the site-wide inputs to Build.
type Options struct {
	SiteName  string
	WeekStart time.Weekday
	Now       time.Time
	// Intention is the text rendered before the async fetch replaces it.
	Intention string
}

type Tab struct {
	Name   string
	Active bool
	Href   string
}

type Cell struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Count   int
	Color   string
	// Href opens the first event of the day; empty for days without events.
	Href string
}

type Slide struct {
	Image  model.HeroImage
	Active bool
}

// Detail is the open event as the dialog shows it.
type Detail struct {
	Event    model.Event
	Image    string
	DateLine string
	TimeLine string
	Guide    string
	Tips     []string
	ICSHref  string
	MapHref  string
}

type Card struct {
	Event model.Event
	Image string
	When  string
	Href  string
	Color string
}

// Page is the full view-model of the single page.
type Page struct {
	SiteName string
	State    State

	Hero []Slide
	// HeroNextHref shows the following slide; the script rotates in place.
	HeroNextHref string

	MonthLabel string
	Weekdays   []string
	Tabs       []Tab
	Cells      []Cell
	PrevHref   string
	NextHref   string
	Upcoming   []Card

	Detail    *Detail
	CloseHref string

	Pillars   []model.Pillar
	Media     []model.MediaLink
	Shop      []model.ShopItem
	Groups    []model.RecurringGroup
	Intention string
}

// Build derives the page for s: filter, then grid, then disclosure.
func Build(st *store.Store, s State, opts Options) Page {
	now := opts.Now
	filtered := calendar.Filter(st.Events(), s.Category)
	grid := calendar.BuildMonthGrid(s.Ref, filtered, opts.WeekStart)

	p := Page{
		SiteName:   opts.SiteName,
		State:      s,
		MonthLabel: s.Ref.Format("January 2006"),
		PrevHref:   s.Advance(-MonthStep).Close().Href(now),
		NextHref:   s.Advance(MonthStep).Close().Href(now),
		CloseHref:  s.Close().Href(now),
		Pillars:    st.Pillars(),
		Media:      st.Media(),
		Shop:       st.Shop(),
		Groups:     st.Groups(),
		Intention:  opts.Intention,
	}

	for _, wd := range calendar.Weekdays(opts.WeekStart) {
		p.Weekdays = append(p.Weekdays, strings.ToUpper(wd.String()[:3]))
	}

	for _, c := range calendar.Categories() {
		p.Tabs = append(p.Tabs, Tab{
			Name:   string(c),
			Active: c == s.Category,
			Href:   s.WithCategory(c).Href(now),
		})
	}

	for _, d := range grid {
		cell := Cell{
			Date:    d.Date,
			InMonth: d.InMonth,
			Today:   sameDay(d.Date, now),
			Count:   len(d.Events),
		}
		if first, ok := d.First(); ok {
			cell.Color = first.Type.Color()
			cell.Href = s.Activate(d).Href(now)
		}
		p.Cells = append(p.Cells, cell)
	}

	hero := st.Hero()
	for i, img := range hero {
		p.Hero = append(p.Hero, Slide{Image: img, Active: i == s.Hero%len(hero)})
	}
	if len(hero) > 1 {
		p.HeroNextHref = s.NextHero(len(hero)).link(now, "hero")
	}

	for _, e := range filtered {
		if e.End.Before(startOfDay(now)) {
			continue
		}
		p.Upcoming = append(p.Upcoming, Card{
			Event: e,
			Image: e.Image(600, 400),
			When:  e.Start.In(now.Location()).Format("Mon, Jan 2 · 3:04 PM"),
			Href:  s.Show(e.ID).Href(now),
			Color: e.Type.Color(),
		})
	}

	if s.Open != "" {
		if e, err := st.Event(s.Open); err == nil {
			p.Detail = detailFor(e, now.Location())
		}
	}
	return p
}

func detailFor(e model.Event, loc *time.Location) *Detail {
	start, end := e.Start.In(loc), e.End.In(loc)
	return &Detail{
		Event:    e,
		Image:    e.Image(800, 800),
		DateLine: start.Format("Monday, Jan 2"),
		TimeLine: start.Format("3:04 PM") + " — " + end.Format("3:04 PM"),
		Guide:    e.Activity().Guide(),
		Tips:     e.Tips(),
		ICSHref:  "/events/" + e.ID + "/ics",
		MapHref:  "/events/" + e.ID + "/map",
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
