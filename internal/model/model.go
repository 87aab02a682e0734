package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// EventType classifies an event. The set is closed; it drives category
// filtering and colour coding.
type EventType string

const (
	TypePrayer  EventType = "Prayer"
	TypeSocial  EventType = "Social"
	TypeService EventType = "Service"
	TypeStudy   EventType = "Study"
)

// EventTypes lists every EventType in display order.
func EventTypes() []EventType {
	return []EventType{TypePrayer, TypeSocial, TypeService, TypeStudy}
}

func (t EventType) Valid() bool {
	switch t {
	case TypePrayer, TypeSocial, TypeService, TypeStudy:
		return true
	}
	return false
}

// Color is the palette token used for badges and cards of this type.
func (t EventType) Color() string {
	switch t {
	case TypePrayer:
		return "gold"
	case TypeSocial:
		return "primary"
	case TypeService:
		return "olive"
	case TypeStudy:
		return "navy"
	}
	return "charcoal"
}

// County is the region an event belongs to. Currently a single value.
type County string

const CountyVentura County = "Ventura"

func (c County) Valid() bool {
	return c == CountyVentura
}

// Event is an immutable community activity record.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`

	ParishName string  `json:"parish_name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	County     County  `json:"county"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`

	SourceURL string    `json:"source_url,omitempty"`
	Tags      []string  `json:"tags"`
	Type      EventType `json:"type"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// Validate checks the invariants every stored event must hold.
func (e Event) Validate() error {
	var errs []error
	if e.ID == "" {
		errs = append(errs, errors.New("empty id"))
	}
	if e.End.Before(e.Start) {
		errs = append(errs, fmt.Errorf("end %s before start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339)))
	}
	if !e.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown type %q", e.Type))
	}
	if !e.County.Valid() {
		errs = append(errs, fmt.Errorf("unknown county %q", e.County))
	}
	if e.Tags == nil {
		errs = append(errs, errors.New("nil tags"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("event %q: %w", e.ID, err)
	}
	return nil
}

// Image returns ImageURL, or a placeholder derived from the id so the same
// event always gets the same picture.
func (e Event) Image(w, h int) string {
	if e.ImageURL != "" {
		return e.ImageURL
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", url.PathEscape(e.ID), w, h)
}

// Location is the human-readable "parish, address, city" line.
func (e Event) Location() string {
	return e.ParishName + ", " + e.Address + ", " + e.City
}

// MapSearchURL is the map-provider search link for the event's location.
func (e Event) MapSearchURL() string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(e.Location())
}

// Activity is the soft outdoor classification derived from tags.
type Activity string

const (
	ActivityNone    Activity = ""
	ActivityHike    Activity = "hike"
	ActivityBeach   Activity = "beach"
	ActivityOutdoor Activity = "outdoor"
)

// Activity classifies the event by tag substring. Hike wins over beach.
func (e Event) Activity() Activity {
	hike, beach, outdoor := false, false, false
	for _, tag := range e.Tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "hike") || strings.Contains(lower, "hiking") {
			hike = true
		}
		if strings.Contains(lower, "beach") {
			beach = true
		}
		if tag == "Outdoors" || tag == "Active" {
			outdoor = true
		}
	}
	switch {
	case hike:
		return ActivityHike
	case beach:
		return ActivityBeach
	case outdoor:
		return ActivityOutdoor
	}
	return ActivityNone
}

// Guide is the title of the activity-specific section in the event details.
func (a Activity) Guide() string {
	switch a {
	case ActivityHike:
		return "Trail Guide"
	case ActivityBeach:
		return "Beach Guide"
	case ActivityOutdoor:
		return "Outdoor Essentials"
	}
	return ""
}

// Tips lists what to bring for the event. Hike and beach tips combine when an
// event carries both kinds of tag.
func (e Event) Tips() []string {
	var tips []string
	hike, beach := false, false
	for _, tag := range e.Tags {
		lower := strings.ToLower(tag)
		hike = hike || strings.Contains(lower, "hike") || strings.Contains(lower, "hiking")
		beach = beach || strings.Contains(lower, "beach")
	}
	if hike {
		tips = append(tips, "Robust trail shoes required", "Bring 2L water + snacks", "Difficulty: Moderate")
	}
	if beach {
		tips = append(tips, "Sunscreen & Hat advised", "Coastal layers for wind", "Locate our flag on the sand")
	}
	if !hike && !beach && e.Activity() == ActivityOutdoor {
		tips = append(tips, "Check weather forecast", "Notify group upon arrival")
	}
	return tips
}

// ShopCategory groups merchandise.
type ShopCategory string

const (
	ShopApparel     ShopCategory = "Apparel"
	ShopHome        ShopCategory = "Home"
	ShopAccessories ShopCategory = "Accessories"
)

// ShopItem is a static merchandise entry.
type ShopItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    string       `json:"price"`
	ImageURL string       `json:"image_url"`
	Category ShopCategory `json:"category"`
}

// RecurringGroup is a standing community group.
type RecurringGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	County      County `json:"county"`
	Focus       string `json:"focus"`
	Contact     string `json:"contact,omitempty"`
	Website     string `json:"website,omitempty"`
}

type HeroImage struct {
	URL   string
	Label string
}

// Pillar is one of the mission cards below the calendar.
type Pillar struct {
	Title string
	Desc  string
	Image string
}

// MediaLink is a card in the media hub.
type MediaLink struct {
	Kind  string
	Title string
	Desc  string
	URL   string
	Image string
}
