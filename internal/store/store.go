package store

import (
	"errors"
	"fmt"

	"spiritedlamb/internal/model"
)

var ErrNotFound = errors.New("not found")

// Catalog is everything the site displays. It is handed to New once at
// startup and never modified afterwards.
type Catalog struct {
	Events  []model.Event
	Shop    []model.ShopItem
	Groups  []model.RecurringGroup
	Hero    []model.HeroImage
	Pillars []model.Pillar
	Media   []model.MediaLink
}

// Store is a read-only view over a Catalog. It is safe for concurrent use
// because nothing mutates it after construction.
type Store struct {
	cat  Catalog
	byID map[string]int
}

// New validates the catalog and builds a Store. Event ids must be unique.
func New(cat Catalog) (*Store, error) {
	s := &Store{
		cat:  cloneCatalog(cat),
		byID: make(map[string]int, len(cat.Events)),
	}
	for i, e := range s.cat.Events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", e.ID)
		}
		s.byID[e.ID] = i
	}
	return s, nil
}

// MustNew is New for compiled-in seed data, where a bad record is a bug.
func MustNew(cat Catalog) *Store {
	s, err := New(cat)
	if err != nil {
		panic(fmt.Sprintf("store: invalid seed data: %v", err))
	}
	return s
}

// Events returns all events in store order. The slice is a copy.
func (s *Store) Events() []model.Event {
	out := make([]model.Event, len(s.cat.Events))
	copy(out, s.cat.Events)
	return out
}

func (s *Store) Event(id string) (model.Event, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return s.cat.Events[i], nil
}

func (s *Store) Shop() []model.ShopItem {
	return append([]model.ShopItem(nil), s.cat.Shop...)
}

func (s *Store) Groups() []model.RecurringGroup {
	return append([]model.RecurringGroup(nil), s.cat.Groups...)
}

func (s *Store) Hero() []model.HeroImage {
	return append([]model.HeroImage(nil), s.cat.Hero...)
}

func (s *Store) Pillars() []model.Pillar {
	return append([]model.Pillar(nil), s.cat.Pillars...)
}

func (s *Store) Media() []model.MediaLink {
	return append([]model.MediaLink(nil), s.cat.Media...)
}

func cloneCatalog(c Catalog) Catalog {
	events := make([]model.Event, len(c.Events))
	for i, e := range c.Events {
		e.Tags = append([]string(nil), e.Tags...)
		if e.Tags == nil && c.Events[i].Tags != nil {
			e.Tags = []string{}
		}
		events[i] = e
	}
	return Catalog{
		Events:  events,
		Shop:    append([]model.ShopItem(nil), c.Shop...),
		Groups:  append([]model.RecurringGroup(nil), c.Groups...),
		Hero:    append([]model.HeroImage(nil), c.Hero...),
		Pillars: append([]model.Pillar(nil), c.Pillars...),
		Media:   append([]model.MediaLink(nil), c.Media...),
	}
}
