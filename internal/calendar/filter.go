package calendar

import "spiritedlamb/internal/model"

// Category is the active filter: All or one of the event types.
type Category string

const All Category = "All"

// Categories lists the filter tabs in display order.
func Categories() []Category {
	out := []Category{All}
	for _, t := range model.EventTypes() {
		out = append(out, Category(t))
	}
	return out
}

func (c Category) Valid() bool {
	return c == All || model.EventType(c).Valid()
}

// ParseCategory maps user input onto a Category. Unknown input yields All
// and ok=false.
func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return All, true
	}
	c := Category(s)
	if !c.Valid() {
		return All, false
	}
	return c, true
}

// Matches reports whether e is visible under c. Anything that is not a known
// event type behaves like All.
func (c Category) Matches(e model.Event) bool {
	if c == All || !c.Valid() {
		return true
	}
	return e.Type == model.EventType(c)
}

// Filter returns the events visible under c, preserving order. The result
// never aliases the input.
func Filter(events []model.Event, c Category) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if c.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
