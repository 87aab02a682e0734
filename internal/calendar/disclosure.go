package calendar

import "spiritedlamb/internal/model"

// Disclosure is the event-details dialog: either closed or showing exactly
// one event. The zero value is closed. Transitions return a new value.
type Disclosure struct {
	open  bool
	event model.Event
}

// Closed is the initial state.
var Closed = Disclosure{}

func Open(e model.Event) Disclosure {
	return Disclosure{open: true, event: e}
}

func (d Disclosure) IsOpen() bool {
	return d.open
}

func (d Disclosure) Event() (model.Event, bool) {
	return d.event, d.open
}

// Activate opens the first event of day, replacing whatever is shown. A day
// without events leaves the disclosure unchanged.
func (d Disclosure) Activate(day Day) Disclosure {
	e, ok := day.First()
	if !ok {
		return d
	}
	return Open(e)
}

func (d Disclosure) Close() Disclosure {
	return Closed
}
