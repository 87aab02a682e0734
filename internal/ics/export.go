package ics

import (
	"regexp"
	"time"

	ical "github.com/arran4/golang-ical"

	"spiritedlamb/internal/model"
)

const productID = "-//Spirited Lamb//Community Events//EN"

// ContentType is the MIME type of an exported document.
const ContentType = "text/calendar; charset=utf-8"

var whitespace = regexp.MustCompile(`\s+`)

// Export renders a single event as an iCalendar document. pageURL, if set,
// becomes the event's URL property. DTSTART/DTEND are written in UTC.
func Export(e model.Event, pageURL string) []byte {
	return exportAt(e, pageURL, time.Now())
}

func exportAt(e model.Event, pageURL string, stamp time.Time) []byte {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	ev := cal.AddEvent(e.ID + "@spiritedlamb")
	ev.SetDtStampTime(stamp)
	if pageURL != "" {
		ev.SetURL(pageURL)
	}
	ev.SetStartAt(e.Start)
	ev.SetEndAt(e.End)
	ev.SetSummary(e.Title)
	ev.SetDescription(e.Description)
	ev.SetLocation(e.Location())

	return []byte(cal.Serialize())
}

// Filename is the download name for an event: whitespace runs become a
// single underscore.
func Filename(title string) string {
	return whitespace.ReplaceAllString(title, "_") + ".ics"
}
