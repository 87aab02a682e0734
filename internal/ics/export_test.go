package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"spiritedlamb/internal/model"
)

func sampleEvent() model.Event {
	pdt := time.FixedZone("PDT", -7*3600)
	return model.Event{
		ID:          "1",
		Title:       "Beach Rosary & Sunrise",
		Description: "Gather for a morning Rosary on the sand.",
		Start:       time.Date(2026, 10, 15, 7, 0, 0, 0, pdt),
		End:         time.Date(2026, 10, 15, 9, 0, 0, 0, pdt),
		ParishName:  "San Buenaventura State Beach",
		Address:     "901 San Pedro St",
		City:        "Ventura",
		County:      model.CountyVentura,
		Tags:        []string{"Beach"},
		Type:        model.TypePrayer,
	}
}

func TestExportFields(t *testing.T) {
	doc := string(exportAt(sampleEvent(), "https://lamb.example/?open=1", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:Beach Rosary & Sunrise",
		"DTSTART:20261015T140000Z",
		"DTEND:20261015T160000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("export missing %q:\n%s", want, doc)
		}
	}
}

func TestExportParsesBack(t *testing.T) {
	e := sampleEvent()
	cal, err := ical.ParseCalendar(bytes.NewReader(Export(e, "https://lamb.example/")))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 VEVENT, got %d", len(events))
	}
	ve := events[0]

	start, err := ve.GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt: %v", err)
	}
	if !start.Equal(e.Start) {
		t.Errorf("start = %s, want %s", start, e.Start)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		t.Fatalf("GetEndAt: %v", err)
	}
	if !end.Equal(e.End) {
		t.Errorf("end = %s, want %s", end, e.End)
	}
	for _, prop := range []ical.ComponentProperty{
		ical.ComponentPropertyUrl,
		ical.ComponentPropertyDescription,
		ical.ComponentPropertyLocation,
	} {
		if p := ve.GetProperty(prop); p == nil || p.Value == "" {
			t.Errorf("missing %s", prop)
		}
	}
}

func TestExportOmitsURLWhenUnset(t *testing.T) {
	doc := string(Export(sampleEvent(), ""))
	if strings.Contains(doc, "\nURL:") {
		t.Errorf("unexpected URL property:\n%s", doc)
	}
}

func TestFilename(t *testing.T) {
	tests := map[string]string{
		"Beach Rosary & Sunrise": "Beach_Rosary_&_Sunrise.ics",
		"Ventura  River\tTrail":  "Ventura_River_Trail.ics",
		"St. Thomas YA Potluck":  "St._Thomas_YA_Potluck.ics",
		"NoSpaces":               "NoSpaces.ics",
	}
	for in, want := range tests {
		if got := Filename(in); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}
