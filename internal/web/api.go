package web

import (
	"net/http"
	"time"

	"spiritedlamb/internal/calendar"
	appLog "spiritedlamb/internal/log"
	"spiritedlamb/internal/model"
	"spiritedlamb/internal/view"
)

// intentionResponse is the JSON response shape for /api/intention.
type intentionResponse struct {
	Intention string `json:"intention"`
}

// eventsResponse is the JSON response shape for /api/events.
type eventsResponse struct {
	Category string        `json:"category"`
	Events   []model.Event `json:"events"`
}

// dayDTO is one grid cell in /api/calendar.
type dayDTO struct {
	Date     string   `json:"date"`
	InMonth  bool     `json:"in_month"`
	EventIDs []string `json:"event_ids"`
}

type calendarResponse struct {
	Month     string   `json:"month"`
	Category  string   `json:"category"`
	WeekStart string   `json:"week_start"`
	Days      []dayDTO `json:"days"`
}

// handleIntention always answers 200; the provider never fails.
func (s *Server) handleIntention(w http.ResponseWriter, r *http.Request) {
	text := s.intention.FetchDailyIntention(r.Context())
	s.writeJSON(w, http.StatusOK, intentionResponse{Intention: text})
}

// handleEvents returns the events visible under ?category=.
//
// GET /api/events?category=Prayer
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	now := s.pageOptions().Now
	state := view.ParseState(r.URL.Query(), now)
	events := calendar.Filter(s.storeAt(now).Events(), state.Category)
	s.writeJSON(w, http.StatusOK, eventsResponse{
		Category: string(state.Category),
		Events:   events,
	})
}

// handleCalendar returns the month grid for ?ref= (YYYY-MM-DD) and
// ?category=.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	opts := s.pageOptions()
	state := view.ParseState(r.URL.Query(), opts.Now)
	grid := calendar.BuildMonthGrid(state.Ref, calendar.Filter(s.storeAt(opts.Now).Events(), state.Category), opts.WeekStart)

	days := make([]dayDTO, 0, len(grid))
	for _, d := range grid {
		ids := make([]string, 0, len(d.Events))
		for _, e := range d.Events {
			ids = append(ids, e.ID)
		}
		days = append(days, dayDTO{
			Date:     d.Date.Format(time.DateOnly),
			InMonth:  d.InMonth,
			EventIDs: ids,
		})
	}

	s.writeJSON(w, http.StatusOK, calendarResponse{
		Month:     state.Ref.Format("2006-01"),
		Category:  string(state.Category),
		WeekStart: s.cfg.WeekStart,
		Days:      days,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	if err := s.ren.JSON(w, status, v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	s.writeJSON(w, status, errResp{Error: msg})
}
