package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/eventlog"
)

// AdminEventsHandler handles admin event log queries
type AdminEventsHandler struct {
	eventlogService eventlog.Service
}

// NewAdminEventsHandler creates a new admin events handler
func NewAdminEventsHandler(eventlogService eventlog.Service) *AdminEventsHandler {
	return &AdminEventsHandler{eventlogService: eventlogService}
}

// EventsResponse is one page of the event log. NextBeforeID is set when the
// page is full; pass it back as before_id for the next page.
type EventsResponse struct {
	Events       []eventlog.Event `json:"events"`
	NextBeforeID *int64           `json:"nextBeforeId,omitempty"`
}

// HandleGetEvents retrieves logged settlement events
// @Summary Query the settlement event log
// @Tags admin
// @Produce json
// @Param user_id query string false "User ID"
// @Param game_id query string false "Round or game ID"
// @Param event_type query string false "Event type, e.g. wager.settled"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Maximum rows (1-500)"
// @Param before_id query int false "Return events older than this ID"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/events [get]
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetIntQueryParam(r, w, "limit", eventlog.DefaultQueryLimit, 1, eventlog.MaxQueryLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	filter := eventlog.EventFilter{
		UserID:    optionalParam(r, "user_id"),
		GameID:    optionalParam(r, "game_id"),
		EventType: optionalParam(r, "event_type"),
		Limit:     limit,
	}

	var err error
	if filter.Since, err = optionalTimeParam(r, "since"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSince)
		return
	}
	if filter.Until, err = optionalTimeParam(r, "until"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidUntil)
		return
	}
	if raw := r.URL.Query().Get("before_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidBeforeID)
			return
		}
		filter.BeforeID = &id
	}

	events, err := h.eventlogService.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEventsFailed, err)
		return
	}
	if events == nil {
		events = []eventlog.Event{}
	}

	resp := EventsResponse{Events: events}
	if len(events) == limit {
		last := events[len(events)-1].ID
		resp.NextBeforeID = &last
	}
	respondJSON(w, http.StatusOK, resp)
}

func optionalParam(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func optionalTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
