package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/events"
)

const maxEventLimit = 1000

func toEventResponses(raw []events.RawEvent) []eventResponse {
	out := make([]eventResponse, len(raw))
	for i, e := range raw {
		out[i] = eventResponse{
			ID:         e.ID,
			Type:       e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OccurredAt: e.OccurredAt,
			Payload:    json.RawMessage(e.Payload),
		}
	}
	return out
}

// listEvents returns the most recent audit events, or with ?since= (RFC 3339)
// the events from that time on in order. Managers only.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	if !actor.CanManage() {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "managing requests is not permitted")
		return
	}

	limit := queryInt(r, "limit", 50)
	if limit < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be positive")
		return
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	if s.deps.EventLog == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
		return
	}

	var (
		raw []events.RawEvent
		err error
	)
	if since := queryString(r, "since"); since != nil {
		t, perr := time.Parse(time.RFC3339, *since)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be an RFC 3339 time")
			return
		}
		raw, err = s.deps.EventLog.Since(r.Context(), t)
		if len(raw) > limit {
			raw = raw[:limit]
		}
	} else {
		raw, err = s.deps.EventLog.Recent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(raw))
}

func (s *Server) listRequestEvents(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if s.deps.EventLog == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
		return
	}

	// Managers keep access to the trail of deleted requests.
	if _, err := s.deps.Requests.Get(r.Context(), actor, id); err != nil && !actor.CanManage() {
		s.writeServiceError(w, r, err)
		return
	}

	raw, err := s.deps.EventLog.ForEntity(r.Context(), events.EntityRequest, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(raw))
}
