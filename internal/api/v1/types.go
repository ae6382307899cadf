package v1

import (
	"encoding/json"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/availability"
)

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// searchResponse is the response for GET /search.
type searchResponse struct {
	Query        string                  `json:"query"`
	Kind         string                  `json:"kind"`
	Page         int                     `json:"page"`
	TotalPages   int                     `json:"totalPages"`
	TotalResults int                     `json:"totalResults"`
	Results      []availability.Enriched `json:"results"`
}

// createRequestBody is the body of POST /requests.
type createRequestBody struct {
	ItemID   int64  `json:"itemId"`
	Kind     string `json:"kind"`
	ServerID string `json:"serverId,omitempty"`
	Seasons  []int  `json:"seasons,omitempty"`
}

// rejectRequestBody is the body of POST /requests/{id}/reject.
type rejectRequestBody struct {
	Notes string `json:"notes"`
}

// serverResponse is one binding as seen by its user. Credentials stay server side.
type serverResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
	Radarr  bool   `json:"radarr"`
	Sonarr  bool   `json:"sonarr"`
}

// eventResponse is one audit event.
type eventResponse struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	EntityType string          `json:"entityType"`
	EntityID   int64           `json:"entityId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}
