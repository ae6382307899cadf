package events

// Entity types
const (
	EntityRequest = "request"
	EntityItem    = "item" // catalog item, keyed by TMDB ID
)

// Event type constants
const (
	EventRequestCreated       = "request.created"
	EventRequestApproved      = "request.approved"
	EventRequestRejected      = "request.rejected"
	EventRequestDeleted       = "request.deleted"
	EventFulfillmentCompleted = "fulfillment.completed"
	EventFulfillmentFailed    = "fulfillment.failed"
)

// RequestCreated is emitted when a request is recorded, pending or added directly.
type RequestCreated struct {
	BaseEvent
	ServerID string `json:"server_id"`
	TMDBID   int64  `json:"tmdb_id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Status   string `json:"status"` // "pending" or "added"
}

// RequestApproved is emitted when an operator approves a pending request.
type RequestApproved struct {
	BaseEvent
	Warning string `json:"warning,omitempty"` // fulfillment problem, request still approved
}

// RequestRejected is emitted when an operator rejects a pending request.
type RequestRejected struct {
	BaseEvent
	Notes string `json:"notes,omitempty"`
}

// RequestDeleted is emitted when a request is removed.
type RequestDeleted struct {
	BaseEvent
	Status string `json:"status"` // status at deletion
}

// FulfillmentCompleted is emitted when a manager accepted an item or already had it.
type FulfillmentCompleted struct {
	BaseEvent
	ServerID      string `json:"server_id"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Year          int    `json:"year,omitempty"`
	AlreadyExists bool   `json:"already_exists"`
}

// FulfillmentFailed is emitted when an add could not be completed.
type FulfillmentFailed struct {
	BaseEvent
	ServerID string `json:"server_id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Reason   string `json:"reason"`
}
