package arr

// Status is a download manager's view of an item. The empty Status is the
// null status: not configured, not found, or unknown after an error.
type Status string

const (
	StatusNone       Status = ""
	StatusDownloaded Status = "downloaded"
	StatusQueued     Status = "queued"
	StatusMissing    Status = "missing"
	StatusUnreleased Status = "unreleased"
)

// Valid reports whether s is a known non-null status.
func (s Status) Valid() bool {
	switch s {
	case StatusDownloaded, StatusQueued, StatusMissing, StatusUnreleased:
		return true
	}
	return false
}

// Observation is what a manager reports about one item.
type Observation struct {
	Found     bool
	HasFile   bool
	Monitored bool
	Queued    bool
	Released  bool
}

// Classify maps an observation to a status.
func Classify(o Observation) Status {
	switch {
	case !o.Found:
		return StatusNone
	case o.HasFile:
		return StatusDownloaded
	case !o.Monitored:
		return StatusNone
	case o.Queued:
		return StatusQueued
	case o.Released:
		return StatusMissing
	default:
		return StatusUnreleased
	}
}
