// Package availability enriches catalog items with their status across the
// servers a user is bound to.
package availability

import (
	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// Status is the overall availability of an item.
type Status string

const (
	StatusAvailable    Status = "available"
	StatusDownloaded   Status = Status(arr.StatusDownloaded)
	StatusQueued       Status = Status(arr.StatusQueued)
	StatusMissing      Status = Status(arr.StatusMissing)
	StatusUnreleased   Status = Status(arr.StatusUnreleased)
	StatusRequested    Status = "requested"
	StatusNotAvailable Status = "not_available"
)

// Signals are the per-item answers gathered from every checker.
type Signals struct {
	// InLibrary is true when any bound server's library has the item.
	InLibrary bool
	// Manager is the primary binding's download manager status.
	Manager arr.Status
	// Tracked is true when the item was pushed toward fulfillment on the
	// primary binding.
	Tracked bool
}

// Reduce folds signals into one status. Library presence wins over the
// manager status, which wins over a tracked request.
func Reduce(s Signals) Status {
	switch {
	case s.InLibrary:
		return StatusAvailable
	case s.Manager.Valid():
		return Status(s.Manager)
	case s.Tracked:
		return StatusRequested
	default:
		return StatusNotAvailable
	}
}

// Enriched is a catalog item with its availability.
type Enriched struct {
	catalog.Item
	Status             Status   `json:"status"`
	Poster             string   `json:"posterUrl,omitempty"`
	LibraryAvailable   bool     `json:"libraryAvailable"`
	LibraryServerNames []string `json:"libraryServerNames"`
	ManagerStatus      *string  `json:"managerStatus"`
	Tracked            bool     `json:"tracked"`
}
