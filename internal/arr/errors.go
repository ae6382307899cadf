package arr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golift.io/starr"
)

var (
	// ErrNotConfigured means the binding has no manager for the media kind.
	ErrNotConfigured = errors.New("download manager not configured")
	// ErrNotFound means the manager's lookup does not know the catalog item.
	ErrNotFound = errors.New("item not found by download manager")
	// ErrMisconfigured means the manager lacks root folders or quality profiles.
	ErrMisconfigured = errors.New("download manager misconfigured")
	// ErrAlreadyExists means the manager already tracks the item.
	ErrAlreadyExists = errors.New("item already exists in download manager")
	// ErrRemoteUnavailable wraps transport and API failures.
	ErrRemoteUnavailable = errors.New("download manager unavailable")
)

var existsMarkers = []string{
	"MovieExistsValidator",
	"SeriesExistsValidator",
	"already been added",
	"already exists",
}

// isExistsError reports whether err is the manager refusing a duplicate add.
func isExistsError(err error) bool {
	if err == nil {
		return false
	}
	var reqErr *starr.ReqError
	if errors.As(err, &reqErr) && containsAny(string(reqErr.Body)) {
		return true
	}
	return containsAny(err.Error())
}

func containsAny(s string) bool {
	for _, m := range existsMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// lookupErr classifies a failed lookup: a 404 is ErrNotFound, anything else
// is ErrRemoteUnavailable.
func lookupErr(what string, err error) error {
	var reqErr *starr.ReqError
	if errors.As(err, &reqErr) && reqErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("%w: lookup %s: %v", ErrRemoteUnavailable, what, err)
}
