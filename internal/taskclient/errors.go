package taskclient

import (
	"fmt"
	"net/http"

	"github.com/guttosm/salespulse/internal/domain/models"
)

// NetworkError is a failed call to the task API: the request never completed
// or the API answered with a non-success status.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d %s", e.Op, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DataNotReadyError reports a task whose dataset cannot be fetched yet.
// Either the data endpoint refused (StatusCode set) or the task is known to be
// in a non-completed state (Status set).
type DataNotReadyError struct {
	TaskID     int
	StatusCode int
	Status     models.TaskStatus
}

func (e *DataNotReadyError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("task %d data is not ready yet (status %s)", e.TaskID, e.Status.Label())
	}
	return fmt.Sprintf("task %d data is not ready yet (status code %d)", e.TaskID, e.StatusCode)
}

// notReadyCodes are the data endpoint answers that mean "try again later".
var notReadyCodes = map[int]bool{
	http.StatusAccepted: true,
	http.StatusNotFound: true,
	http.StatusConflict: true,
	http.StatusTooEarly: true,
}
