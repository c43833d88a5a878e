package system

import (
	stderrors "errors"

	"github.com/mlsaran/smarttimetable/internal/api"
)

// backendStatus unwraps a *api.BackendError, returning its HTTP status.
func backendStatus(err error) (int, bool) {
	var berr *api.BackendError
	if stderrors.As(err, &berr) {
		return berr.Status, true
	}
	return 0, false
}
