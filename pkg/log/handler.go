package log

import (
	"github.com/cockroachdb/errors"
)

// extractStacktrace returns the stack recorded by cockroachdb/errors
// when the error (or its outermost wrapper) carries one.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
