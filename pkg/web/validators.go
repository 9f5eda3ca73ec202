package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator reports whether a parsed path value is acceptable.
type ParamValidator func(value int64) bool

// gt accepts values strictly greater than bound.
func gt(bound int64) ParamValidator {
	return func(value int64) bool { return value > bound }
}

// ParsePathValue parses the named path value as int64 and applies pValidator.
// On failure it has already written a 400 response.
func ParsePathValue(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator) (int64, bool) {
	value := r.PathValue(key)
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s path parameter is required", key))
		return 0, false
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", key, value))
		return 0, false
	}
	return intValue, true
}
