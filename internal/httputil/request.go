package httputil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QueryString returns the trimmed query parameter, or def when absent.
func QueryString(r *http.Request, key, def string) string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def
	}
	return value
}

// QueryBool parses a boolean query parameter. An absent parameter yields def.
func QueryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("query parameter %s: invalid boolean %q", key, raw)
	}
	return value, nil
}
