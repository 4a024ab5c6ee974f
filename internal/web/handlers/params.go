package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParamError reports a path or query parameter that is not a valid integer
type ParamError struct {
	Field string
	Value string
}

func (e ParamError) Error() string {
	return fmt.Sprintf("%s: value %q is not a valid integer", e.Field, e.Value)
}

// pathInt parses an integer URL parameter
func pathInt(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ParamError{Field: name, Value: raw}
	}
	return v, nil
}

// queryInt parses an optional integer query parameter, returning def when absent
func queryInt(r *http.Request, name string, def int64) (int64, error) {
	q := r.URL.Query()
	if !q.Has(name) {
		return def, nil
	}
	raw := q.Get(name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ParamError{Field: name, Value: raw}
	}
	return v, nil
}
