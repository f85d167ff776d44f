package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

// queryString returns nil when the parameter is absent or empty.
func queryString(r *http.Request, key string) *string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	return &value
}

// queryInt parses an optional integer parameter, recording a field error on failure.
func queryInt(r *http.Request, key string, errs *validator.ValidationErrors) *int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		errs.Add(key, "must be an integer")
		return nil
	}
	return &n
}

func pageParams(r *http.Request, errs *validator.ValidationErrors) (page, limit int) {
	if p := queryInt(r, "page", errs); p != nil {
		page = *p
	}
	if l := queryInt(r, "limit", errs); l != nil {
		limit = *l
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
