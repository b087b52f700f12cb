package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"
)

func (s *Server) pathID(r *http.Request, name string) (uint, error) {
	raw := s.mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

func (s *Server) pathValue(r *http.Request, name string) string {
	return s.mux.Vars(r)[name]
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation("%s must be an integer", name)
	}
	return n, nil
}

func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Validation("%s must be true or false", name)
	}
	return b, nil
}

func queryUint(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.Validation("%s must be a positive integer", name)
	}
	id := uint(n)
	return &id, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime accepts RFC 3339 instants and zone-less local date-times, which
// are read in loc.
func parseTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.Validation("invalid date-time %q", raw)
}

func (s *Server) queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseTime(raw, s.loc)
	if err != nil {
		return nil, apperrors.Validation("%s: %s", name, apperrors.MessageOf(err))
	}
	return &t, nil
}

// pageRequest reads page, size, sortBy and sortDir. parseSort may be nil for
// listings with a fixed order.
func pageRequest(r *http.Request, defSize int, parseSort func(field, dir string) (domain.Sort, error)) (domain.PageRequest, error) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := queryInt(r, "size", defSize)
	if err != nil {
		return domain.PageRequest{}, err
	}
	p := domain.PageRequest{Page: page, Size: size}
	if parseSort != nil {
		q := r.URL.Query()
		if p.Sort, err = parseSort(q.Get("sortBy"), q.Get("sortDir")); err != nil {
			return domain.PageRequest{}, err
		}
	}
	return p, nil
}
