package httpx

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tair/foodgram/pkg/errs"
)

// Page is the paginated list envelope
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Pagination is a parsed page/limit pair
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// Within rejects pages past the last one; the first page always exists
func (p Pagination) Within(count int64) error {
	if p.Page > 1 && int64(p.Offset()) >= count {
		return errs.NotFound("invalid page")
	}
	return nil
}

// ParsePagination reads page and limit from the query string
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (Pagination, error) {
	p := Pagination{Page: 1, Limit: defaultLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errs.NotFound("invalid page")
		}
		p.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, errs.ValidationField("limit", "limit must be a positive integer")
		}
		p.Limit = n
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	// the offset of page must fit in an int
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return p, errs.NotFound("invalid page")
	}
	return p, nil
}

// NewPage builds the envelope with absolute next/previous links
func NewPage[T any](r *http.Request, p Pagination, count int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: count, Results: results}

	if int64(p.Page*p.Limit) < count {
		next := pageURL(r, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(r, p.Page-1)
		page.Previous = &prev
	}
	return page
}

func pageURL(r *http.Request, n int) string {
	u := url.URL{
		Scheme: "http",
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	q := r.URL.Query()
	if n <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
