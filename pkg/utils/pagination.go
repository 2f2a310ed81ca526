package utils

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PageParams are the 1-based page/page_size query parameters every list
// endpoint accepts.
type PageParams struct {
	Page     int
	PageSize int
}

// PageFromQuery parses pagination parameters, clamping bad input to defaults.
func PageFromQuery(r *http.Request) PageParams {
	p := PageParams{Page: 1, PageSize: DefaultPageSize}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > MaxPageSize {
				n = MaxPageSize
			}
			p.PageSize = n
		}
	}
	return p
}

func (p PageParams) Limit() int  { return p.PageSize }
func (p PageParams) Offset() int { return (p.Page - 1) * p.PageSize }

// PaginatedResponse is the list envelope: count plus next/previous page URLs
// (null at either end) and the page of results.
type PaginatedResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Paginate builds the envelope, deriving next/previous URLs from the request.
func Paginate(r *http.Request, count int, p PageParams, results interface{}) PaginatedResponse {
	resp := PaginatedResponse{Count: count, Results: results}
	if p.Offset()+p.PageSize < count {
		resp.Next = pageURL(r, p.Page+1, p.PageSize)
	}
	if p.Page > 1 {
		resp.Previous = pageURL(r, p.Page-1, p.PageSize)
	}
	return resp
}

func pageURL(r *http.Request, page, size int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
