package model

// PageRequest is a 1-based page/limit pair parsed from query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps out-of-range values to the defaults (page 1, limit 10).
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// Offset converts the 1-based page number to a row offset.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

// Pagination is the envelope returned alongside every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(req PageRequest, total int64) Pagination {
	limit := int64(req.Limit)
	pages := (total + limit - 1) / limit
	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, TotalPages: pages}
}
