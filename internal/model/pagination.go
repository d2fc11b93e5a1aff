package model

// PaginationQuery carries the page parameters from the query string
type PaginationQuery struct {
	Page     int `query:"page" json:"page"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

// Normalize clamps the pagination parameters to sane values
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

// Offset returns the row offset for the current page
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PaginationResult reports the page window alongside the total row count
type PaginationResult struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NewPaginationResult builds a pagination result for a response payload
func NewPaginationResult(total int64, q PaginationQuery) PaginationResult {
	return PaginationResult{
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}
