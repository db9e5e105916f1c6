package pagination

// Pagination is the shared limit/offset query contract for list endpoints.
type Pagination struct {
	Limit  int `form:"limit,default=100" validate:"gte=1,lte=1000"`
	Offset int `form:"offset,default=0" validate:"gte=0"`
}

// Normalize clamps the pagination values to their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Limit > 1000 {
		p.Limit = 1000
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageInfo reports the window a list response covers.
type PageInfo struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
