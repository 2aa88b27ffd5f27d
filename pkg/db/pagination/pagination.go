package pagination

// Pagination binds the standard list query parameters.
type Pagination struct {
	PageSize int `form:"page_size,default=200" validate:"gte=1,lte=500"`
}

// Limit clamps the bound page size to a sane window.
func (p Pagination) Limit(max int) int {
	if p.PageSize <= 0 || p.PageSize > max {
		return max
	}
	return p.PageSize
}
