package service

// Pagination: блок page в ответах списков.
// Next и Previous содержат смещения соседних страниц, nil если страницы нет.
type Pagination struct {
	Next     *int64 `json:"next"`
	Limit    int64  `json:"limit"`
	Previous *int64 `json:"previous"`
}

// NewPagination считает соседние смещения для offset-пагинации
func NewPagination(offset, limit, total int64) Pagination {
	p := Pagination{Limit: limit}
	// offset+limit < total без переполнения int64
	if limit < total && offset < total-limit {
		next := offset + limit
		p.Next = &next
	}
	if prev := offset - limit; prev >= 0 {
		p.Previous = &prev
	}
	return p
}
