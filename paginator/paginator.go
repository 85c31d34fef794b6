// Package paginator slices ordered listings into fixed-size pages.
//
// Page numbers are 1-indexed and never produce an error: a missing or non-numeric
// number selects the first page, numbers past the end select the last one.
package paginator

import (
	"strconv"

	"gorm.io/gorm"
)

type Page[T any] struct {
	Items              []T   `json:"items"`
	Number             int   `json:"number"`
	NumPages           int   `json:"num_pages"`
	Count              int64 `json:"count"`
	HasPrevious        bool  `json:"has_previous"`
	HasNext            bool  `json:"has_next"`
	PreviousPageNumber int   `json:"previous_page_number"`
	NextPageNumber     int   `json:"next_page_number"`
}

// Len makes the page usable like the slice of its items in templates and tests
func (p Page[T]) Len() int {
	return len(p.Items)
}

// PageRange lists every page number, for rendering page links
func (p Page[T]) PageRange() []int {
	result := make([]int, 0, p.NumPages)
	for i := 1; i <= p.NumPages; i++ {
		result = append(result, i)
	}
	return result
}

type Bounds struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
}

// Locate resolves raw (usually the "page" query parameter) against count items
func Locate(count int64, perPage int, raw string) Bounds {
	if perPage <= 0 {
		perPage = 1
	}
	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages == 0 {
		numPages = 1 // an empty listing still has one (empty) page
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	offset := (number - 1) * perPage
	limit := perPage
	if rest := int(count) - offset; rest < limit {
		limit = max(rest, 0)
	}
	return Bounds{
		Number:   number,
		NumPages: numPages,
		Offset:   offset,
		Limit:    limit,
	}
}

// Paginate counts tx, then loads the requested page with order and preloads applied.
// tx must carry the model and filters only.
func Paginate[T any](tx *gorm.DB, order string, perPage int, raw string, preloads ...string) (page Page[T], err error) {
	var count int64
	if err = tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return
	}
	b := Locate(count, perPage, raw)
	page = Page[T]{
		Items:    []T{},
		Number:   b.Number,
		NumPages: b.NumPages,
		Count:    count,
	}
	page.HasPrevious = b.Number > 1
	page.HasNext = b.Number < b.NumPages
	if page.HasPrevious {
		page.PreviousPageNumber = b.Number - 1
	}
	if page.HasNext {
		page.NextPageNumber = b.Number + 1
	}
	if b.Limit == 0 {
		return
	}
	query := tx.Session(&gorm.Session{}).Order(order).Offset(b.Offset).Limit(b.Limit)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	err = query.Find(&page.Items).Error
	return
}
