package gridfilter

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// QueryDescriptor is the normalized output of Translate and the contract
// handed to the query executor: a 1-based page window, a single order
// expression, relations to eager-load and one boolean where clause with
// positional bound values.
type QueryDescriptor struct {
	Page     int
	PerPage  int
	Order    string
	Includes []string
	Where    string
	Values   []any
}

// Offset returns the row offset of the descriptor's page window.
func (d *QueryDescriptor) Offset() int {
	return (d.Page - 1) * d.PerPage
}

// Conditions returns the where clause followed by its bound values, the
// positional shape expected by pagination facilities.
func (d *QueryDescriptor) Conditions() []any {
	return append([]any{d.Where}, d.Values...)
}

// Apply composes the descriptor onto a gorm query: conditions, ordering,
// eager-loads and the offset/limit window.
func (d *QueryDescriptor) Apply(db *gorm.DB) *gorm.DB {
	db = d.applyConditions(db)
	if d.Order != "" {
		db = db.Order(d.Order)
	}
	for _, relation := range d.Includes {
		db = db.Preload(relation)
	}

	return db.Offset(d.Offset()).Limit(d.PerPage)
}

func (d *QueryDescriptor) applyConditions(db *gorm.DB) *gorm.DB {
	if d.Where == "" {
		return db
	}

	where, values := expandPlaceholders(d.Where, d.Values)

	return db.Where(where, values...)
}

// expandPlaceholders rewrites each "?" bound to a slice value into one
// placeholder per element, flattening the values. "col IN (?)" with
// ["a","b"] becomes "col IN (?,?)" with "a", "b". The parentheses stay
// where the condition put them.
func expandPlaceholders(where string, values []any) (string, []any) {
	var (
		sb       strings.Builder
		expanded = make([]any, 0, len(values))
		next     int
	)

	for _, ch := range where {
		if ch != '?' || next >= len(values) {
			sb.WriteRune(ch)
			continue
		}

		value := values[next]
		next++

		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
			sb.WriteRune('?')
			expanded = append(expanded, value)
			continue
		}

		if rv.Len() == 0 {
			sb.WriteString("NULL")
			continue
		}

		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('?')
			expanded = append(expanded, rv.Index(i).Interface())
		}
	}

	return sb.String(), expanded
}

// Page is a generic paginated result container.
type Page[T any] struct {
	// Items result elements.
	Items []T
	// Total number of elements matching the conditions.
	Total int64
	// Page 1-based page number of this window.
	Page int
	// PerPage effective page size used for the query.
	PerPage int
	// TotalPages number of pages in the filtered dataset.
	TotalPages int
}

// PaginateByFilter is the public entry point: Translate passed straight to
// the executor. It counts the filtered dataset, fetches the requested page
// with ordering, eager-loads and the offset/limit window applied, and wraps
// the result in a Page.
//
// db must already be scoped to the entity's model or table, e.g.
// db.Model(&Person{}) or db.Table("people").
func PaginateByFilter[T any](reg *Registry, db *gorm.DB, entity string, req FilterRequest) (*Page[T], error) {
	desc, err := reg.Translate(entity, req)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate by filter: %w", err)
	}

	var total int64
	err = desc.applyConditions(db.Session(&gorm.Session{})).Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("cannot count filtered dataset: %w", err)
	}

	var items []T
	err = desc.Apply(db.Session(&gorm.Session{})).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch filtered page: %w", err)
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       desc.Page,
		PerPage:    desc.PerPage,
		TotalPages: int((total + int64(desc.PerPage) - 1) / int64(desc.PerPage)),
	}, nil
}
