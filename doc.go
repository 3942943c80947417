// Package gridfilter translates grid-widget request parameters into
// paginated, sorted, filtered GORM queries.
//
// Overview
//
// gridfilter covers three stages composed in sequence:
//   - Registry: per-entity configuration (column mappings, default page size,
//     eager-load relations, special filter handlers) registered once at setup.
//   - Translate: turns a raw parameter bag (start/limit/sort/dir/filter[i])
//     into a QueryDescriptor with a where clause and positional bound values.
//   - PaginateByFilter: hands the descriptor to GORM, returning a Page with
//     items and pagination metadata.
//
// Key concepts
//   - FilterRequest: the typed form of the inbound parameter bag, built via
//     ParseRequest from url.Values.
//   - QueryDescriptor: the contract handed to the query executor.
//   - SpecialFilter: per-field override of the default string/list condition
//     generation, either a HandlerFunc or a HandlerName resolved through the
//     entity's named handlers.
//
// See README for examples and usage details.
package gridfilter
