package gridfilter

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Translate turns a FilterRequest into a QueryDescriptor using the entity
// type's registered configuration.
//
// Paging: the request limit wins over the configured page size when positive;
// page = start/perPage + 1. Sort: the request field is resolved through the
// column mapping, or used verbatim when unmapped; with no sort the configured
// default order applies, then DefaultSortColumn. Conditions: a base
// "<id column> is not null" clause, then one condition per filter clause in
// input order. Clauses whose type is neither "string" nor "list" and whose
// field has no special handler are skipped.
//
// Returns ErrNotConfigured when the entity type was never registered and
// InvalidArgumentError for unresolvable handler references or injection-prone
// sort identifiers.
func (r *Registry) Translate(entity string, req FilterRequest) (*QueryDescriptor, error) {
	cfg := r.Lookup(entity)
	if cfg == nil {
		return nil, fmt.Errorf("cannot translate for '%s': %w", entity, ErrNotConfigured)
	}

	perPage := cfg.perPage
	if req.Limit != nil && *req.Limit > 0 {
		perPage = *req.Limit
	}

	page := 1
	if req.Start != nil && *req.Start >= 0 {
		page = *req.Start/perPage + 1
	}

	order, err := r.orderFor(cfg, req)
	if err != nil {
		return nil, fmt.Errorf("cannot translate for '%s': %w", entity, err)
	}

	conditions := new(Conditions)
	conditions.Add(fmt.Sprintf("%s is not null", r.dialect.QuoteIdent(cfg.idColumn)))

	for _, clause := range req.Filters {
		if handler, ok := cfg.specialFilters[clause.Field]; ok {
			fn, err := resolveHandler(cfg, clause.Field, handler)
			if err != nil {
				return nil, err
			}

			err = fn(conditions, clause.Type, clause.Value)
			if err != nil {
				return nil, fmt.Errorf("special filter for '%s' failed: %w", clause.Field, err)
			}

			continue
		}

		column := clause.Field
		if mapped, ok := cfg.columns[clause.Field]; ok {
			column = mapped
		}
		if !validIdent(column) {
			r.logger.Debug().
				Str("entity", entity).
				Str("field", clause.Field).
				Msg("filter column contains forbidden symbols, skipping clause")

			continue
		}

		switch clause.Type {
		case FilterTypeString:
			conditions.Add(
				fmt.Sprintf("UPPER(%s) LIKE ?", r.dialect.QuoteIdent(column)),
				"%"+strings.ToUpper(clause.Value)+"%",
			)
		case FilterTypeList:
			conditions.Add(
				fmt.Sprintf("%s IN (?)", r.dialect.QuoteIdent(column)),
				strings.Split(clause.Value, ","),
			)
		default:
			// Unknown type with no special handler is tolerated, not an error.
			r.logger.Debug().
				Str("entity", entity).
				Str("field", clause.Field).
				Str("type", clause.Type).
				Msg("no handler for filter clause, skipping")
		}
	}

	return &QueryDescriptor{
		Page:     page,
		PerPage:  perPage,
		Order:    order,
		Includes: append([]string(nil), cfg.includes...),
		Where:    conditions.SQL(),
		Values:   conditions.Values(),
	}, nil
}

func (r *Registry) orderFor(cfg *Config, req FilterRequest) (string, error) {
	if req.Sort == "" {
		if cfg.defaultSort != "" {
			return cfg.defaultSort, nil
		}

		return DefaultSortColumn, nil
	}

	column := req.Sort
	if mapped, ok := cfg.columns[req.Sort]; ok {
		column = mapped
	}
	if !validIdent(column) {
		return "", invalidArgument(
			"sort",
			"column contains forbidden symbols. closest: '%s'",
			closestField(req.Sort, lo.Keys(cfg.columns)),
		)
	}
	if req.Dir != "" && !validIdent(req.Dir) {
		return "", invalidArgument("dir", "direction contains forbidden symbols '%s'", req.Dir)
	}

	// An empty dir leaves a trailing space. That is part of the wire
	// contract, do not trim it.
	return fmt.Sprintf("%s %s", r.dialect.QuoteIdent(column), req.Dir), nil
}

func resolveHandler(cfg *Config, field string, handler SpecialFilter) (HandlerFunc, error) {
	switch h := handler.(type) {
	case HandlerFunc:
		if h == nil {
			return nil, invalidArgument(field, "nil special filter handler")
		}

		return h, nil
	case HandlerName:
		fn, ok := cfg.namedHandlers[string(h)]
		if !ok {
			return nil, invalidArgument(field, "special filter references unknown handler '%s'", h)
		}

		return fn, nil
	default:
		return nil, invalidArgument(field, "unsupported special filter reference %T", handler)
	}
}

func closestField(input string, fields []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, field := range fields {
		dist := levenshtein([]rune(field), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = field
		}
	}

	return closest
}
