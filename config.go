package gridfilter

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

const _defaultIDColumn = "id"

// Config holds the per-entity-type filter configuration. Build it with the
// With* chain and register it via Registry.Configure. A stored configuration
// is treated as immutable; register a new Config to replace it.
type Config struct {
	columns        map[string]string
	perPage        int
	includes       []string
	specialFilters map[string]SpecialFilter
	namedHandlers  map[string]HandlerFunc
	defaultSort    string
	idColumn       string
}

func NewConfig() *Config {
	return new(Config)
}

// WithColumns merges the given external-field-to-column mapping into the
// configuration. Later entries win over earlier ones for the same field.
func (c *Config) WithColumns(columns map[string]string) *Config {
	if c == nil {
		c = NewConfig()
	}

	for field, column := range columns {
		c = c.WithColumn(field, column)
	}

	return c
}

// WithColumn maps a single external field name to a storage column or
// selector expression.
func (c *Config) WithColumn(field, column string) *Config {
	if c == nil {
		c = NewConfig()
	}

	if c.columns == nil {
		c.columns = make(map[string]string)
	}
	c.columns[field] = column

	return c
}

// WithPerPage sets the default page size used when the request carries no
// limit. Unset means DefaultPerPage, or the previously registered value when
// the entity type was configured before.
func (c *Config) WithPerPage(perPage int) *Config {
	if c == nil {
		c = NewConfig()
	}

	c.perPage = perPage

	return c
}

// WithIncludes appends relations to eager-load alongside the primary results.
func (c *Config) WithIncludes(relations ...string) *Config {
	if c == nil {
		c = NewConfig()
	}

	c.includes = append(c.includes, relations...)

	return c
}

// WithSpecialFilter routes clauses for field to handler instead of the
// default string/list condition generation.
func (c *Config) WithSpecialFilter(field string, handler SpecialFilter) *Config {
	if c == nil {
		c = NewConfig()
	}

	if c.specialFilters == nil {
		c.specialFilters = make(map[string]SpecialFilter)
	}
	c.specialFilters[field] = handler

	return c
}

// WithNamedHandler registers the handler that HandlerName references resolve
// to at translation time.
func (c *Config) WithNamedHandler(name string, fn HandlerFunc) *Config {
	if c == nil {
		c = NewConfig()
	}

	if c.namedHandlers == nil {
		c.namedHandlers = make(map[string]HandlerFunc)
	}
	c.namedHandlers[name] = fn

	return c
}

// WithDefaultSort sets the order expression applied when the request carries
// no sort field. Falls back to DefaultSortColumn when unset.
func (c *Config) WithDefaultSort(order string) *Config {
	if c == nil {
		c = NewConfig()
	}

	c.defaultSort = order

	return c
}

// WithIDColumn sets the primary identifier column backing the base
// "is not null" clause. Defaults to "id".
func (c *Config) WithIDColumn(column string) *Config {
	if c == nil {
		c = NewConfig()
	}

	c.idColumn = column

	return c
}

func (c *Config) Columns() map[string]string {
	if c == nil {
		return nil
	}

	return c.columns
}

func (c *Config) PerPage() int {
	if c == nil {
		return 0
	}

	return c.perPage
}

func (c *Config) Includes() []string {
	if c == nil {
		return nil
	}

	return c.includes
}

func (c *Config) DefaultSort() string {
	if c == nil {
		return ""
	}

	return c.defaultSort
}

func (c *Config) IDColumn() string {
	if c == nil {
		return ""
	}

	return c.idColumn
}

func (c *Config) validate() error {
	if c.perPage < 0 {
		return invalidArgument("perPage", "page size must be positive, got %d", c.perPage)
	}

	for field, column := range c.columns {
		if field == "" {
			return invalidArgument("columns", "empty external field name")
		}
		if !validIdent(column) {
			return invalidArgument(field, "column mapping contains forbidden symbols '%s'", column)
		}
	}

	for _, relation := range c.includes {
		if relation == "" {
			return invalidArgument("includes", "empty relation name")
		}
	}

	for field, handler := range c.specialFilters {
		if field == "" {
			return invalidArgument("specialFilters", "empty external field name")
		}

		switch h := handler.(type) {
		case HandlerFunc:
			if h == nil {
				return invalidArgument(field, "nil special filter handler")
			}
		case HandlerName:
			if h == "" {
				return invalidArgument(field, "empty special filter handler name")
			}
		default:
			return invalidArgument(field, "unsupported special filter reference %T", handler)
		}
	}

	for name, fn := range c.namedHandlers {
		if name == "" {
			return invalidArgument("namedHandlers", "empty handler name")
		}
		if fn == nil {
			return invalidArgument(name, "nil named handler")
		}
	}

	if c.defaultSort != "" && !validOrderExpr(c.defaultSort) {
		return invalidArgument("defaultSort", "order expression contains forbidden symbols '%s'", c.defaultSort)
	}
	if c.idColumn != "" && !validIdent(c.idColumn) {
		return invalidArgument("idColumn", "column name contains forbidden symbols '%s'", c.idColumn)
	}

	return nil
}

func (c *Config) clone() *Config {
	clone := &Config{
		perPage:     c.perPage,
		defaultSort: c.defaultSort,
		idColumn:    c.idColumn,
	}

	if len(c.columns) > 0 {
		clone.columns = make(map[string]string, len(c.columns))
		for field, column := range c.columns {
			clone.columns[field] = column
		}
	}
	if len(c.includes) > 0 {
		clone.includes = append([]string(nil), c.includes...)
	}
	if len(c.specialFilters) > 0 {
		clone.specialFilters = make(map[string]SpecialFilter, len(c.specialFilters))
		for field, handler := range c.specialFilters {
			clone.specialFilters[field] = handler
		}
	}
	if len(c.namedHandlers) > 0 {
		clone.namedHandlers = make(map[string]HandlerFunc, len(c.namedHandlers))
		for name, fn := range c.namedHandlers {
			clone.namedHandlers[name] = fn
		}
	}

	return clone
}

// Registry stores filter configurations per entity type. It is the explicit
// replacement for ambient class-level configuration state: components hold a
// reference instead of relying on a global lookup. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	dialect Dialect
	logger  zerolog.Logger
	configs map[string]*Config
}

func NewRegistry() *Registry {
	return &Registry{
		dialect: DialectGeneric,
		logger:  zerolog.Nop(),
		configs: make(map[string]*Config),
	}
}

// WithDialect sets the identifier-quoting rules used in emitted conditions.
func (r *Registry) WithDialect(dialect Dialect) *Registry {
	if r == nil {
		r = NewRegistry()
	}

	r.dialect = dialect

	return r
}

// WithLogger enables debug logging for registrations and skipped filter
// clauses. The default logger discards everything.
func (r *Registry) WithLogger(logger zerolog.Logger) *Registry {
	if r == nil {
		r = NewRegistry()
	}

	r.logger = logger

	return r
}

// Configure registers cfg as the single configuration for the entity type,
// replacing any prior one. The page size of a prior registration carries over
// when cfg leaves it unset. A nil cfg registers the defaults. Idempotent for
// identical configurations.
func (r *Registry) Configure(entity string, cfg *Config) error {
	if r == nil {
		return fmt.Errorf("cannot configure on nil registry")
	}
	if entity == "" {
		return invalidArgument("entityType", "must not be empty")
	}
	if cfg == nil {
		cfg = NewConfig()
	}

	err := cfg.validate()
	if err != nil {
		return fmt.Errorf("cannot configure '%s': %w", entity, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged := cfg.clone()
	if merged.perPage == 0 {
		merged.perPage = DefaultPerPage
		if prev := r.configs[entity]; prev != nil {
			merged.perPage = prev.perPage
		}
	}
	if merged.idColumn == "" {
		merged.idColumn = _defaultIDColumn
	}
	r.configs[entity] = merged

	r.logger.Debug().
		Str("entity", entity).
		Int("per_page", merged.perPage).
		Msg("registered filter configuration")

	return nil
}

// Lookup returns the stored configuration for the entity type, or nil when
// none was registered.
func (r *Registry) Lookup(entity string) *Config {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.configs[entity]
}

// PerPageFor returns the effective default page size for the entity type:
// the configured one, or DefaultPerPage when the entity type is unknown.
func (r *Registry) PerPageFor(entity string) int {
	cfg := r.Lookup(entity)
	if cfg == nil {
		return DefaultPerPage
	}

	return cfg.perPage
}
