package gridfilter

import "strings"

// Filter clause types recognized by the default condition generation. Any
// other type is routed to a SpecialFilter when one is registered for the
// field, and silently skipped otherwise.
const (
	FilterTypeString = "string"
	FilterTypeList   = "list"
)

// Conditions accumulates WHERE clause fragments and their positional bound
// values. Fragments are joined with " and " when rendered.
type Conditions struct {
	clauses []string
	values  []any
}

// Add appends a clause fragment and its bound values. The fragment uses "?"
// placeholders; identifiers inside it must already be quoted.
func (c *Conditions) Add(clause string, values ...any) {
	c.clauses = append(c.clauses, clause)
	c.values = append(c.values, values...)
}

// SQL renders the accumulated fragments as a single boolean expression.
func (c *Conditions) SQL() string {
	return strings.Join(c.clauses, " and ")
}

// Values returns the bound values in the order their fragments were added.
func (c *Conditions) Values() []any {
	return c.values
}

// SpecialFilter overrides the default string/list condition generation for a
// single field. Exactly two implementations exist:
//   - HandlerFunc: a callable invoked directly.
//   - HandlerName: a reference resolved through the entity configuration's
//     named handlers at translation time.
type SpecialFilter interface {
	specialFilter()
}

// HandlerFunc appends zero or more condition fragments and bound values to
// the accumulator for one filter clause. typ and value arrive verbatim from
// the request.
type HandlerFunc func(c *Conditions, typ, value string) error

func (HandlerFunc) specialFilter() {}

// HandlerName references a handler registered via Config.WithNamedHandler.
type HandlerName string

func (HandlerName) specialFilter() {}

var (
	_ SpecialFilter = (HandlerFunc)(nil)
	_ SpecialFilter = (HandlerName)("")
)
