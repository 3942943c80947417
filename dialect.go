package gridfilter

import (
	"strings"

	"github.com/samber/lo"
)

// Dialect selects the identifier-quoting rules of the target data store.
type Dialect string

const (
	// DialectGeneric passes identifiers through verbatim. Injection is
	// prevented by the allowed-character restriction, see validIdent.
	DialectGeneric Dialect = "generic"

	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

var (
	_availableColumnNameSymbols = append([]rune("_."), lo.AlphanumericCharset...)
	_availableOrderExprSymbols  = append([]rune("_. ,"), lo.AlphanumericCharset...)
)

// validIdent reports whether s is usable as a column reference. Guards
// against SQL injection by restricting allowed characters in column names.
func validIdent(s string) bool {
	return s != "" && lo.Every(_availableColumnNameSymbols, []rune(s))
}

// validOrderExpr reports whether s is usable as an order expression: column
// references optionally followed by a direction token.
func validOrderExpr(s string) bool {
	return s != "" && lo.Every(_availableOrderExprSymbols, []rune(s))
}

// QuoteIdent quotes a possibly table-qualified column reference per the
// dialect's rules. Each dot-separated segment is quoted individually, so
// "people.full_name" becomes "people"."full_name" on Postgres.
func (d Dialect) QuoteIdent(ident string) string {
	var quote string
	switch d {
	case DialectPostgres:
		quote = `"`
	case DialectMySQL:
		quote = "`"
	default:
		return ident
	}

	segments := strings.Split(ident, ".")
	for i, segment := range segments {
		segments[i] = quote + strings.ReplaceAll(segment, quote, quote+quote) + quote
	}

	return strings.Join(segments, ".")
}
