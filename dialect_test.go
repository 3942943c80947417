package gridfilter

import "testing"

func Test_Dialect_QuoteIdent(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		ident   string
		want    string
	}{
		{"generic passthrough", DialectGeneric, "people.full_name", "people.full_name"},
		{"postgres bare column", DialectPostgres, "status", `"status"`},
		{"postgres qualified column", DialectPostgres, "people.full_name", `"people"."full_name"`},
		{"mysql qualified column", DialectMySQL, "people.full_name", "`people`.`full_name`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.QuoteIdent(tt.ident); got != tt.want {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.want)
			}
		})
	}
}

func Test_validIdent(t *testing.T) {
	tests := []struct {
		name  string
		ident string
		ok    bool
	}{
		{"bare column", "status", true},
		{"qualified column", "people.full_name", true},
		{"empty", "", false},
		{"space", "status x", false},
		{"injection attempt", "status; DROP TABLE people", false},
		{"quote", "status'", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validIdent(tt.ident); got != tt.ok {
				t.Errorf("%s: got %v want %v", tt.name, got, tt.ok)
			}
		})
	}
}

func Test_validOrderExpr(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ok   bool
	}{
		{"column with direction", "people.full_name DESC", true},
		{"multiple columns", "name asc, id desc", true},
		{"empty", "", false},
		{"injection attempt", "name; DROP TABLE people", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validOrderExpr(tt.expr); got != tt.ok {
				t.Errorf("%s: got %v want %v", tt.name, got, tt.ok)
			}
		})
	}
}
