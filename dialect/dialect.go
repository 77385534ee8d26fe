// Package dialect names the SQL generation variants supported by sqlgen.
//
// Dialects are a way to tweak the SQL generation in case of non-standard
// behavior, and to work around driver inconsistencies. Two things depend on
// the dialect today:
//
//   - The way an untyped NULL parameter is bound. The Oracle driver rejects
//     a generic NULL and needs a concrete numeric type instead.
//   - The availability of vendor-only compound-select operators. MINUS is
//     Oracle-only; standard SQL spells it EXCEPT.
//
// # Usage
//
//	b := sqlgen.New(dialect.Standard)
//	b := sqlgen.New(dialect.Oracle, sqlgen.WithDebug(true))
package dialect

// Dialect identifies a SQL generation variant.
type Dialect string

const (
	// Standard is used when no other dialect applies. The generated SQL
	// stays as close to SQL-2003 as possible.
	Standard Dialect = "standard"

	// Oracle enables Oracle-specific behavior: MINUS compound selects and
	// numerically-typed NULL binds.
	Oracle Dialect = "oracle"
)

// String returns the dialect name.
func (d Dialect) String() string { return string(d) }
