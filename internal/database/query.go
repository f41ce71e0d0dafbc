package database

import (
	"strings"
)

// QueryBuilder converts SQL queries with ? placeholders to dialect-specific format.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts a query with ? placeholders to dialect-specific placeholders.
// A ? inside a single-quoted string literal is left alone.
//
// Example:
//
//	input:    "SELECT id FROM towers WHERE seed = ? AND width = ?"
//	SQLite:   "SELECT id FROM towers WHERE seed = ? AND width = ?"
//	Postgres: "SELECT id FROM towers WHERE seed = $1 AND width = $2"
func (qb *QueryBuilder) Build(query string) string {
	// SQLite uses ? placeholders, so no conversion needed
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	quoted := false

	for i := 0; i < len(query); i++ {
		switch c := query[i]; {
		case c == '\'':
			quoted = !quoted
			result.WriteByte(c)
		case c == '?' && !quoted:
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		default:
			result.WriteByte(c)
		}
	}

	return result.String()
}

// BuildWithReturning appends a RETURNING clause if the dialect requires it.
// Used for INSERT statements that need the inserted ID.
//
// Example:
//
//	input:    "INSERT INTO towers (fingerprint) VALUES (?)", "id"
//	SQLite:   "INSERT INTO towers (fingerprint) VALUES (?)"
//	Postgres: "INSERT INTO towers (fingerprint) VALUES ($1) RETURNING id"
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}
