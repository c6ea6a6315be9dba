package filter

import (
	"fmt"
	"strings"
)

// Columns maps logical field names onto SQL column names. Fields missing
// from the map are rejected so user input never reaches the query text.
type Columns map[string]string

// SQL compiles f into a WHERE clause body with PostgreSQL placeholders
// starting at $offset+1. A nil filter compiles to "TRUE".
func SQL(f Filter, cols Columns, offset int) (string, []any, error) {
	b := &sqlBuilder{cols: cols, n: offset}
	clause, err := b.build(f)
	if err != nil {
		return "", nil, err
	}
	return clause, b.args, nil
}

// OrderBy compiles sorts into an ORDER BY clause, or "" when none are given.
func OrderBy(cols Columns, sorts ...Sort) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		col, ok := cols[s.Field]
		if !ok {
			return "", fmt.Errorf("unknown sort field %q", s.Field)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

type sqlBuilder struct {
	cols Columns
	args []any
	n    int
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	b.n++
	return fmt.Sprintf("$%d", b.n)
}

func (b *sqlBuilder) column(field string) (string, error) {
	col, ok := b.cols[field]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", field)
	}
	return col, nil
}

func (b *sqlBuilder) build(f Filter) (string, error) {
	switch f := f.(type) {
	case nil:
		return "TRUE", nil
	case EqFilter:
		col, err := b.column(f.Field)
		if err != nil {
			return "", err
		}
		return col + " = " + b.arg(f.Value), nil
	case ContainsFilter:
		col, err := b.column(f.Field)
		if err != nil {
			return "", err
		}
		return col + " ILIKE " + b.arg("%"+escapeLike(f.Substr)+"%"), nil
	case InFilter:
		col, err := b.column(f.Field)
		if err != nil {
			return "", err
		}
		if len(f.Values) == 0 {
			return "FALSE", nil
		}
		placeholders := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			placeholders = append(placeholders, b.arg(v))
		}
		return col + " IN (" + strings.Join(placeholders, ", ") + ")", nil
	case AndFilter:
		return b.join(f.Filters, " AND ", "TRUE")
	case OrFilter:
		return b.join(f.Filters, " OR ", "FALSE")
	default:
		return "", fmt.Errorf("unsupported filter %T", f)
	}
}

func (b *sqlBuilder) join(filters []Filter, sep, empty string) (string, error) {
	if len(filters) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(filters))
	for _, child := range filters {
		part, err := b.build(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
