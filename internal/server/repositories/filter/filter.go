// Package filter describes store-independent predicates over catalog
// documents. Backends compile a Filter into their own query language
// (SQL, bson) or evaluate it directly with Match.
//
// A nil Filter matches every document.
package filter

// Logical document fields understood by every backend.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldAge        = "age"
	FieldGenre      = "genre"
	FieldAuthorID   = "authorId"
	FieldIsFavorite = "isFavorite"
	FieldUserName   = "username"
	FieldEmail      = "email"
	FieldRole       = "role"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
)

type Filter interface {
	isFilter()
}

// EqFilter matches documents whose field equals Value exactly.
type EqFilter struct {
	Field string
	Value any
}

// ContainsFilter is a case-insensitive substring match on a text field.
type ContainsFilter struct {
	Field  string
	Substr string
}

// InFilter matches documents whose field is one of Values. An empty set
// matches nothing.
type InFilter struct {
	Field  string
	Values []string
}

type AndFilter struct {
	Filters []Filter
}

// OrFilter with no alternatives matches nothing.
type OrFilter struct {
	Filters []Filter
}

func (EqFilter) isFilter()       {}
func (ContainsFilter) isFilter() {}
func (InFilter) isFilter()       {}
func (AndFilter) isFilter()      {}
func (OrFilter) isFilter()       {}

func Eq(field string, value any) Filter {
	return EqFilter{Field: field, Value: value}
}

func Contains(field, substr string) Filter {
	return ContainsFilter{Field: field, Substr: substr}
}

func In(field string, values []string) Filter {
	return InFilter{Field: field, Values: values}
}

// And joins filters conjunctively, skipping nil ones. It returns nil when
// nothing is left and the single filter itself when only one remains.
func And(filters ...Filter) Filter {
	kept := compact(filters)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return AndFilter{Filters: kept}
	}
}

// Or joins filters disjunctively, skipping nil ones.
func Or(filters ...Filter) Filter {
	kept := compact(filters)
	if len(kept) == 1 {
		return kept[0]
	}
	return OrFilter{Filters: kept}
}

func compact(filters []Filter) []Filter {
	kept := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			kept = append(kept, f)
		}
	}
	return kept
}

// Sort orders results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Newest and Oldest order by creation time.
var (
	Newest = Sort{Field: FieldCreatedAt, Desc: true}
	Oldest = Sort{Field: FieldCreatedAt, Desc: false}
)
