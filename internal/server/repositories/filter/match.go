package filter

import (
	"fmt"
	"strings"
	"time"
)

// Document exposes field values to Match and Less.
type Document interface {
	Field(name string) (any, bool)
}

// Match evaluates f against doc. Unknown fields never match.
func Match(f Filter, doc Document) bool {
	switch f := f.(type) {
	case nil:
		return true
	case EqFilter:
		v, ok := doc.Field(f.Field)
		return ok && v == f.Value
	case ContainsFilter:
		v, ok := doc.Field(f.Field)
		if !ok {
			return false
		}
		s, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(f.Substr))
	case InFilter:
		v, ok := doc.Field(f.Field)
		if !ok {
			return false
		}
		s := fmt.Sprint(v)
		for _, candidate := range f.Values {
			if candidate == s {
				return true
			}
		}
		return false
	case AndFilter:
		for _, child := range f.Filters {
			if !Match(child, doc) {
				return false
			}
		}
		return true
	case OrFilter:
		for _, child := range f.Filters {
			if Match(child, doc) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Less reports whether a sorts before b under s.
func Less(s Sort, a, b Document) bool {
	av, _ := a.Field(s.Field)
	bv, _ := b.Field(s.Field)
	c := compare(av, bv)
	if s.Desc {
		return c > 0
	}
	return c < 0
}

func compare(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case int32:
		bv, _ := b.(int32)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	default:
		return 0
	}
}
