package graph

// Args holds the arguments of one operation by name. An argument is present
// when its key exists with a non-nil value.
type Args map[string]any

func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// OptString returns nil when name is absent.
func (a Args) OptString(name string) *string {
	switch v := a[name].(type) {
	case string:
		return &v
	case *string:
		return v
	}
	return nil
}

func (a Args) Bool(name string) bool {
	if b := a.OptBool(name); b != nil {
		return *b
	}
	return false
}

func (a Args) OptBool(name string) *bool {
	switch v := a[name].(type) {
	case bool:
		return &v
	case *bool:
		return v
	}
	return nil
}

// Int32 accepts the integer shapes produced by GraphQL executors and JSON
// decoding.
func (a Args) Int32(name string) int32 {
	switch v := a[name].(type) {
	case int32:
		return v
	case int:
		return int32(v)
	case int64:
		return int32(v)
	case float64:
		return int32(v)
	}
	return 0
}
