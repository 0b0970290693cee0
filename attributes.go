package phpsess

// Attributes is the flattened PHP session: attribute name to native value.
// Values are nil, bool, int64, float64, string, []any or map[string]any.
type Attributes map[string]any

// String returns the named attribute when it is a string.
func (a Attributes) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// Int returns the named attribute when it is an integer.
func (a Attributes) Int(name string) (int64, bool) {
	i, ok := a[name].(int64)
	return i, ok
}

// Float returns the named attribute when it is a float or an integer.
func (a Attributes) Float(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the named attribute when it is a boolean.
func (a Attributes) Bool(name string) (bool, bool) {
	b, ok := a[name].(bool)
	return b, ok
}

// Map returns the named attribute when it is a keyed array or object.
func (a Attributes) Map(name string) (Attributes, bool) {
	m, ok := a[name].(map[string]any)
	return Attributes(m), ok
}

// List returns the named attribute when it is a list-shaped array.
func (a Attributes) List(name string) ([]any, bool) {
	l, ok := a[name].([]any)
	return l, ok
}

// Has reports whether the attribute is present, even if null.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}
