package phpserial

import "strconv"

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindInt:    "integer",
	KindFloat:  "float",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a decoded PHP value. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Array  []Pair
	Object *Object
}

// Pair is one key/value entry of a PHP array. Key is always KindInt or KindString.
type Pair struct {
	Key   Value
	Value Value
}

// Visibility is the declared visibility of an object property.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// Object is a decoded PHP object: a class name plus its attributes in
// encounter order.
type Object struct {
	Class string
	Attrs []Attr
}

// Attr is one object property. Type is the declared kind of Val.
type Attr struct {
	Name       string
	Visibility Visibility
	// Owner is the declaring class for private properties.
	Owner string
	Type  Kind
	Val   Value
}

// Attr returns the attribute with the given name.
func (o *Object) Attr(name string) (Attr, bool) {
	if o == nil {
		return Attr{}, false
	}
	for _, a := range o.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// Null, Bool, Int, Float and String build scalar values; mostly useful in tests.
func Null() Value               { return Value{Kind: KindNull} }
func Bool(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value         { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value     { return Value{Kind: KindFloat, Float: f} }
func String(s string) Value     { return Value{Kind: KindString, Str: s} }
func Array(pairs ...Pair) Value { return Value{Kind: KindArray, Array: pairs} }

// keyString renders an array key the way PHP would use it as a map key.
func (v Value) keyString() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Str
}
