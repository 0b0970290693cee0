package phpserial

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDepth bounds array/object nesting.
const MaxDepth = 512

// minPairSize is the smallest encoding of one key/value pair: `i:0;N;`.
const minPairSize = 6

// ErrMalformed is wrapped by every decode failure.
var ErrMalformed = errors.New("phpserial: malformed record")

// SyntaxError reports where decoding stopped.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("phpserial: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformed }

// Decode parses exactly one serialized value from data. Trailing bytes are an error.
func Decode(data []byte) (Value, error) {
	d := decoder{data: data}
	v, err := d.value()
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(d.data) {
		return Value{}, d.errorf("unexpected trailing data")
	}
	return v, nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (Value, error) {
	return Decode([]byte(s))
}

type decoder struct {
	data  []byte
	pos   int
	depth int
}

func (d *decoder) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: d.pos, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) expect(c byte) error {
	if d.pos >= len(d.data) {
		return d.errorf("expected %q, got end of input", c)
	}
	if d.data[d.pos] != c {
		return d.errorf("expected %q, got %q", c, d.data[d.pos])
	}
	d.pos++
	return nil
}

// token returns the bytes up to delim and consumes the delimiter.
func (d *decoder) token(delim byte) ([]byte, error) {
	i := bytes.IndexByte(d.data[d.pos:], delim)
	if i < 0 {
		return nil, d.errorf("missing %q", delim)
	}
	tok := d.data[d.pos : d.pos+i]
	if len(tok) == 0 {
		return nil, d.errorf("empty token before %q", delim)
	}
	d.pos += i + 1
	return tok, nil
}

// length reads an unsigned decimal terminated by delim.
func (d *decoder) length(delim byte) (int, error) {
	start := d.pos
	tok, err := d.token(delim)
	if err != nil {
		return 0, err
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			d.pos = start
			return 0, d.errorf("invalid length %q", tok)
		}
	}
	n, err := strconv.Atoi(string(tok))
	if err != nil {
		d.pos = start
		return 0, d.errorf("invalid length %q", tok)
	}
	return n, nil
}

func (d *decoder) value() (Value, error) {
	if d.pos >= len(d.data) {
		return Value{}, d.errorf("unexpected end of input")
	}
	tag := d.data[d.pos]
	d.pos++

	switch tag {
	case 'N':
		if err := d.expect(';'); err != nil {
			return Value{}, err
		}
		return Null(), nil
	case 'b', 'i', 'd', 's', 'a', 'O':
	default:
		d.pos--
		return Value{}, d.errorf("unknown type tag %q", tag)
	}

	if err := d.expect(':'); err != nil {
		return Value{}, err
	}

	switch tag {
	case 'b':
		return d.boolean()
	case 'i':
		return d.integer()
	case 'd':
		return d.float()
	case 's':
		s, err := d.quoted()
		if err != nil {
			return Value{}, err
		}
		if err := d.expect(';'); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case 'a':
		return d.array()
	default:
		return d.object()
	}
}

func (d *decoder) boolean() (Value, error) {
	start := d.pos
	tok, err := d.token(';')
	if err != nil {
		return Value{}, err
	}
	switch string(tok) {
	case "0":
		return Bool(false), nil
	case "1":
		return Bool(true), nil
	}
	d.pos = start
	return Value{}, d.errorf("invalid boolean %q", tok)
}

func (d *decoder) integer() (Value, error) {
	start := d.pos
	tok, err := d.token(';')
	if err != nil {
		return Value{}, err
	}
	i, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		d.pos = start
		return Value{}, d.errorf("invalid integer %q", tok)
	}
	return Int(i), nil
}

func (d *decoder) float() (Value, error) {
	start := d.pos
	tok, err := d.token(';')
	if err != nil {
		return Value{}, err
	}
	switch string(tok) {
	case "INF":
		return Float(math.Inf(1)), nil
	case "-INF":
		return Float(math.Inf(-1)), nil
	case "NAN":
		return Float(math.NaN()), nil
	}
	if !decimalFloat(tok) {
		d.pos = start
		return Value{}, d.errorf("invalid float %q", tok)
	}
	f, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		d.pos = start
		return Value{}, d.errorf("invalid float %q", tok)
	}
	return Float(f), nil
}

// decimalFloat restricts tokens to the digits, sign, point and exponent
// characters PHP writes, keeping strconv's hex and "Inf" forms out.
func decimalFloat(tok []byte) bool {
	if len(tok) == 0 {
		return false
	}
	for _, c := range tok {
		switch {
		case c >= '0' && c <= '9':
		case c == '-', c == '+', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// quoted reads `<len>:"<bytes>"`. The byte count is trusted; the content is
// never scanned for delimiters.
func (d *decoder) quoted() (string, error) {
	n, err := d.length(':')
	if err != nil {
		return "", err
	}
	if err := d.expect('"'); err != nil {
		return "", err
	}
	if n > d.remaining() {
		return "", d.errorf("string length %d exceeds remaining %d bytes", n, d.remaining())
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	if err := d.expect('"'); err != nil {
		return "", err
	}
	return s, nil
}

// count reads `<n>:{` and bounds n by the input still available.
func (d *decoder) count() (int, error) {
	n, err := d.length(':')
	if err != nil {
		return 0, err
	}
	if n > d.remaining()/minPairSize {
		return 0, d.errorf("entry count %d exceeds remaining input", n)
	}
	if err := d.expect('{'); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return d.errorf("nesting deeper than %d", MaxDepth)
	}
	return nil
}

func (d *decoder) key() (Value, error) {
	start := d.pos
	k, err := d.value()
	if err != nil {
		return Value{}, err
	}
	if k.Kind != KindInt && k.Kind != KindString {
		d.pos = start
		return Value{}, d.errorf("invalid key type %s", k.Kind)
	}
	return k, nil
}

func (d *decoder) array() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	n, err := d.count()
	if err != nil {
		return Value{}, err
	}
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		k, err := d.key()
		if err != nil {
			return Value{}, err
		}
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	if err := d.expect('}'); err != nil {
		return Value{}, err
	}
	return Value{Kind: KindArray, Array: pairs}, nil
}

func (d *decoder) object() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	class, err := d.quoted()
	if err != nil {
		return Value{}, err
	}
	if err := d.expect(':'); err != nil {
		return Value{}, err
	}
	n, err := d.count()
	if err != nil {
		return Value{}, err
	}

	obj := &Object{Class: class, Attrs: make([]Attr, 0, n)}
	for i := 0; i < n; i++ {
		k, err := d.key()
		if err != nil {
			return Value{}, err
		}
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		attr := demangle(k.keyString())
		attr.Type = v.Kind
		attr.Val = v
		obj.Attrs = append(obj.Attrs, attr)
	}
	if err := d.expect('}'); err != nil {
		return Value{}, err
	}
	return Value{Kind: KindObject, Object: obj}, nil
}

// demangle splits PHP's "\x00*\x00name" and "\x00Class\x00name" property names.
func demangle(raw string) Attr {
	if len(raw) < 2 || raw[0] != 0 {
		return Attr{Name: raw}
	}
	end := strings.IndexByte(raw[1:], 0)
	if end < 0 {
		return Attr{Name: raw}
	}
	owner := raw[1 : 1+end]
	name := raw[2+end:]
	if owner == "*" {
		return Attr{Name: name, Visibility: Protected}
	}
	return Attr{Name: name, Visibility: Private, Owner: owner}
}
