package phpsess

import (
	"testing"

	"github.com/MrEthical07/phpsess/phpserial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesAccessors(t *testing.T) {
	v, err := phpserial.DecodeString(`O:4:"User":6:{s:2:"id";i:7;s:4:"name";s:3:"bob";s:5:"score";d:9.5;s:6:"active";b:1;s:4:"tags";a:2:{i:0;s:1:"a";i:1;s:1:"b";}s:4:"meta";a:1:{s:2:"tz";s:3:"UTC";}}`)
	require.NoError(t, err)
	flat, err := phpserial.Attributes(v)
	require.NoError(t, err)
	attrs := Attributes(flat)

	id, ok := attrs.Int("id")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	name, ok := attrs.String("name")
	assert.True(t, ok)
	assert.Equal(t, "bob", name)

	score, ok := attrs.Float("score")
	assert.True(t, ok)
	assert.Equal(t, 9.5, score)

	idAsFloat, ok := attrs.Float("id")
	assert.True(t, ok)
	assert.Equal(t, 7.0, idAsFloat)

	active, ok := attrs.Bool("active")
	assert.True(t, ok)
	assert.True(t, active)

	tags, ok := attrs.List("tags")
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, tags)

	meta, ok := attrs.Map("meta")
	assert.True(t, ok)
	tz, _ := meta.String("tz")
	assert.Equal(t, "UTC", tz)

	_, ok = attrs.String("id")
	assert.False(t, ok)
	assert.False(t, attrs.Has("missing"))
}

func TestFalsy(t *testing.T) {
	var nilMap map[string]any
	var nilSlice []string
	var nilPtr *int
	n := 0

	for _, v := range []any{nil, false, "", nilMap, nilSlice, nilPtr} {
		assert.True(t, falsy(v), "%#v", v)
	}
	for _, v := range []any{true, "x", 0, int64(0), &n, map[string]any{}, struct{}{}} {
		assert.False(t, falsy(v), "%#v", v)
	}
}
