package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_TypeMismatchCarriesPath(t *testing.T) {
	v, err := Parse(`{"requests": [{"headers": "oops"}]}`)
	require.NoError(t, err)

	requests, err := v.Get("requests")
	require.NoError(t, err)
	first, err := requests.At(0)
	require.NoError(t, err)
	headers, err := first.Get("headers")
	require.NoError(t, err)

	_, err = headers.AsArray()
	require.Error(t, err)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindArray, mismatch.Expected)
	assert.Equal(t, KindString, mismatch.Actual)
	assert.Equal(t, "requests[0].headers", mismatch.Path)
	assert.Equal(t, "expected array at requests[0].headers, found string", err.Error())
}

func TestValue_AccessorsRejectWrongKind(t *testing.T) {
	v := NewString("hello")

	_, err := v.AsBool()
	assert.Error(t, err)
	_, err = v.AsNumber()
	assert.Error(t, err)
	_, err = v.AsObject()
	assert.Error(t, err)
	_, err = v.AsArray()
	assert.Error(t, err)
	_, err = v.Get("x")
	assert.Error(t, err)
	_, err = v.At(0)
	assert.Error(t, err)
	assert.False(t, v.IsNull())

	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestValue_GetMissingKey(t *testing.T) {
	v, err := Parse(`{"a": 1}`)
	require.NoError(t, err)

	_, err = v.Get("b")
	require.Error(t, err)
	var missing *NotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "b", missing.Key)

	_, ok := v.Lookup("b")
	assert.False(t, ok)
	got, ok := v.Lookup("a")
	assert.True(t, ok)
	assert.True(t, got.IsInteger())
}

func TestValue_AtOutOfRange(t *testing.T) {
	v, err := Parse(`[1, 2]`)
	require.NoError(t, err)

	_, err = v.At(2)
	require.Error(t, err)
	var missing *NotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 2, missing.Index)

	_, err = v.At(-1)
	assert.Error(t, err)
}

func TestValue_BuildProgrammatically(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.Set("name", NewString("dev")))
	require.NoError(t, obj.Set("retries", NewInt(3)))

	headers := NewArray(NewString("Accept"), NewString("application/json"))
	require.NoError(t, obj.Set("headers", headers))

	assert.Equal(t, []string{"name", "retries", "headers"}, obj.Keys())
	assert.Equal(t, `{"name":"dev","retries":3,"headers":["Accept","application/json"]}`,
		Serialize(obj, false))
}

func TestValue_SetLastWriteWins(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.Set("a", NewInt(1)))
	require.NoError(t, obj.Set("b", NewInt(2)))
	require.NoError(t, obj.Set("a", NewInt(3)))

	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	a, err := obj.Get("a")
	require.NoError(t, err)
	i, err := a.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestValue_Delete(t *testing.T) {
	obj := NewObject()
	require.NoError(t, obj.Set("a", NewInt(1)))
	require.NoError(t, obj.Set("b", NewInt(2)))

	assert.True(t, obj.Delete("a"))
	assert.False(t, obj.Delete("a"))
	assert.Equal(t, []string{"b"}, obj.Keys())
}

func TestValue_Equal(t *testing.T) {
	a, err := Parse(`{"x": [1, 2.5, "s", null, true]}`)
	require.NoError(t, err)
	b, err := Parse(`{"x": [1, 2.5, "s", null, true]}`)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	// Key order matters for structural equality.
	c, err := Parse(`{"a":1,"b":2}`)
	require.NoError(t, err)
	d, err := Parse(`{"b":2,"a":1}`)
	require.NoError(t, err)
	assert.False(t, c.Equal(d))

	// Integral and fractional shapes of the same magnitude differ.
	one, err := Parse(`1`)
	require.NoError(t, err)
	onePointZero, err := Parse(`1.0`)
	require.NoError(t, err)
	assert.False(t, one.Equal(onePointZero))
}

func TestValue_AppendSetsIndexPath(t *testing.T) {
	arr := NewArray()
	require.NoError(t, arr.Append(NewString("a")))
	require.NoError(t, arr.Append(NewString("b")))

	second, err := arr.At(1)
	require.NoError(t, err)
	assert.Equal(t, "[1]", second.Path())

	err = arr.Set("k", NewNull())
	assert.Error(t, err)
	err = NewObject().Append(NewNull())
	assert.Error(t, err)
}
