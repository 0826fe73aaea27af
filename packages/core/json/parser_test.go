package json

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	_, err := Parse(input)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestParse_EmptyObject(t *testing.T) {
	v, err := Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, KindObject, v.Kind())
	assert.Equal(t, 0, v.Len())
}

func TestParse_EmptyArray(t *testing.T) {
	v, err := Parse("[]")
	require.NoError(t, err)
	assert.Equal(t, KindArray, v.Kind())
	assert.Equal(t, 0, v.Len())
}

func TestParse_SurroundingWhitespace(t *testing.T) {
	v, err := Parse("  \n\t {\"a\": 1} \r\n ")
	require.NoError(t, err)
	assert.Equal(t, KindObject, v.Kind())
}

func TestParse_Scalars(t *testing.T) {
	v, err := Parse("true")
	require.NoError(t, err)
	b, err := v.AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	v, err = Parse("null")
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = Parse(`"hi"`)
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestParse_NumericShape(t *testing.T) {
	v, err := Parse("10")
	require.NoError(t, err)
	assert.True(t, v.IsInteger())
	i, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(10), i)

	v, err = Parse("10.0")
	require.NoError(t, err)
	assert.False(t, v.IsInteger())
	f, err := v.AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 10.0, f)

	v, err = Parse("1e3")
	require.NoError(t, err)
	assert.False(t, v.IsInteger())
}

func TestParse_EscapedNewline(t *testing.T) {
	v, err := Parse(`"a\nb"`)
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", s)
}

func TestParse_NestedStructure(t *testing.T) {
	input := `{
  "name": "smoke",
  "requests": [
    {"id": "r1", "headers": [["Accept", "application/json"]]},
    {"id": "r2", "headers": []}
  ]
}`
	v, err := Parse(input)
	require.NoError(t, err)

	requests, err := v.Get("requests")
	require.NoError(t, err)
	assert.Equal(t, 2, requests.Len())

	first, err := requests.At(0)
	require.NoError(t, err)
	id, err := first.Get("id")
	require.NoError(t, err)
	s, err := id.AsString()
	require.NoError(t, err)
	assert.Equal(t, "r1", s)
	assert.Equal(t, "requests[0].id", id.Path())
}

func TestParse_KeyOrderPreserved(t *testing.T) {
	v, err := Parse(`{"z": 1, "a": 2, "m": 3}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func TestParse_DuplicateKeysLastWriteWins(t *testing.T) {
	v, err := Parse(`{"a":1,"b":2,"a":3}`)
	require.NoError(t, err)

	require.Equal(t, 2, v.Len())
	a, err := v.Get("a")
	require.NoError(t, err)
	i, err := a.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)

	// Key order reflects the surviving (second) occurrence.
	assert.Equal(t, []string{"b", "a"}, v.Keys())
}

func TestParse_TrailingCommaInObject(t *testing.T) {
	err := parseErr(t, `{"a":1,}`)
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 7, err.Column) // the comma, not the brace
}

func TestParse_TrailingCommaInArray(t *testing.T) {
	err := parseErr(t, `[1,2,]`)
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, 5, err.Column)
}

func TestParse_TrailingContent(t *testing.T) {
	err := parseErr(t, `{} {}`)
	assert.Equal(t, TrailingContent, err.Kind)

	err = parseErr(t, `1 2`)
	assert.Equal(t, TrailingContent, err.Kind)
}

func TestParse_TrailingContentUntokenizable(t *testing.T) {
	// The garbage after the value is not even lexable, but the document
	// still fails as trailing content, not as a bad value.
	err := parseErr(t, `1abc`)
	assert.Equal(t, TrailingContent, err.Kind)

	err = parseErr(t, `{}@`)
	assert.Equal(t, TrailingContent, err.Kind)

	// Garbage inside a value is still the value's problem.
	err = parseErr(t, `[1abc]`)
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestParse_UnexpectedEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"open object", `{"a":`},
		{"open array", `[1,`},
		{"missing colon", `{"a"`},
		{"missing value", `{"a":1,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.input)
			assert.Equal(t, UnexpectedEnd, err.Kind)
		})
	}
}

func TestParse_UnexpectedToken(t *testing.T) {
	err := parseErr(t, `{"a" 1}`)
	assert.Equal(t, UnexpectedToken, err.Kind)

	err = parseErr(t, `{1: 2}`)
	assert.Equal(t, UnexpectedToken, err.Kind)

	err = parseErr(t, `[1 2]`)
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestParse_DepthBound(t *testing.T) {
	deep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	err := parseErr(t, deep)
	assert.Equal(t, DepthExceeded, err.Kind)

	ok := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	_, perr := Parse(ok)
	assert.NoError(t, perr)
}

func TestParse_DeepObjects(t *testing.T) {
	deep := strings.Repeat(`{"a":`, MaxDepth+1) + "1" + strings.Repeat("}", MaxDepth+1)
	err := parseErr(t, deep)
	assert.Equal(t, DepthExceeded, err.Kind)
}
