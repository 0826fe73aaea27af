package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_CompactScalars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", "null"},
		{"true", "true"},
		{"false", "false"},
		{"10", "10"},
		{"-3", "-3"},
		{"10.0", "10.0"},
		{"10.5", "10.5"},
		{"1e3", "1000.0"},
		{`"hi"`, `"hi"`},
		{"{}", "{}"},
		{"[]", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Serialize(v, false))
		})
	}
}

func TestSerialize_EscapesReproduced(t *testing.T) {
	v, err := Parse(`"a\nb"`)
	require.NoError(t, err)
	assert.Equal(t, `"a\nb"`, Serialize(v, false))

	v, err = Parse(`"quote \" slash \\ tab \t"`)
	require.NoError(t, err)
	assert.Equal(t, `"quote \" slash \\ tab \t"`, Serialize(v, false))
}

func TestSerialize_ControlCharactersUseShortestEscape(t *testing.T) {
	v := NewString("a\x01b\bc")
	assert.Equal(t, `"a\u0001b\bc"`, Serialize(v, false))
}

func TestSerialize_UnicodeLiteral(t *testing.T) {
	v := NewString("héllo 😀")
	assert.Equal(t, `"héllo 😀"`, Serialize(v, false))
}

func TestSerialize_CompactNoWhitespace(t *testing.T) {
	v, err := Parse(`{ "a" : [ 1 , 2 ] , "b" : { "c" : null } }`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"b":{"c":null}}`, Serialize(v, false))
}

func TestSerialize_Pretty(t *testing.T) {
	v, err := Parse(`{"name":"dev","vars":{"a":"1"},"list":[1,2]}`)
	require.NoError(t, err)

	want := `{
  "name": "dev",
  "vars": {
    "a": "1"
  },
  "list": [
    1,
    2
  ]
}`
	assert.Equal(t, want, Serialize(v, true))
}

func TestSerialize_PrettyEmptyContainers(t *testing.T) {
	v, err := Parse(`{"a":{},"b":[]}`)
	require.NoError(t, err)

	want := `{
  "a": {},
  "b": []
}`
	assert.Equal(t, want, Serialize(v, true))
}

func TestSerialize_KeyOrderStable(t *testing.T) {
	v, err := Parse(`{"z":1,"a":2,"m":3}`)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, Serialize(v, false))
}

func TestSerialize_RoundTrip(t *testing.T) {
	docs := []string{
		`{"name":"api","description":null,"requests":[{"id":"r1","name":"health","method":"GET","url":"{{base_url}}/health","headers":[["Accept","application/json"]],"body":null,"timeout_seconds":30}]}`,
		`{"active":"dev","environments":[{"name":"dev","variables":{"base_url":"http://localhost:3000","token":"abc"}}]}`,
		`[{"id":"h1","timestamp":1735689600,"duration_ms":42,"request":{"method":"GET","url":"/x","headers":[],"body":null},"response":{"status":200,"status_text":"OK","headers":[],"body_preview":"ok"}}]`,
		`[1,2.5,"three",null,true,false,[],{},{"nested":[{"deep":1e2}]}]`,
		`"\u0001\n\t😀"`,
		`-0.25`,
	}

	for _, doc := range docs {
		v, err := Parse(doc)
		require.NoError(t, err)

		again, err := Parse(Serialize(v, false))
		require.NoError(t, err)
		assert.True(t, v.Equal(again), "round trip changed structure for %s", doc)

		// Pretty output parses back to the same structure too.
		again, err = Parse(Serialize(v, true))
		require.NoError(t, err)
		assert.True(t, v.Equal(again))
	}
}
