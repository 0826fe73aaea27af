package history

import (
	"strings"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(t *testing.T) *Entry {
	t.Helper()
	req := request.New("POST", "http://localhost:3000/users").
		AddHeader("Content-Type", "application/json").
		SetBody(`{"name": "ada"}`)
	resp := &request.Response{
		Status:     201,
		StatusText: "201 Created",
		Headers:    []request.Header{{Key: "Content-Type", Value: "application/json"}},
		Body:       []byte(`{"id": 7}`),
		Duration:   42 * time.Millisecond,
	}
	return NewEntry(req, resp)
}

func TestEntry_RoundTrip(t *testing.T) {
	entry := sampleEntry(t)
	entries := []*Entry{entry}

	text := json.Serialize(ToValue(entries), true)
	v, err := json.Parse(text)
	require.NoError(t, err)
	loaded, err := FromValue(v)
	require.NoError(t, err)

	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Timestamp, got.Timestamp)
	assert.Equal(t, int64(42), got.DurationMs)
	assert.Equal(t, "POST", got.Request.Method)
	require.NotNil(t, got.Request.Body)
	assert.Equal(t, `{"name": "ada"}`, *got.Request.Body)
	assert.Equal(t, 201, got.Response.Status)
	assert.Equal(t, "201 Created", got.Response.StatusText)
	assert.Equal(t, `{"id": 7}`, got.Response.BodyPreview)
}

func TestEntry_PreviewTruncated(t *testing.T) {
	req := request.New("GET", "http://x/large")
	resp := &request.Response{
		Status:     200,
		StatusText: "200 OK",
		Body:       []byte(strings.Repeat("x", 600)),
	}
	entry := NewEntry(req, resp)
	assert.Equal(t, strings.Repeat("x", 500)+"...", entry.Response.BodyPreview)
}

func TestEntry_ToRequest(t *testing.T) {
	entry := sampleEntry(t)
	req := entry.ToRequest()

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "http://localhost:3000/users", req.URL)
	require.NotNil(t, req.Body)
	assert.Equal(t, `{"name": "ada"}`, *req.Body)
}

func TestPrepend_CapsAtMax(t *testing.T) {
	var entries []*Entry
	for i := 0; i < MaxEntries+10; i++ {
		entries = Prepend(entries, sampleEntry(t))
	}
	assert.Len(t, entries, MaxEntries)
}

func TestPrepend_NewestFirst(t *testing.T) {
	first := sampleEntry(t)
	second := sampleEntry(t)

	entries := Prepend(nil, first)
	entries = Prepend(entries, second)

	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestFind(t *testing.T) {
	a := sampleEntry(t)
	b := sampleEntry(t)
	entries := []*Entry{a, b}

	assert.Equal(t, a, Find(entries, a.ID))
	assert.Equal(t, a, Find(entries, "1"))
	assert.Equal(t, b, Find(entries, "2"))
	assert.Nil(t, Find(entries, "3"))
	assert.Nil(t, Find(entries, "nope"))
	assert.Nil(t, Find(entries, "0"))
}

func TestFromValue_RejectsWrongShape(t *testing.T) {
	v, err := json.Parse(`[{"id": 1}]`)
	require.NoError(t, err)

	_, err = FromValue(v)
	require.Error(t, err)
	var mismatch *json.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "[0].id", mismatch.Path)
}
