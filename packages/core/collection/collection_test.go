package collection

import (
	"testing"

	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() *Collection {
	c := New("api").WithDescription("smoke requests")

	health := request.New("GET", "{{base_url}}/health").
		AddHeader("Accept", "application/json")
	c.AddRequest(NewSavedRequest("health", health))

	create := request.New("POST", "{{base_url}}/users").
		AddHeader("Content-Type", "application/json").
		SetBody(`{"name": "ada"}`).
		SetTimeout(10)
	c.AddRequest(NewSavedRequest("create user", create))

	admin := &Folder{Name: "admin"}
	admin.Requests = append(admin.Requests,
		NewSavedRequest("purge", request.New("DELETE", "{{base_url}}/cache")))
	c.AddFolder(admin)

	return c
}

func TestCollection_RoundTrip(t *testing.T) {
	c := sampleCollection()

	text := json.Serialize(c.ToValue(), true)
	v, err := json.Parse(text)
	require.NoError(t, err)

	loaded, err := FromValue(v)
	require.NoError(t, err)

	assert.Equal(t, "api", loaded.Name)
	require.NotNil(t, loaded.Description)
	assert.Equal(t, "smoke requests", *loaded.Description)
	require.Len(t, loaded.Requests, 2)

	health := loaded.Requests[0]
	assert.Equal(t, c.Requests[0].ID, health.ID)
	assert.Equal(t, "GET", health.Request.Method)
	assert.Equal(t, "{{base_url}}/health", health.Request.URL)
	require.Len(t, health.Request.Headers, 1)
	assert.Equal(t, request.Header{Key: "Accept", Value: "application/json"}, health.Request.Headers[0])
	assert.Nil(t, health.Request.Body)
	assert.Nil(t, health.Request.TimeoutSeconds)

	create := loaded.Requests[1]
	require.NotNil(t, create.Request.Body)
	assert.Equal(t, `{"name": "ada"}`, *create.Request.Body)
	require.NotNil(t, create.Request.TimeoutSeconds)
	assert.Equal(t, int64(10), *create.Request.TimeoutSeconds)

	require.Len(t, loaded.Folders, 1)
	assert.Equal(t, "admin", loaded.Folders[0].Name)
	require.Len(t, loaded.Folders[0].Requests, 1)
}

func TestCollection_RoundTripStable(t *testing.T) {
	c := sampleCollection()

	first := json.Serialize(c.ToValue(), true)
	v, err := json.Parse(first)
	require.NoError(t, err)
	loaded, err := FromValue(v)
	require.NoError(t, err)
	second := json.Serialize(loaded.ToValue(), true)

	// A load/save cycle with no edits must not rewrite the file.
	assert.Equal(t, first, second)
}

func TestCollection_FindRequest(t *testing.T) {
	c := sampleCollection()

	byName := c.FindRequest("health")
	require.NotNil(t, byName)
	assert.Equal(t, "health", byName.Name)

	byID := c.FindRequest(c.Requests[1].ID)
	require.NotNil(t, byID)
	assert.Equal(t, "create user", byID.Name)

	inFolder := c.FindRequest("purge")
	require.NotNil(t, inFolder)
	assert.Equal(t, "DELETE", inFolder.Request.Method)

	assert.Nil(t, c.FindRequest("nope"))
}

func TestCollection_FromValueRejectsWrongShape(t *testing.T) {
	v, err := json.Parse(`{"name": "api", "requests": [{"id": "r1", "name": "x", "method": "GET", "url": "/", "headers": "oops"}]}`)
	require.NoError(t, err)

	_, err = FromValue(v)
	require.Error(t, err)

	var mismatch *json.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, json.KindArray, mismatch.Expected)
	assert.Equal(t, "requests[0].headers", mismatch.Path)
}

func TestCollection_FromValueMissingField(t *testing.T) {
	v, err := json.Parse(`{"name": "api"}`)
	require.NoError(t, err)

	_, err = FromValue(v)
	require.Error(t, err)
	var missing *json.NotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "requests", missing.Key)
}
