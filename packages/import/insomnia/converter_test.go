package insomnia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `
_type: export
__export_format: 4
resources:
  - _id: wrk_1
    _type: workspace
    name: Petstore
  - _id: req_1
    _type: request
    parentId: wrk_1
    name: List Pets
    method: GET
    url: "{{ base_url }}/pets"
    headers:
      - name: Accept
        value: application/json
      - name: X-Debug
        value: "1"
        disabled: true
    parameters:
      - name: limit
        value: "10"
  - _id: fld_1
    _type: request_group
    parentId: wrk_1
    name: Admin
  - _id: req_2
    _type: request
    parentId: fld_1
    name: Create Pet
    method: POST
    url: "{{ base_url }}/pets"
    body:
      mimeType: application/json
      text: '{"name": "rex"}'
`

func TestConverter_Convert(t *testing.T) {
	col, err := NewConverter().Convert([]byte(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, "Petstore", col.Name)
	require.Len(t, col.Requests, 1)
	require.Len(t, col.Folders, 1)

	list := col.Requests[0]
	assert.Equal(t, "List Pets", list.Name)
	assert.Equal(t, "GET", list.Request.Method)
	assert.Equal(t, "{{ base_url }}/pets?limit=10", list.Request.URL)

	// Disabled headers are dropped; enabled ones survive.
	require.Len(t, list.Request.Headers, 1)
	assert.Equal(t, "Accept", list.Request.Headers[0].Key)

	admin := col.Folders[0]
	assert.Equal(t, "Admin", admin.Name)
	require.Len(t, admin.Requests, 1)

	create := admin.Requests[0]
	assert.Equal(t, "POST", create.Request.Method)
	require.NotNil(t, create.Request.Body)
	assert.Equal(t, `{"name": "rex"}`, *create.Request.Body)
	ct, ok := create.Request.Header("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "application/json", ct)
}

func TestConverter_Convert_NameOverride(t *testing.T) {
	col, err := NewConverter(WithCollectionName("renamed")).Convert([]byte(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, "renamed", col.Name)
}

func TestConverter_Convert_Empty(t *testing.T) {
	_, err := NewConverter().Convert([]byte("_type: export\nresources: []\n"))
	require.Error(t, err)
}

func TestConverter_Convert_InvalidYAML(t *testing.T) {
	_, err := NewConverter().Convert([]byte("{not yaml"))
	require.Error(t, err)
}

func TestConverter_FindImportedRequest(t *testing.T) {
	col, err := NewConverter().Convert([]byte(sampleExport))
	require.NoError(t, err)

	found := col.FindRequest("Create Pet")
	require.NotNil(t, found)
	assert.Equal(t, "POST", found.Request.Method)
}
