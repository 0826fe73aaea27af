package curl

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_SimpleGet(t *testing.T) {
	saved, err := Convert("curl https://api.example.com/users")
	require.NoError(t, err)

	assert.Equal(t, "get_users", saved.Name)
	assert.Equal(t, "GET", saved.Request.Method)
	assert.Equal(t, "https://api.example.com/users", saved.Request.URL)
	assert.False(t, saved.Request.FollowRedirects)
}

func TestConvert_PostWithBodyAndHeaders(t *testing.T) {
	cmd := `curl -X POST https://api.example.com/users ` +
		`-H 'Content-Type: application/json' ` +
		`-H 'Authorization: Bearer {{token}}' ` +
		`-d '{"name": "test"}'`

	saved, err := Convert(cmd)
	require.NoError(t, err)

	assert.Equal(t, "POST", saved.Request.Method)
	require.Len(t, saved.Request.Headers, 2)
	assert.Equal(t, "Content-Type", saved.Request.Headers[0].Key)
	assert.Equal(t, "Bearer {{token}}", saved.Request.Headers[1].Value)
	require.NotNil(t, saved.Request.Body)
	assert.Equal(t, `{"name": "test"}`, *saved.Request.Body)
}

func TestConvert_DataImpliesPost(t *testing.T) {
	saved, err := Convert(`curl https://api.example.com/users -d 'x=1'`)
	require.NoError(t, err)
	assert.Equal(t, "POST", saved.Request.Method)
}

func TestConvert_DataKeepsExplicitMethod(t *testing.T) {
	saved, err := Convert(`curl -X PUT https://api.example.com/users/1 -d '{}'`)
	require.NoError(t, err)
	assert.Equal(t, "PUT", saved.Request.Method)
}

func TestConvert_BasicAuthAndRedirects(t *testing.T) {
	saved, err := Convert(`curl -L -u admin:secret https://api.example.com/`)
	require.NoError(t, err)

	assert.True(t, saved.Request.FollowRedirects)
	auth, ok := saved.Request.Header("Authorization")
	require.True(t, ok)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")), auth)
	assert.Equal(t, "get_root", saved.Name)
}

func TestConvert_UnknownFlagsSkipped(t *testing.T) {
	saved, err := Convert(`curl --compressed -s https://api.example.com/health`)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/health", saved.Request.URL)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
	}{
		{"empty", ""},
		{"bare curl", "curl"},
		{"no url", "curl -X POST"},
		{"missing header value", "curl https://x.example -H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestConvert_TemplatedURL(t *testing.T) {
	saved, err := Convert(`curl {{base_url}}/pets`)
	require.NoError(t, err)
	assert.Equal(t, "{{base_url}}/pets", saved.Request.URL)
}
