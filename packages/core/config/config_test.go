package config

import (
	"testing"

	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	c := Default()
	assert.True(t, c.GetFollowRedirects())
	assert.False(t, c.GetVerbose())
	assert.False(t, c.GetNoColor())
	assert.Equal(t, int64(30), c.GetTimeoutSeconds())
}

func TestConfig_RoundTrip(t *testing.T) {
	c := &Config{
		DefaultEnvironment: "dev",
		TimeoutSeconds:     10,
		FollowRedirects:    BoolPtr(false),
		NoColor:            BoolPtr(true),
	}

	v, err := json.Parse(json.Serialize(c.ToValue(), true))
	require.NoError(t, err)
	loaded, err := FromValue(v)
	require.NoError(t, err)

	assert.Equal(t, "dev", loaded.DefaultEnvironment)
	assert.Equal(t, int64(10), loaded.GetTimeoutSeconds())
	assert.False(t, loaded.GetFollowRedirects())
	assert.True(t, loaded.GetNoColor())
	assert.False(t, loaded.GetVerbose())
}

func TestConfig_EmptyFilePersistsNothing(t *testing.T) {
	assert.Equal(t, "{}", json.Serialize(Default().ToValue(), false))
}

func TestConfig_FromValueRejectsWrongType(t *testing.T) {
	v, err := json.Parse(`{"verbose": "yes"}`)
	require.NoError(t, err)

	_, err = FromValue(v)
	require.Error(t, err)
	var mismatch *json.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, json.KindBool, mismatch.Expected)
}
