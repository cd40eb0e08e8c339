package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAuthState(t *testing.T) {
	state := `{
		"cookies": [
			{
				"name": "sid",
				"value": "abc123",
				"domain": ".ubereats.com",
				"path": "/",
				"expires": 1893456000,
				"httpOnly": true,
				"secure": true,
				"sameSite": "Lax"
			},
			{
				"name": "loc",
				"value": "taipei",
				"domain": ".ubereats.com",
				"path": "/",
				"expires": -1,
				"sameSite": "None"
			}
		],
		"origins": []
	}`

	path := filepath.Join(t.TempDir(), "auth_state.json")
	require.NoError(t, os.WriteFile(path, []byte(state), 0644))

	cookies, err := LoadAuthState(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
	assert.Equal(t, ".ubereats.com", *cookies[0].Domain)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)
	require.NotNil(t, cookies[0].Expires)
	require.NotNil(t, cookies[0].HttpOnly)
	assert.True(t, *cookies[0].HttpOnly)

	//session cookie: negative expiry must not be forwarded
	assert.Nil(t, cookies[1].Expires)
	assert.Nil(t, cookies[1].HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeNone, cookies[1].SameSite)
}

func TestLoadAuthState_MissingFile(t *testing.T) {
	_, err := LoadAuthState(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadAuthState_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAuthState(path)
	assert.Error(t, err)
}
