package middlewares

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramblecoop/bramble/types"
)

func TestParsePublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	encoded := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	parsed, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, 0, key.PublicKey.N.Cmp(parsed.N))

	_, err = ParsePublicKey("not base64!")
	assert.Error(t, err)

	_, err = ParsePublicKey(base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.Error(t, err)
}

func TestTenantScoped(t *testing.T) {
	var auth *Auth
	assert.False(t, auth.TenantScoped())
	assert.False(t, (&Auth{Role: types.RoleOperator}).TenantScoped())
	assert.True(t, (&Auth{Role: types.RoleCoopAdmin, TenantID: "t1"}).TenantScoped())
}
