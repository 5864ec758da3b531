package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialSealOpenRoundTrip(t *testing.T) {
	svc := NewCredentialService(nil, "operator-secret").(*credentialService)

	sealed, err := svc.seal("AIzaSy-example-key")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "AIzaSy")

	plain, err := svc.open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSy-example-key", plain)

	// Nonces are random, so two seals of the same value differ.
	sealed2, err := svc.seal("AIzaSy-example-key")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, sealed2)
}

func TestCredentialOpenRejectsWrongKeyAndGarbage(t *testing.T) {
	a := NewCredentialService(nil, "secret-a").(*credentialService)
	b := NewCredentialService(nil, "secret-b").(*credentialService)

	sealed, err := a.seal("value")
	require.NoError(t, err)

	_, err = b.open(sealed)
	assert.Error(t, err)

	_, err = a.open([]byte("short"))
	assert.Error(t, err)
}
