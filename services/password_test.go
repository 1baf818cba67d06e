package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64Codec(t *testing.T) {
	codec := Base64Codec{}

	t.Run("Digest matches the original storefront encoding", func(t *testing.T) {
		digest, err := codec.Encode("segredo123")
		require.NoError(t, err)

		// btoa("segredo123" + "junglepets_salt"): plaintext first, salt appended
		want := base64.StdEncoding.EncodeToString([]byte("segredo123" + "junglepets_salt"))
		assert.Equal(t, want, digest)
		assert.Equal(t, "c2VncmVkbzEyM2p1bmdsZXBldHNfc2FsdA==", digest)
	})

	t.Run("Matches is exact string comparison of digests", func(t *testing.T) {
		digest, err := codec.Encode("segredo123")
		require.NoError(t, err)

		assert.True(t, codec.Matches("segredo123", digest))
		assert.False(t, codec.Matches("Segredo123", digest))
		assert.False(t, codec.Matches("segredo123", digest+"x"))
	})
}

func TestBcryptCodec(t *testing.T) {
	codec := BcryptCodec{}

	digest, err := codec.Encode("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", digest)

	assert.True(t, codec.Matches("segredo123", digest))
	assert.False(t, codec.Matches("errada", digest))
}

func TestCodecsAreNotInterchangeable(t *testing.T) {
	b64, err := Base64Codec{}.Encode("segredo123")
	require.NoError(t, err)

	assert.False(t, BcryptCodec{}.Matches("segredo123", b64))
}
