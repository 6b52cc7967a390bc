package persistence_test

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, persistence.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleSession() *domain.Session {
	s := domain.NewSession("enc-session")
	s.Stage = domain.StageAwaitingBlogChoice
	s.Context.Description = "my-secret-sauce"
	return s
}

func TestEncryptedCodec_Roundtrip(t *testing.T) {
	codec := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: generateKey(t)})

	data, err := codec.Marshal(sampleSession())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "my-secret-sauce")
	assert.Contains(t, string(data), "__encrypted__")

	loaded, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "my-secret-sauce", loaded.Context.Description)
	assert.Equal(t, domain.StageAwaitingBlogChoice, loaded.Stage)
}

func TestEncryptedCodec_KeyRotation(t *testing.T) {
	oldKey, newKey := generateKey(t), generateKey(t)

	data, err := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: oldKey}).Marshal(sampleSession())
	require.NoError(t, err)

	rotated := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := rotated.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "my-secret-sauce", loaded.Context.Description)

	withoutFallback := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: newKey})
	_, err = withoutFallback.Unmarshal(data)
	assert.ErrorIs(t, err, persistence.ErrDecrypt)
}

func TestEncryptedCodec_RejectsPlainData(t *testing.T) {
	plain, err := persistence.JSONCodec{}.Marshal(sampleSession())
	require.NoError(t, err)

	codec := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err = codec.Unmarshal(plain)
	assert.ErrorIs(t, err, persistence.ErrNotEncrypted)
}

func TestNewEncryptedCodec_PanicsOnShortKey(t *testing.T) {
	assert.Panics(t, func() {
		persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestParseKeys(t *testing.T) {
	a, b := generateKey(t), generateKey(t)
	raw := base64.StdEncoding.EncodeToString(a) + ", ," + base64.RawURLEncoding.EncodeToString(b)

	keys, err := persistence.ParseKeys(raw)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{a, b}, keys)

	_, err = persistence.ParseKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)

	_, err = persistence.ParseKey("%%%")
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	data, err := persistence.JSONCodec{Indent: true}.Marshal(sampleSession())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"stage\": \"awaiting_blog_choice\"")

	_, err = persistence.JSONCodec{}.Unmarshal([]byte("{"))
	assert.Error(t, err)
}
