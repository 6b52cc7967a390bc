package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/scribe/pkg/adapters/file"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/persistence"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_EncryptedContract(t *testing.T) {
	key := make([]byte, persistence.KeySize)
	codec := persistence.NewEncryptedCodec(nil, persistence.EncryptionConfig{ActiveKey: key})
	ports.RunSessionStoreContract(t, file.New(t.TempDir(), file.WithCodec(codec)))
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := file.New(dir)
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "missing directory lists as empty")

	s := domain.NewSession("alice")
	s.Stage = domain.StageAwaitingContext
	require.NoError(t, store.Save(ctx, "alice", s))
	require.NoError(t, store.Save(ctx, "bob", domain.NewSession("bob")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	data, err := os.ReadFile(filepath.Join(dir, "alice.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stage": "awaiting_context"`)

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, list)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../escape", `a\b`} {
		err := store.Save(ctx, id, domain.NewSession(id))
		assert.ErrorIs(t, err, file.ErrInvalidSessionID, id)
	}
}

func TestFileStore_ListsDotPrefixedIDs(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, ".alice", domain.NewSession(".alice")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bob-123.tmp"), []byte("{}"), 0o644))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{".alice"}, list)

	require.NoError(t, store.Delete(ctx, ".alice"))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
