package persist

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/existflow/irongantt/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotServer(t *testing.T, store server.SnapshotStore) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.New(store, "token").Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestRemoteBackend(t *testing.T) {
	ts := newSnapshotServer(t, server.NewMemoryStore())
	b := NewRemoteBackend(ts.URL+"/", "token", "")
	defer b.Close()

	exerciseBackend(t, b)
}

func TestRemoteBackend_Encrypted(t *testing.T) {
	store := server.NewMemoryStore()
	ts := newSnapshotServer(t, store)
	ctx := context.Background()

	b := NewRemoteBackend(ts.URL, "token", "hunter2")
	exerciseBackend(t, b)

	rev, err := store.Latest(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, IsSealed(rev.Data))
	assert.NotContains(t, string(rev.Data), `"v"`)

	_, err = NewRemoteBackend(ts.URL, "token", "").Get(ctx, "tasks")
	assert.ErrorContains(t, err, "encrypted")
}

func TestRemoteBackend_Unauthorized(t *testing.T) {
	ts := newSnapshotServer(t, server.NewMemoryStore())
	b := NewRemoteBackend(ts.URL, "nope", "")

	err := b.Put(context.Background(), "tasks", []byte("x"))
	assert.ErrorContains(t, err, "401")
	_, err = b.Get(context.Background(), "tasks")
	assert.ErrorContains(t, err, "401")
}
