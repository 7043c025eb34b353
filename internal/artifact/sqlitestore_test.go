package artifact

import (
	"context"
	"testing"

	"github.com/alexanderramin/horae/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteStore(database)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_CreateThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Put(ctx, "s1", []byte(`{"a":1}`), "")
	require.NoError(t, err)
	assert.Equal(t, "1", token)

	doc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(doc.Data))
	assert.Equal(t, "1", doc.Token)
}

func TestSQLiteStore_TokenAdvancesPerWrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t1, err := store.Put(ctx, "s1", []byte(`1`), "")
	require.NoError(t, err)
	t2, err := store.Put(ctx, "s1", []byte(`2`), t1)
	require.NoError(t, err)
	t3, err := store.Put(ctx, "s1", []byte(`3`), t2)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.NotEqual(t, t2, t3)

	doc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `3`, string(doc.Data))
	assert.Equal(t, t3, doc.Token)
}

func TestSQLiteStore_StaleTokenConflicts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t1, err := store.Put(ctx, "s1", []byte(`1`), "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "s1", []byte(`2`), t1)
	require.NoError(t, err)

	_, err = store.Put(ctx, "s1", []byte(`3`), t1)
	assert.ErrorIs(t, err, ErrConflict)

	doc, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `2`, string(doc.Data), "a conflicting write must not change the stored artifact")
}

func TestSQLiteStore_CreateRequiresEmptyPrecondition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "fresh", []byte(`1`), "7")
	assert.ErrorIs(t, err, ErrConflict, "writing with a token against a missing artifact is a conflict")
}

func TestSQLiteStore_KeysAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "a", []byte(`1`), "")
	require.NoError(t, err)
	tokenB, err := store.Put(ctx, "b", []byte(`2`), "")
	require.NoError(t, err)

	_, err = store.Put(ctx, "b", []byte(`3`), tokenB)
	assert.NoError(t, err)
}
