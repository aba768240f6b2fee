package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestStore_SetGet(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "luxus-cart", []byte(`{"lines":[]}`)))
	assert.True(t, mr.Exists("luxus-cart"))

	got, err := s.Get(ctx, "luxus-cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"lines":[]}`), got)
}

func TestStore_Get_NotFound(t *testing.T) {
	s, _ := setupTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_Delete_Idempotent(t *testing.T) {
	s, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestStore_Keys_PrefixFilter(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "luxus_cache_products_1", []byte("a")))
	require.NoError(t, s.Set(ctx, "luxus_cache_categories", []byte("b")))
	require.NoError(t, s.Set(ctx, "luxus-favorites", []byte("c")))

	keys, err := s.Keys(ctx, "luxus_cache_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"luxus_cache_products_1", "luxus_cache_categories"}, keys)
}

func TestStore_Keys_Empty(t *testing.T) {
	s, _ := setupTestStore(t)

	keys, err := s.Keys(context.Background(), "luxus_cache_")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_Get_AfterServerGone(t *testing.T) {
	s, mr := setupTestStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
