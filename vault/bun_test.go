package vault_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	console "github.com/goliatone/go-console"
	"github.com/goliatone/go-console/vault"
)

func newBunVault(t *testing.T) (*vault.Bun, *bun.DB) {
	t.Helper()

	// One named in-memory database per test keeps slots from leaking between
	// tests while the pool holds more than one connection.
	db, err := vault.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v, err := vault.NewBun(context.Background(), db)
	require.NoError(t, err)
	return v, db
}

func TestBunVaultRoundTrip(t *testing.T) {
	v, _ := newBunVault(t)
	ctx := context.Background()

	identity := &console.Identity{ID: "u1", Name: "Ann", Email: "a@b.com", Token: "tok-1", Role: console.RoleUser}
	require.NoError(t, v.Store(ctx, console.RoleUser, identity))

	loaded, err := v.Load(ctx, console.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *identity, *loaded)
}

func TestBunVaultStoreUpserts(t *testing.T) {
	v, db := newBunVault(t)
	ctx := context.Background()

	require.NoError(t, v.Store(ctx, console.RoleUser, &console.Identity{ID: "u1", Token: "tok-1"}))
	require.NoError(t, v.Store(ctx, console.RoleUser, &console.Identity{ID: "u1", Token: "tok-2"}))

	loaded, err := v.Load(ctx, console.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-2", loaded.Token)

	count, err := db.NewSelect().Table("console_identities").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one row per role slot")
}

func TestBunVaultMissingSlotLoadsNil(t *testing.T) {
	v, _ := newBunVault(t)

	loaded, err := v.Load(context.Background(), console.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBunVaultClear(t *testing.T) {
	v, _ := newBunVault(t)
	ctx := context.Background()

	require.NoError(t, v.Store(ctx, console.RoleAdmin, &console.Identity{ID: "a1", Role: console.RoleAdmin}))
	require.NoError(t, v.Clear(ctx, console.RoleAdmin))

	loaded, err := v.Load(ctx, console.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing an empty slot is a no-op.
	require.NoError(t, v.Clear(ctx, console.RoleAdmin))
}

func TestBunVaultSlotsAreIndependent(t *testing.T) {
	v, _ := newBunVault(t)
	ctx := context.Background()

	require.NoError(t, v.Store(ctx, console.RoleUser, &console.Identity{ID: "u1", Role: console.RoleUser}))
	require.NoError(t, v.Store(ctx, console.RoleAdmin, &console.Identity{ID: "a1", Role: console.RoleAdmin}))

	require.NoError(t, v.Clear(ctx, console.RoleUser))

	admin, err := v.Load(ctx, console.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "a1", admin.ID)
}

func TestBunVaultRequiresDatabase(t *testing.T) {
	_, err := vault.NewBun(context.Background(), nil)
	assert.Error(t, err)
}
