package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// CreateTestPlayer creates a player with an empty inventory
func CreateTestPlayer(id string) *entities.Player {
	return entities.NewPlayer(id, "Player "+id, "en-US")
}

// CreateTestItem returns a vanilla item by path, failing the test if missing
func CreateTestItem(t *testing.T, items *item.Registry, path string) *item.Item {
	t.Helper()
	it, err := items.Get(identifier.Identifier{Namespace: identifier.DefaultNamespace, Path: path})
	require.NoError(t, err)
	return it
}

// CreateTestWeapon creates a weapon on a fresh item registered under the
// weapon's own identifier, so it never collides with the stock arsenal
func CreateTestWeapon(t *testing.T, items *item.Registry, id string, settings weapon.Settings, opts ...weapon.Option) *weapon.Weapon {
	t.Helper()
	wid := identifier.MustParse(id)
	it, err := items.Register(wid, 1)
	require.NoError(t, err)
	return weapon.New(wid, it, settings, opts...)
}
