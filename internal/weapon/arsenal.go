package weapon

import (
	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
)

// Namespace of the stock weapons
const Namespace = "quakecraft"

var (
	ShooterID         = identifier.Identifier{Namespace: Namespace, Path: "shooter"}
	AdvancedShooterID = identifier.Identifier{Namespace: Namespace, Path: "advanced_shooter"}
	RocketLauncherID  = identifier.Identifier{Namespace: Namespace, Path: "rocket_launcher"}
	AssaultRifleID    = identifier.Identifier{Namespace: Namespace, Path: "assault_rifle"}
)

type stockWeapon struct {
	id       identifier.Identifier
	item     string
	settings Settings
	glint    bool
	model    int
}

func stockWeapons() []stockWeapon {
	return []stockWeapon{
		{id: ShooterID, item: "wooden_hoe", settings: NewSettings(20)},
		{id: AdvancedShooterID, item: "diamond_hoe", settings: NewSettings(10).SecondaryCooldown(100), glint: true},
		{id: RocketLauncherID, item: "golden_hoe", settings: NewSettings(30).ReloadCooldown(40).ClipSize(1).AmmoSize(10), model: 1},
		{id: AssaultRifleID, item: "iron_hoe", settings: NewSettings(4).ReloadCooldown(50).ClipSize(30).AmmoSize(120), model: 2},
	}
}

// DefaultArsenal registers the stock weapons. primary and secondary fire the
// projectiles; either may be nil, in which case the hook passes.
func DefaultArsenal(items *item.Registry, primary, secondary Launcher) (*Registry, error) {
	registry := NewRegistry()

	for _, stock := range stockWeapons() {
		it, err := items.Get(identifier.Identifier{Namespace: identifier.DefaultNamespace, Path: stock.item})
		if err != nil {
			return nil, qcerr.Wrapf(err, "failed to resolve item for %s", stock.id)
		}

		behavior := ShooterBehavior{
			Primary:   primary,
			Glint:     stock.glint,
			ModelData: stock.model,
		}
		if stock.settings.secondaryCooldown >= 0 {
			behavior.Secondary = secondary
		}

		if err := registry.Register(New(stock.id, it, stock.settings, WithBehavior(behavior))); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
