package weapons

import (
	"time"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// Definition is the stored form of a weapon's tuning
type Definition struct {
	ID                identifier.Identifier `json:"id"`
	Item              identifier.Identifier `json:"item"`
	PrimaryCooldown   int                   `json:"primary_cooldown"`
	SecondaryCooldown int                   `json:"secondary_cooldown"`
	ReloadCooldown    int                   `json:"reload_cooldown"`
	ClipSize          int                   `json:"clip_size"`
	AmmoSize          int                   `json:"ammo_size"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// FromWeapon captures the tuning of w
func FromWeapon(w *weapon.Weapon) *Definition {
	def := &Definition{
		ID:                w.ID(),
		PrimaryCooldown:   w.PrimaryCooldown(),
		SecondaryCooldown: w.SecondaryCooldown(),
		ReloadCooldown:    w.ReloadCooldown(),
		ClipSize:          w.ClipSize(),
		AmmoSize:          w.AmmoSize(),
	}
	if it := w.Item(); it != nil {
		def.Item = it.ID()
	}
	return def
}

// Settings returns the weapon settings the definition describes
func (d *Definition) Settings() weapon.Settings {
	return weapon.NewSettings(d.PrimaryCooldown).
		SecondaryCooldown(d.SecondaryCooldown).
		ReloadCooldown(d.ReloadCooldown).
		ClipSize(d.ClipSize).
		AmmoSize(d.AmmoSize)
}

// Build resolves the definition's item and creates the weapon
func (d *Definition) Build(items *item.Registry, opts ...weapon.Option) (*weapon.Weapon, error) {
	it, err := items.Get(d.Item)
	if err != nil {
		return nil, qcerr.Wrapf(err, "failed to build weapon %s", d.ID)
	}
	return weapon.New(d.ID, it, d.Settings(), opts...), nil
}

func validate(def *Definition) error {
	if def == nil {
		return qcerr.InvalidArgument("definition cannot be nil")
	}
	if def.ID.IsZero() {
		return qcerr.InvalidArgument("definition ID is required")
	}
	if def.Item.IsZero() {
		return qcerr.InvalidArgumentf("definition %s has no item", def.ID).
			WithMeta("weapon_id", def.ID.String())
	}
	return nil
}
