// Package weapon describes weapon archetypes: which item carries them, their
// cooldowns and their ammo rules, plus the hooks concrete weapons override.
package weapon

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
)

// TranslationPrefix is the first segment of a weapon's name key
const TranslationPrefix = "weapon"

// Weapon is an immutable weapon archetype. Cooldowns are in server ticks.
type Weapon struct {
	id       identifier.Identifier
	item     *item.Item
	behavior Behavior

	primaryCooldown   int
	secondaryCooldown int
	reloadCooldown    int
	clipSize          int
	ammoSize          int
}

// Option customizes a weapon at construction
type Option func(*Weapon)

// WithBehavior replaces the default no-op hooks
func WithBehavior(b Behavior) Option {
	return func(w *Weapon) {
		if b != nil {
			w.behavior = b
		}
	}
}

// New creates a weapon carried by it, copying every value out of settings.
// Values are taken as given; nothing is validated.
func New(id identifier.Identifier, it *item.Item, settings Settings, opts ...Option) *Weapon {
	w := &Weapon{
		id:                id,
		item:              it,
		behavior:          BaseBehavior{},
		primaryCooldown:   settings.primaryCooldown,
		secondaryCooldown: settings.secondaryCooldown,
		reloadCooldown:    settings.reloadCooldown,
		clipSize:          settings.clipSize,
		ammoSize:          settings.ammoSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the weapon's identifier
func (w *Weapon) ID() identifier.Identifier { return w.id }

// Item returns the registry item that carries the weapon
func (w *Weapon) Item() *item.Item { return w.item }

// PrimaryCooldown returns the ticks between primary uses
func (w *Weapon) PrimaryCooldown() int { return w.primaryCooldown }

// SecondaryCooldown returns the ticks between secondary uses
func (w *Weapon) SecondaryCooldown() int { return w.secondaryCooldown }

// ReloadCooldown returns the ticks a reload takes
func (w *Weapon) ReloadCooldown() int { return w.reloadCooldown }

// ClipSize returns the rounds loaded at once
func (w *Weapon) ClipSize() int { return w.clipSize }

// AmmoSize returns the size of the ammo pool
func (w *Weapon) AmmoSize() int { return w.ammoSize }

// Behavior returns the hooks the weapon delegates to
func (w *Weapon) Behavior() Behavior { return w.behavior }

// Settings returns settings that would rebuild an equivalent weapon
func (w *Weapon) Settings() Settings {
	return NewSettings(w.primaryCooldown).
		SecondaryCooldown(w.secondaryCooldown).
		ReloadCooldown(w.reloadCooldown).
		ClipSize(w.clipSize).
		AmmoSize(w.ammoSize)
}

// HasSecondaryAction reports whether the weapon has a secondary action
func (w *Weapon) HasSecondaryAction() bool {
	return w.secondaryCooldown >= 0
}

// DoesRequireAmmo reports whether firing consumes ammo
func (w *Weapon) DoesRequireAmmo() bool {
	return w.ammoSize > 0
}

// HasReload reports whether the weapon can be reloaded
func (w *Weapon) HasReload() bool {
	return w.reloadCooldown >= 0
}

// HasClip reports whether rounds are fed from a clip rather than the pool
func (w *Weapon) HasClip() bool {
	return w.clipSize > 0
}

// MatchesStack reports whether stack is a non-empty stack of this weapon's item
func (w *Weapon) MatchesStack(stack item.Stack) bool {
	return !stack.IsEmpty() && w.item == stack.Item()
}

// Tick is called once per server tick for a held stack
func (w *Weapon) Tick(stack item.Stack) {
	w.behavior.Tick(w, stack)
}

// OnPrimary handles the primary use interaction
func (w *Weapon) OnPrimary(world *entities.World, player *entities.Player, hand entities.Hand) entities.ActionResult {
	return w.behavior.OnPrimary(w, world, player, hand)
}

// OnSecondary handles the secondary use interaction
func (w *Weapon) OnSecondary(world *entities.World, player *entities.Player, stack item.Stack) entities.ActionResult {
	return w.behavior.OnSecondary(w, world, player, stack)
}

// StackBuilder returns a fresh builder for this weapon's stack
func (w *Weapon) StackBuilder() *item.StackBuilder {
	return w.behavior.StackBuilder(w)
}

// NameKey returns the translation key of the weapon's display name
func (w *Weapon) NameKey() string {
	return w.id.TranslationKey(TranslationPrefix)
}

// Build creates a new stack of the weapon for player, named after the
// weapon's identifier.
func (w *Weapon) Build(player *entities.Player) item.Stack {
	return w.StackBuilder().
		SetName(text.Translatable(w.NameKey()).Styled(func(s text.Style) text.Style {
			return s.WithItalic(false)
		})).
		Build()
}

func (w *Weapon) String() string {
	return w.id.String()
}
