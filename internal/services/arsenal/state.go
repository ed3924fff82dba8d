package arsenal

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// Custom data keys stamped on every stack the service hands out
const (
	InstanceKey = "arsenal:instance"
	WeaponKey   = "arsenal:weapon"
)

// State is the per-instance runtime state of a given weapon stack.
// Counters are in ticks and reach zero when the action is ready.
type State struct {
	InstanceID string
	WeaponID   identifier.Identifier
	PlayerID   string
	Stack      item.Stack

	PrimaryReadyIn   int
	SecondaryReadyIn int
	ReloadingIn      int // 0 when not reloading

	Clip    int // Rounds loaded; unused when the weapon has no clip
	Reserve int // Rounds left in the pool
}

// Reloading reports whether a reload is in progress
func (s State) Reloading() bool {
	return s.ReloadingIn > 0
}

type instance struct {
	state  State
	weapon *weapon.Weapon
	player *entities.Player
}

func newInstance(id string, w *weapon.Weapon, player *entities.Player, stack item.Stack) *instance {
	inst := &instance{
		state: State{
			InstanceID: id,
			WeaponID:   w.ID(),
			PlayerID:   player.ID,
			Stack:      stack,
		},
		weapon: w,
		player: player,
	}

	if w.DoesRequireAmmo() {
		inst.state.Reserve = w.AmmoSize()
		if w.HasClip() {
			inst.state.Clip = min(w.ClipSize(), w.AmmoSize())
			inst.state.Reserve -= inst.state.Clip
		}
	}
	return inst
}

// hasRound reports whether one round can be fired right now
func (i *instance) hasRound() bool {
	if !i.weapon.DoesRequireAmmo() {
		return true
	}
	if i.weapon.HasClip() {
		return i.state.Clip > 0
	}
	return i.state.Reserve > 0
}

func (i *instance) consumeRound() {
	if !i.weapon.DoesRequireAmmo() {
		return
	}
	if i.weapon.HasClip() {
		i.state.Clip--
		return
	}
	i.state.Reserve--
}

// canReload reports whether a reload would move rounds into the clip
func (i *instance) canReload() bool {
	w := i.weapon
	return w.DoesRequireAmmo() && w.HasClip() && !i.state.Reloading() &&
		i.state.Clip < w.ClipSize() && i.state.Reserve > 0
}

// startReload begins a reload and reports whether it finished immediately.
// Weapons without a reload mechanic refill instantly.
func (i *instance) startReload() bool {
	if !i.weapon.HasReload() || i.weapon.ReloadCooldown() == 0 {
		i.finishReload()
		return true
	}
	i.state.ReloadingIn = i.weapon.ReloadCooldown()
	return false
}

func (i *instance) finishReload() {
	moved := min(i.weapon.ClipSize()-i.state.Clip, i.state.Reserve)
	i.state.Clip += moved
	i.state.Reserve -= moved
	i.state.ReloadingIn = 0
}

// outOfAmmo reports whether nothing is left to fire or reload
func (i *instance) outOfAmmo() bool {
	return i.weapon.DoesRequireAmmo() && !i.hasRound() && i.state.Reserve <= 0
}

// tick advances the counters; it reports whether a reload completed
func (i *instance) tick() bool {
	if i.state.PrimaryReadyIn > 0 {
		i.state.PrimaryReadyIn--
	}
	if i.state.SecondaryReadyIn > 0 {
		i.state.SecondaryReadyIn--
	}
	if i.state.ReloadingIn > 0 {
		i.state.ReloadingIn--
		if i.state.ReloadingIn == 0 {
			i.finishReload()
			return true
		}
	}
	return false
}

// held reports whether the owning player currently holds this instance
func (i *instance) held() (entities.Hand, bool) {
	for _, hand := range []entities.Hand{entities.HandMain, entities.HandOff} {
		if id, ok := i.player.StackInHand(hand).CustomData(InstanceKey); ok && id == i.state.InstanceID {
			return hand, true
		}
	}
	return "", false
}
