package weapon

import (
	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
)

// Behavior is what distinguishes one kind of weapon from another. The
// dispatcher calls the hooks from the server tick loop, never concurrently
// for the same weapon.
type Behavior interface {
	// Tick runs once per server tick for every tracked stack of the weapon
	Tick(w *Weapon, stack item.Stack)

	OnPrimary(w *Weapon, world *entities.World, player *entities.Player, hand entities.Hand) entities.ActionResult
	OnSecondary(w *Weapon, world *entities.World, player *entities.Player, stack item.Stack) entities.ActionResult

	// StackBuilder returns a fresh builder for the weapon's stack
	StackBuilder(w *Weapon) *item.StackBuilder
}

// BaseBehavior provides default no-op implementations. Embed it and override
// only the hooks a weapon needs.
type BaseBehavior struct{}

func (BaseBehavior) Tick(*Weapon, item.Stack) {}

func (BaseBehavior) OnPrimary(*Weapon, *entities.World, *entities.Player, entities.Hand) entities.ActionResult {
	return entities.ActionPass
}

func (BaseBehavior) OnSecondary(*Weapon, *entities.World, *entities.Player, item.Stack) entities.ActionResult {
	return entities.ActionPass
}

// StackBuilder starts an unbreakable stack of the weapon's item
func (BaseBehavior) StackBuilder(w *Weapon) *item.StackBuilder {
	return item.Of(w.Item()).SetUnbreakable()
}

// Launcher fires whatever the weapon shoots and reports whether it fired
type Launcher func(w *Weapon, world *entities.World, player *entities.Player) bool

// ShooterBehavior fires through Launchers and decorates the stack
type ShooterBehavior struct {
	BaseBehavior

	Primary   Launcher
	Secondary Launcher
	Glint     bool
	ModelData int // 0 leaves the vanilla model
}

func (b ShooterBehavior) OnPrimary(w *Weapon, world *entities.World, player *entities.Player, _ entities.Hand) entities.ActionResult {
	return launch(b.Primary, w, world, player)
}

func (b ShooterBehavior) OnSecondary(w *Weapon, world *entities.World, player *entities.Player, _ item.Stack) entities.ActionResult {
	return launch(b.Secondary, w, world, player)
}

func (b ShooterBehavior) StackBuilder(w *Weapon) *item.StackBuilder {
	builder := b.BaseBehavior.StackBuilder(w)
	if b.Glint {
		builder.AddGlint()
	}
	if b.ModelData != 0 {
		builder.SetCustomModelData(b.ModelData)
	}
	return builder
}

func launch(l Launcher, w *Weapon, world *entities.World, player *entities.Player) entities.ActionResult {
	if l == nil {
		return entities.ActionPass
	}
	if l(w, world, player) {
		return entities.ActionSuccess
	}
	return entities.ActionFail
}
