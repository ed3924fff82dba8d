// Package arsenal hands weapons to players and dispatches their interactions
// from the server tick loop, enforcing cooldowns, clips and ammo pools.
package arsenal

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/events"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/i18n"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/logger"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/uuid"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

// Service defines the arsenal service interface. Every method is meant to be
// called from the server tick loop; weapon hooks and event listeners must not
// call back into the service.
type Service interface {
	// Give builds a weapon stack, puts it in the player's inventory and starts tracking it
	Give(ctx context.Context, player *entities.Player, weaponID identifier.Identifier) (item.Stack, error)

	// Tick advances every tracked instance by one server tick
	Tick(ctx context.Context, world *entities.World) error

	// Primary dispatches a primary use of the stack in hand
	Primary(ctx context.Context, world *entities.World, player *entities.Player, hand entities.Hand) (entities.ActionResult, error)

	// Secondary dispatches a secondary use of the stack in hand
	Secondary(ctx context.Context, world *entities.World, player *entities.Player, hand entities.Hand) (entities.ActionResult, error)

	// Reload starts a reload of the stack in hand; false when nothing can be reloaded
	Reload(ctx context.Context, player *entities.Player, hand entities.Hand) (bool, error)

	// State returns the runtime state of a tracked instance
	State(instanceID string) (State, bool)

	// Status renders a one-line HUD for the stack in hand, in the player's locale
	Status(player *entities.Player, hand entities.Hand) string

	// LoadDefinitions overlays stored tuning onto the registered weapons. Stacks
	// already given use the new tuning from their next action on.
	LoadDefinitions(ctx context.Context) (int, error)

	// SaveDefinitions stores the tuning of every registered weapon
	SaveDefinitions(ctx context.Context) error
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Weapons       *weapon.Registry   // Required
	Items         *item.Registry     // Required
	Bus           *events.Bus        // Optional, a private bus when nil
	Repository    weapons.Repository // Optional, definitions are not persisted when nil
	Catalog       *i18n.Catalog      // Optional, HUD shows raw keys when nil
	UUIDGenerator uuid.Generator     // Optional, will use default if nil
	Logger        *slog.Logger       // Optional, slog.Default() when nil
}

type service struct {
	weapons       *weapon.Registry
	items         *item.Registry
	bus           *events.Bus
	repository    weapons.Repository
	catalog       *i18n.Catalog
	uuidGenerator uuid.Generator
	logger        *slog.Logger

	mu        sync.Mutex
	instances map[string]*instance
}

// NewService creates a new arsenal service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Weapons == nil {
		panic("weapon registry is required")
	}
	if cfg.Items == nil {
		panic("item registry is required")
	}

	svc := &service{
		weapons:       cfg.Weapons,
		items:         cfg.Items,
		bus:           cfg.Bus,
		repository:    cfg.Repository,
		catalog:       cfg.Catalog,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
		instances:     make(map[string]*instance),
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	svc.logger = svc.logger.With("component", "arsenal")
	if svc.bus == nil {
		svc.bus = events.NewBus(svc.logger)
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) Give(ctx context.Context, player *entities.Player, weaponID identifier.Identifier) (item.Stack, error) {
	if player == nil {
		return item.Empty, qcerr.InvalidArgument("player cannot be nil")
	}

	w, err := s.weapons.Get(weaponID)
	if err != nil {
		return item.Empty, qcerr.Wrapf(err, "failed to give %s to %s", weaponID, player.ID)
	}

	instanceID := s.uuidGenerator.New()
	stack := w.Build(player).
		WithCustomData(InstanceKey, instanceID).
		WithCustomData(WeaponKey, w.ID().String())
	slot := player.Give(stack)

	s.mu.Lock()
	s.instances[instanceID] = newInstance(instanceID, w, player, stack)
	s.mu.Unlock()

	logger.FromContext(ctx, s.logger).InfoContext(ctx, "weapon given",
		"weapon", w.ID().String(), "player", player.ID, "instance", instanceID, "slot", slot)

	if err := s.bus.Emit(&events.GivenEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeWeaponGiven, Player: player, Weapon: w},
		Stack:      stack,
		InstanceID: instanceID,
		Slot:       slot,
	}); err != nil {
		return stack, qcerr.Wrap(err, "weapon given but listener failed")
	}

	return stack, nil
}

func (s *service) Tick(ctx context.Context, world *entities.World) error {
	if world != nil {
		world.Advance()
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type heldStack struct {
		weapon *weapon.Weapon
		stack  item.Stack
	}
	var held []heldStack
	var reloaded []*instance
	for _, id := range ids {
		inst := s.instances[id]
		if inst.tick() {
			reloaded = append(reloaded, inst)
		}
		if _, ok := inst.held(); ok {
			held = append(held, heldStack{weapon: inst.weapon, stack: inst.state.Stack})
		}
	}
	finished := make([]State, len(reloaded))
	for i, inst := range reloaded {
		finished[i] = inst.state
	}
	s.mu.Unlock()

	for _, h := range held {
		h.weapon.Tick(h.stack)
	}

	for i, inst := range reloaded {
		s.logger.DebugContext(ctx, "reload finished",
			"instance", finished[i].InstanceID, "clip", finished[i].Clip, "reserve", finished[i].Reserve)
		if err := s.emitReload(events.EventTypeReloadFinished, inst, finished[i]); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Primary(ctx context.Context, world *entities.World, player *entities.Player, hand entities.Hand) (entities.ActionResult, error) {
	inst, stack, ok := s.lookup(player, hand)
	if !ok {
		return entities.ActionPass, nil
	}
	w := inst.weapon

	s.mu.Lock()
	if inst.state.Reloading() || inst.state.PrimaryReadyIn > 0 {
		s.mu.Unlock()
		return entities.ActionFail, nil
	}
	if !inst.hasRound() {
		empty := inst.outOfAmmo()
		reloadStarted, reloadDone := false, false
		if inst.canReload() {
			reloadStarted = true
			reloadDone = inst.startReload()
		}
		snapshot := inst.state
		s.mu.Unlock()

		if empty {
			s.logger.DebugContext(ctx, "out of ammo", "instance", snapshot.InstanceID, "player", player.ID)
			if err := s.emitReload(events.EventTypeOutOfAmmo, inst, snapshot); err != nil {
				return entities.ActionFail, err
			}
		}
		if reloadStarted {
			if err := s.emitReloadStart(inst, snapshot, reloadDone); err != nil {
				return entities.ActionFail, err
			}
		}
		return entities.ActionFail, nil
	}
	s.mu.Unlock()

	before := &events.ActionEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeBeforePrimary, Player: player, Weapon: w},
		World:      world,
		Hand:       hand,
		InstanceID: inst.state.InstanceID,
	}
	if err := s.bus.Emit(before); err != nil {
		return entities.ActionFail, qcerr.Wrap(err, "before primary listener failed")
	}
	if before.IsCancelled() {
		return entities.ActionFail, nil
	}

	result := w.OnPrimary(world, player, hand)

	var reloadStarted, reloadDone bool
	s.mu.Lock()
	if result.IsAccepted() {
		inst.consumeRound()
		inst.state.PrimaryReadyIn = max(w.PrimaryCooldown(), 0)
		if !inst.hasRound() && inst.canReload() {
			reloadStarted = true
			reloadDone = inst.startReload()
		}
	}
	snapshot := inst.state
	s.mu.Unlock()

	logger.FromContext(ctx, s.logger).DebugContext(ctx, "primary",
		"weapon", w.ID().String(), "player", player.ID, "stack", stack.Count(), "result", result)

	if err := s.bus.Emit(&events.ActionEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeAfterPrimary, Player: player, Weapon: w},
		World:      world,
		Hand:       hand,
		InstanceID: snapshot.InstanceID,
		Result:     result,
	}); err != nil {
		return result, qcerr.Wrap(err, "after primary listener failed")
	}
	if reloadStarted {
		if err := s.emitReloadStart(inst, snapshot, reloadDone); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *service) Secondary(ctx context.Context, world *entities.World, player *entities.Player, hand entities.Hand) (entities.ActionResult, error) {
	inst, stack, ok := s.lookup(player, hand)
	if !ok || !inst.weapon.HasSecondaryAction() {
		return entities.ActionPass, nil
	}
	w := inst.weapon

	s.mu.Lock()
	blocked := inst.state.Reloading() || inst.state.SecondaryReadyIn > 0
	s.mu.Unlock()
	if blocked {
		return entities.ActionFail, nil
	}

	before := &events.ActionEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeBeforeSecondary, Player: player, Weapon: w},
		World:      world,
		Hand:       hand,
		InstanceID: inst.state.InstanceID,
	}
	if err := s.bus.Emit(before); err != nil {
		return entities.ActionFail, qcerr.Wrap(err, "before secondary listener failed")
	}
	if before.IsCancelled() {
		return entities.ActionFail, nil
	}

	result := w.OnSecondary(world, player, stack)

	if result.IsAccepted() {
		s.mu.Lock()
		inst.state.SecondaryReadyIn = w.SecondaryCooldown()
		s.mu.Unlock()
	}

	logger.FromContext(ctx, s.logger).DebugContext(ctx, "secondary",
		"weapon", w.ID().String(), "player", player.ID, "result", result)

	if err := s.bus.Emit(&events.ActionEvent{
		BaseEvent:  events.BaseEvent{Type: events.EventTypeAfterSecondary, Player: player, Weapon: w},
		World:      world,
		Hand:       hand,
		InstanceID: inst.state.InstanceID,
		Result:     result,
	}); err != nil {
		return result, qcerr.Wrap(err, "after secondary listener failed")
	}

	return result, nil
}

func (s *service) Reload(ctx context.Context, player *entities.Player, hand entities.Hand) (bool, error) {
	inst, _, ok := s.lookup(player, hand)
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	if !inst.weapon.HasReload() || !inst.canReload() {
		s.mu.Unlock()
		return false, nil
	}
	done := inst.startReload()
	snapshot := inst.state
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "reload", "instance", snapshot.InstanceID, "player", player.ID, "ticks", snapshot.ReloadingIn)

	return true, s.emitReloadStart(inst, snapshot, done)
}

func (s *service) State(instanceID string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[instanceID]
	if !ok {
		return State{}, false
	}
	return inst.state, true
}

func (s *service) Status(player *entities.Player, hand entities.Hand) string {
	inst, stack, ok := s.lookup(player, hand)
	if !ok {
		return ""
	}

	s.mu.Lock()
	state := inst.state
	s.mu.Unlock()

	name := ""
	if n, named := stack.Name(); named {
		name = n.String()
		if s.catalog != nil {
			name = s.catalog.Resolve(player.Locale, n)
		}
	}

	var detail string
	switch {
	case state.Reloading():
		detail = s.format(player.Locale, "hud.reloading")
	case state.PrimaryReadyIn > 0:
		detail = s.format(player.Locale, "hud.cooldown", state.PrimaryReadyIn)
	case inst.weapon.DoesRequireAmmo() && inst.weapon.HasClip():
		detail = s.format(player.Locale, "hud.ammo", state.Clip, state.Reserve)
	case inst.weapon.DoesRequireAmmo():
		detail = s.format(player.Locale, "hud.ammo", state.Reserve, inst.weapon.AmmoSize())
	}

	if detail == "" {
		return name
	}
	return name + " | " + detail
}

func (s *service) LoadDefinitions(ctx context.Context) (int, error) {
	if s.repository == nil {
		return 0, nil
	}

	defs, err := s.repository.List(ctx)
	if err != nil {
		return 0, qcerr.Wrap(err, "failed to list weapon definitions")
	}

	for _, def := range defs {
		var opts []weapon.Option
		if existing, err := s.weapons.Get(def.ID); err == nil {
			opts = append(opts, weapon.WithBehavior(existing.Behavior()))
		}

		w, err := def.Build(s.items, opts...)
		if err != nil {
			return 0, err
		}
		if err := s.weapons.Replace(w); err != nil {
			return 0, err
		}
		s.rebind(w)
		s.logger.InfoContext(ctx, "loaded weapon definition",
			"weapon", def.ID.String(), "primary_cooldown", def.PrimaryCooldown, "ammo", def.AmmoSize)
	}

	return len(defs), nil
}

func (s *service) SaveDefinitions(ctx context.Context) error {
	if s.repository == nil {
		return nil
	}

	for _, w := range s.weapons.All() {
		if err := s.repository.Save(ctx, weapons.FromWeapon(w)); err != nil {
			return qcerr.Wrapf(err, "failed to save %s", w.ID())
		}
	}
	return nil
}

// rebind points every tracked instance of w's identifier at w, so stacks
// already handed out pick up the new tuning on their next action
func (s *service) rebind(w *weapon.Weapon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inst := range s.instances {
		if inst.weapon.ID() == w.ID() {
			inst.weapon = w
		}
	}
}

// lookup finds the tracked instance for the stack in hand. Weapon stacks the
// service did not hand out are not tracked and pass through untouched.
func (s *service) lookup(player *entities.Player, hand entities.Hand) (*instance, item.Stack, bool) {
	if player == nil {
		return nil, item.Empty, false
	}
	stack := player.StackInHand(hand)
	if stack.IsEmpty() {
		return nil, stack, false
	}

	instanceID, ok := stack.CustomData(InstanceKey)
	if !ok {
		return nil, stack, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[instanceID]
	if !ok || !inst.weapon.MatchesStack(stack) {
		return nil, stack, false
	}
	return inst, stack, true
}

func (s *service) format(locale, key string, args ...any) string {
	if s.catalog == nil {
		return key
	}
	return s.catalog.Format(locale, key, args...)
}

func (s *service) emitReloadStart(inst *instance, snapshot State, done bool) error {
	if err := s.emitReload(events.EventTypeReloadStarted, inst, snapshot); err != nil {
		return err
	}
	if done {
		return s.emitReload(events.EventTypeReloadFinished, inst, snapshot)
	}
	return nil
}

func (s *service) emitReload(eventType events.EventType, inst *instance, snapshot State) error {
	err := s.bus.Emit(&events.ReloadEvent{
		BaseEvent:  events.BaseEvent{Type: eventType, Player: inst.player, Weapon: inst.weapon},
		InstanceID: snapshot.InstanceID,
		Clip:       snapshot.Clip,
		Reserve:    snapshot.Reserve,
	})
	if err != nil {
		return qcerr.Wrapf(err, "%s listener failed", eventType)
	}
	return nil
}
