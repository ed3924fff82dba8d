package arsenal_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/quakecraft-arsenal/internal/entities"
	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/events"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/i18n"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons"
	mockweapons "github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons/mocks"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/services/arsenal"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/testutils"
	mockuuid "github.com/KirkDiggler/quakecraft-arsenal/internal/uuid/mocks"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/weapon"
)

type tickCounter struct {
	weapon.ShooterBehavior
	ticks int
}

func (b *tickCounter) Tick(*weapon.Weapon, item.Stack) { b.ticks++ }

type recorder struct {
	id     string
	events []events.Event
}

func (r *recorder) ID() string    { return r.id }
func (r *recorder) Priority() int { return 100 }
func (r *recorder) HandleEvent(e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) count(eventType events.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.GetType() == eventType {
			n++
		}
	}
	return n
}

type ArsenalServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	uuid     *mockuuid.MockGenerator
	repo     *mockweapons.MockRepository
	items    *item.Registry
	weapons  *weapon.Registry
	bus      *events.Bus
	recorder *recorder
	counter  *tickCounter
	world    *entities.World
	player   *entities.Player
	service  arsenal.Service
	fired    int
}

func TestArsenalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArsenalServiceTestSuite))
}

func (s *ArsenalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.uuid = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = mockweapons.NewMockRepository(s.mockCtrl)
	s.items = item.Vanilla()
	s.weapons = weapon.NewRegistry()
	s.bus = events.NewBus(nil)
	s.recorder = &recorder{id: "recorder"}
	s.world = entities.NewWorld("arena")
	s.player = testutils.CreateTestPlayer("p1")
	s.fired = 0

	n := 0
	s.uuid.EXPECT().New().DoAndReturn(func() string {
		n++
		return fmt.Sprintf("inst-%d", n)
	}).AnyTimes()

	for _, eventType := range []events.EventType{
		events.EventTypeWeaponGiven,
		events.EventTypeAfterPrimary,
		events.EventTypeAfterSecondary,
		events.EventTypeReloadStarted,
		events.EventTypeReloadFinished,
		events.EventTypeOutOfAmmo,
	} {
		s.bus.Subscribe(eventType, s.recorder)
	}

	fire := func(*weapon.Weapon, *entities.World, *entities.Player) bool {
		s.fired++
		return true
	}
	shooter := weapon.ShooterBehavior{Primary: fire, Secondary: fire}
	s.counter = &tickCounter{ShooterBehavior: shooter}

	s.register("test:pistol", weapon.NewSettings(3), shooter)
	s.register("test:rifle", weapon.NewSettings(2).ReloadCooldown(4).ClipSize(3).AmmoSize(7), shooter)
	s.register("test:sniper", weapon.NewSettings(5).SecondaryCooldown(10), shooter)
	s.register("test:bow", weapon.NewSettings(1).AmmoSize(2), shooter)
	s.register("test:sling", weapon.NewSettings(1).ClipSize(2).AmmoSize(5), shooter)
	s.register("test:dud", weapon.NewSettings(1), weapon.BaseBehavior{})
	s.register("test:counter", weapon.NewSettings(1), s.counter)

	s.service = arsenal.NewService(&arsenal.ServiceConfig{
		Weapons:       s.weapons,
		Items:         s.items,
		Bus:           s.bus,
		Repository:    s.repo,
		UUIDGenerator: s.uuid,
	})
}

func (s *ArsenalServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ArsenalServiceTestSuite) register(id string, settings weapon.Settings, behavior weapon.Behavior) {
	w := testutils.CreateTestWeapon(s.T(), s.items, id, settings, weapon.WithBehavior(behavior))
	s.Require().NoError(s.weapons.Register(w))
}

// give hands the weapon to the player, puts it in the main hand and returns the instance id
func (s *ArsenalServiceTestSuite) give(id string) string {
	stack, err := s.service.Give(s.ctx, s.player, identifier.MustParse(id))
	s.Require().NoError(err)
	s.Require().True(s.player.Hold(entities.HandMain, len(s.player.Inventory())-1))

	instanceID, ok := stack.CustomData(arsenal.InstanceKey)
	s.Require().True(ok)
	return instanceID
}

func (s *ArsenalServiceTestSuite) tick(n int) {
	for i := 0; i < n; i++ {
		s.Require().NoError(s.service.Tick(s.ctx, s.world))
	}
}

func (s *ArsenalServiceTestSuite) primary() entities.ActionResult {
	result, err := s.service.Primary(s.ctx, s.world, s.player, entities.HandMain)
	s.Require().NoError(err)
	return result
}

func (s *ArsenalServiceTestSuite) state(instanceID string) arsenal.State {
	state, ok := s.service.State(instanceID)
	s.Require().True(ok)
	return state
}

func (s *ArsenalServiceTestSuite) TestGive() {
	instanceID := s.give("test:rifle")
	s.Equal("inst-1", instanceID)

	stack := s.player.StackInHand(entities.HandMain)
	weaponID, ok := stack.CustomData(arsenal.WeaponKey)
	s.True(ok)
	s.Equal("test:rifle", weaponID)
	s.True(stack.Unbreakable())

	name, ok := stack.Name()
	s.Require().True(ok)
	s.Equal("weapon.test.rifle", name.Key)

	state := s.state(instanceID)
	s.Equal(3, state.Clip)
	s.Equal(4, state.Reserve)
	s.Equal("p1", state.PlayerID)
	s.Equal(1, s.recorder.count(events.EventTypeWeaponGiven))
}

func (s *ArsenalServiceTestSuite) TestGive_Errors() {
	_, err := s.service.Give(s.ctx, s.player, identifier.MustParse("test:missing"))
	s.True(qcerr.IsNotFound(err))

	_, err = s.service.Give(s.ctx, nil, identifier.MustParse("test:pistol"))
	s.True(qcerr.IsInvalidArgument(err))
}

func (s *ArsenalServiceTestSuite) TestPrimary_Cooldown() {
	instanceID := s.give("test:pistol")

	s.Equal(entities.ActionSuccess, s.primary())
	s.Equal(3, s.state(instanceID).PrimaryReadyIn)
	s.Equal(entities.ActionFail, s.primary())

	s.tick(2)
	s.Equal(entities.ActionFail, s.primary())

	s.tick(1)
	s.Equal(entities.ActionSuccess, s.primary())
	s.Equal(2, s.fired)
	s.Equal(int64(3), s.world.Tick)
}

func (s *ArsenalServiceTestSuite) TestPrimary_ClipAndReload() {
	instanceID := s.give("test:rifle")

	for i := 0; i < 3; i++ {
		s.Equal(entities.ActionSuccess, s.primary(), "shot %d", i+1)
		s.tick(2)
	}
	state := s.state(instanceID)
	s.Equal(0, state.Clip)
	s.True(state.Reloading())
	s.Equal(1, s.recorder.count(events.EventTypeReloadStarted))
	s.Equal(entities.ActionFail, s.primary())

	s.tick(2)
	state = s.state(instanceID)
	s.Equal(3, state.Clip)
	s.Equal(1, state.Reserve)
	s.False(state.Reloading())
	s.Equal(1, s.recorder.count(events.EventTypeReloadFinished))

	for i := 0; i < 3; i++ {
		s.Equal(entities.ActionSuccess, s.primary())
		s.tick(4)
	}
	state = s.state(instanceID)
	s.Equal(1, state.Clip)
	s.Equal(0, state.Reserve)

	s.Equal(entities.ActionSuccess, s.primary())
	s.tick(2)
	s.Equal(entities.ActionFail, s.primary())
	s.Equal(1, s.recorder.count(events.EventTypeOutOfAmmo))
	s.Equal(7, s.fired)
}

func (s *ArsenalServiceTestSuite) TestPrimary_PoolWithoutClip() {
	instanceID := s.give("test:bow")
	s.Equal(2, s.state(instanceID).Reserve)

	s.Equal(entities.ActionSuccess, s.primary())
	s.tick(1)
	s.Equal(entities.ActionSuccess, s.primary())
	s.tick(1)
	s.Equal(entities.ActionFail, s.primary())
	s.Equal(0, s.state(instanceID).Reserve)
	s.Equal(1, s.recorder.count(events.EventTypeOutOfAmmo))
}

func (s *ArsenalServiceTestSuite) TestPrimary_ClipWithoutReloadRefillsInstantly() {
	instanceID := s.give("test:sling")

	s.Equal(entities.ActionSuccess, s.primary())
	s.tick(1)
	s.Equal(entities.ActionSuccess, s.primary())

	state := s.state(instanceID)
	s.Equal(2, state.Clip)
	s.Equal(1, state.Reserve)
	s.False(state.Reloading())
	s.Equal(1, s.recorder.count(events.EventTypeReloadFinished))
}

func (s *ArsenalServiceTestSuite) TestPrimary_PassDoesNotStartCooldown() {
	instanceID := s.give("test:dud")

	s.Equal(entities.ActionPass, s.primary())
	s.Equal(0, s.state(instanceID).PrimaryReadyIn)
}

func (s *ArsenalServiceTestSuite) TestPrimary_UntrackedAndEmpty() {
	s.Equal(entities.ActionPass, s.primary())

	w, err := s.weapons.Get(identifier.MustParse("test:pistol"))
	s.Require().NoError(err)
	s.player.Give(w.Build(s.player))

	s.Equal(entities.ActionPass, s.primary())
	s.Equal(0, s.fired)
}

func (s *ArsenalServiceTestSuite) TestPrimary_CancelledByListener() {
	instanceID := s.give("test:rifle")
	s.bus.Subscribe(events.EventTypeBeforePrimary, &cancelListener{})

	s.Equal(entities.ActionFail, s.primary())
	s.Equal(3, s.state(instanceID).Clip)
	s.Equal(0, s.fired)
}

func (s *ArsenalServiceTestSuite) TestSecondary() {
	s.give("test:pistol")
	result, err := s.service.Secondary(s.ctx, s.world, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.Equal(entities.ActionPass, result)

	instanceID := s.give("test:sniper")
	result, err = s.service.Secondary(s.ctx, s.world, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.Equal(entities.ActionSuccess, result)
	s.Equal(10, s.state(instanceID).SecondaryReadyIn)

	result, err = s.service.Secondary(s.ctx, s.world, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.Equal(entities.ActionFail, result)

	// Secondary and primary cooldowns are independent
	s.Equal(entities.ActionSuccess, s.primary())
	s.Equal(1, s.recorder.count(events.EventTypeAfterSecondary))
}

func (s *ArsenalServiceTestSuite) TestReload() {
	instanceID := s.give("test:rifle")

	ok, err := s.service.Reload(s.ctx, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.False(ok, "full clip")

	s.Equal(entities.ActionSuccess, s.primary())
	ok, err = s.service.Reload(s.ctx, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(4, s.state(instanceID).ReloadingIn)

	ok, err = s.service.Reload(s.ctx, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.False(ok, "already reloading")

	s.tick(4)
	state := s.state(instanceID)
	s.Equal(3, state.Clip)
	s.Equal(3, state.Reserve)

	s.give("test:pistol")
	ok, err = s.service.Reload(s.ctx, s.player, entities.HandMain)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ArsenalServiceTestSuite) TestTick_OnlyHeldStacks() {
	s.give("test:counter")
	s.give("test:counter")
	s.tick(1)
	s.Equal(1, s.counter.ticks)

	s.give("test:pistol")
	s.tick(1)
	s.Equal(1, s.counter.ticks)

	s.Require().True(s.player.Hold(entities.HandOff, 0))
	s.tick(2)
	s.Equal(3, s.counter.ticks)
}

func (s *ArsenalServiceTestSuite) TestLoadDefinitions() {
	s.repo.EXPECT().List(gomock.Any()).Return([]*weapons.Definition{{
		ID:                identifier.MustParse("test:pistol"),
		Item:              identifier.MustParse("test:pistol"),
		PrimaryCooldown:   7,
		SecondaryCooldown: -1,
		ReloadCooldown:    -1,
		ClipSize:          -1,
		AmmoSize:          -1,
	}}, nil)

	n, err := s.service.LoadDefinitions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	w, err := s.weapons.Get(identifier.MustParse("test:pistol"))
	s.Require().NoError(err)
	s.Equal(7, w.PrimaryCooldown())

	instanceID := s.give("test:pistol")
	s.Equal(entities.ActionSuccess, s.primary(), "behavior is kept")
	s.Equal(7, s.state(instanceID).PrimaryReadyIn)
}

func (s *ArsenalServiceTestSuite) TestLoadDefinitions_AppliesToGivenStacks() {
	instanceID := s.give("test:rifle")

	s.repo.EXPECT().List(gomock.Any()).Return([]*weapons.Definition{{
		ID:                identifier.MustParse("test:rifle"),
		Item:              identifier.MustParse("test:rifle"),
		PrimaryCooldown:   100,
		SecondaryCooldown: -1,
		ReloadCooldown:    4,
		ClipSize:          3,
		AmmoSize:          7,
	}}, nil)

	_, err := s.service.LoadDefinitions(s.ctx)
	s.Require().NoError(err)

	s.Equal(entities.ActionSuccess, s.primary())
	state := s.state(instanceID)
	s.Equal(100, state.PrimaryReadyIn)
	s.Equal(2, state.Clip)
}

func (s *ArsenalServiceTestSuite) TestLoadDefinitions_RepositoryError() {
	s.repo.EXPECT().List(gomock.Any()).Return(nil, qcerr.Internalf("redis down"))

	_, err := s.service.LoadDefinitions(s.ctx)
	s.True(qcerr.Is(err, qcerr.CodeInternal))
}

func (s *ArsenalServiceTestSuite) TestSaveDefinitions() {
	var saved []string
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, def *weapons.Definition) error {
		saved = append(saved, def.ID.String())
		return nil
	}).Times(len(s.weapons.All()))

	s.Require().NoError(s.service.SaveDefinitions(s.ctx))
	s.Equal("test:bow", saved[0])
}

type cancelListener struct{}

func (cancelListener) ID() string    { return "cancel" }
func (cancelListener) Priority() int { return 1 }
func (cancelListener) HandleEvent(e events.Event) error {
	e.Cancel()
	return nil
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	catalog, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	items := item.Vanilla()
	registry, err := weapon.DefaultArsenal(items, func(*weapon.Weapon, *entities.World, *entities.Player) bool {
		return true
	}, nil)
	require.NoError(t, err)

	svc := arsenal.NewService(&arsenal.ServiceConfig{
		Weapons: registry,
		Items:   items,
		Catalog: catalog,
	})

	english := entities.NewPlayer("p1", "Alex", "en-US")
	french := entities.NewPlayer("p2", "Camille", "fr_fr")

	for _, player := range []*entities.Player{english, french} {
		_, err := svc.Give(ctx, player, weapon.RocketLauncherID)
		require.NoError(t, err)
	}

	assert.Equal(t, "Rocket Launcher | Ammo: 1 / 9", svc.Status(english, entities.HandMain))
	assert.Equal(t, "Lance-roquettes | Munitions : 1 / 9", svc.Status(french, entities.HandMain))

	result, err := svc.Primary(ctx, nil, french, entities.HandMain)
	require.NoError(t, err)
	assert.Equal(t, entities.ActionSuccess, result)
	assert.Equal(t, "Lance-roquettes | Rechargement...", svc.Status(french, entities.HandMain))
	assert.Equal(t, "Rocket Launcher | Ammo: 1 / 9", svc.Status(english, entities.HandMain))

	assert.Equal(t, "", svc.Status(english, entities.HandOff))
}
