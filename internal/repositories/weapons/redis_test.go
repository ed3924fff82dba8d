package weapons_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/repositories/weapons/mocks"
)

type RedisRepoTestSuite struct {
	suite.Suite
	client       *redis.Client
	mock         redismock.ClientMock
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	repo         weapons.Repository
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.repo = weapons.NewRedis(s.client, s.timeProvider)
	s.now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) rocketLauncher() *weapons.Definition {
	return &weapons.Definition{
		ID:                identifier.MustParse("quakecraft:rocket_launcher"),
		Item:              identifier.MustParse("minecraft:golden_hoe"),
		PrimaryCooldown:   30,
		SecondaryCooldown: -1,
		ReloadCooldown:    40,
		ClipSize:          1,
		AmmoSize:          10,
	}
}

func (s *RedisRepoTestSuite) encoded(def *weapons.Definition) string {
	stored := *def
	stored.UpdatedAt = s.now
	data, err := json.Marshal(stored)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	def := s.rocketLauncher()

	s.timeProvider.EXPECT().Now().Return(s.now)
	s.mock.ExpectSet("weapon:quakecraft:rocket_launcher", s.encoded(def), 0).SetVal("OK")
	s.mock.ExpectSAdd("weapons", "quakecraft:rocket_launcher").SetVal(1)

	s.Require().NoError(s.repo.Save(ctx, def))
	s.True(def.UpdatedAt.Equal(s.now))
}

func (s *RedisRepoTestSuite) TestSave_RedisError() {
	ctx := context.Background()
	def := s.rocketLauncher()

	s.timeProvider.EXPECT().Now().Return(s.now)
	s.mock.ExpectSet("weapon:quakecraft:rocket_launcher", s.encoded(def), 0).SetErr(errors.New("redis down"))

	err := s.repo.Save(ctx, def)
	s.Require().Error(err)
	s.True(qcerr.Is(err, qcerr.CodeInternal))
}

func (s *RedisRepoTestSuite) TestSave_Invalid() {
	ctx := context.Background()

	s.True(qcerr.IsInvalidArgument(s.repo.Save(ctx, nil)))
	s.True(qcerr.IsInvalidArgument(s.repo.Save(ctx, &weapons.Definition{})))
	s.True(qcerr.IsInvalidArgument(s.repo.Save(ctx, &weapons.Definition{
		ID: identifier.MustParse("quakecraft:shooter"),
	})))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	def := s.rocketLauncher()

	s.mock.ExpectGet("weapon:quakecraft:rocket_launcher").SetVal(s.encoded(def))

	got, err := s.repo.Get(ctx, def.ID)
	s.Require().NoError(err)
	s.Equal(def.ID, got.ID)
	s.Equal(def.Item, got.Item)
	s.Equal(40, got.ReloadCooldown)
	s.Equal(10, got.AmmoSize)
	s.True(got.UpdatedAt.Equal(s.now))
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectGet("weapon:quakecraft:missing").RedisNil()

	_, err := s.repo.Get(ctx, identifier.MustParse("quakecraft:missing"))
	s.True(qcerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_Corrupt() {
	ctx := context.Background()

	s.mock.ExpectGet("weapon:quakecraft:shooter").SetVal("{not json")

	_, err := s.repo.Get(ctx, identifier.MustParse("quakecraft:shooter"))
	s.True(qcerr.Is(err, qcerr.CodeInternal))
}

func (s *RedisRepoTestSuite) TestList() {
	ctx := context.Background()
	def := s.rocketLauncher()

	s.mock.ExpectSMembers("weapons").SetVal([]string{"quakecraft:rocket_launcher"})
	s.mock.ExpectGet("weapon:quakecraft:rocket_launcher").SetVal(s.encoded(def))

	defs, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(defs, 1)
	s.Equal(def.ID, defs[0].ID)
}

func (s *RedisRepoTestSuite) TestList_BadIndexEntry() {
	ctx := context.Background()

	s.mock.ExpectSMembers("weapons").SetVal([]string{"Not Valid"})

	_, err := s.repo.List(ctx)
	s.True(qcerr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()
	id := identifier.MustParse("quakecraft:rocket_launcher")

	s.mock.ExpectDel("weapon:quakecraft:rocket_launcher").SetVal(1)
	s.mock.ExpectSRem("weapons", "quakecraft:rocket_launcher").SetVal(1)
	s.Require().NoError(s.repo.Delete(ctx, id))

	s.mock.ExpectDel("weapon:quakecraft:rocket_launcher").SetVal(0)
	s.True(qcerr.IsNotFound(s.repo.Delete(ctx, id)))
}
