package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	client *redis.Client
	mock   redismock.ClientMock
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.client,
		UUIDGenerator: uuid.NewSequenceGenerator("generated"),
	})
	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) encoded() string {
	data, err := json.Marshal(ToData(skeletonProfile(s.T())))
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestCreate() {
	s.mock.ExpectExists("profile:skeleton").SetVal(0)
	s.mock.ExpectSet("profile:skeleton", s.encoded(), 0).SetVal("OK")
	s.mock.ExpectSAdd("profile:index", "skeleton").SetVal(1)

	s.NoError(s.repo.Create(s.ctx, skeletonProfile(s.T())))
}

func (s *RedisRepoTestSuite) TestCreateAssignsID() {
	p := skeletonProfile(s.T())
	p.ID = ""
	s.mock.ExpectExists("profile:generated-1").SetVal(0)
	expected := skeletonProfile(s.T())
	expected.ID = "generated-1"
	data, err := json.Marshal(ToData(expected))
	s.Require().NoError(err)
	s.mock.ExpectSet("profile:generated-1", string(data), 0).SetVal("OK")
	s.mock.ExpectSAdd("profile:index", "generated-1").SetVal(1)

	s.NoError(s.repo.Create(s.ctx, p))
	s.Equal("generated-1", p.ID)
}

func (s *RedisRepoTestSuite) TestCreateExisting() {
	s.mock.ExpectExists("profile:skeleton").SetVal(1)

	err := s.repo.Create(s.ctx, skeletonProfile(s.T()))
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreateRedisError() {
	s.mock.ExpectExists("profile:skeleton").SetErr(errors.New("connection refused"))

	err := s.repo.Create(s.ctx, skeletonProfile(s.T()))
	s.ErrorContains(err, "connection refused")
}

func (s *RedisRepoTestSuite) TestGet() {
	s.mock.ExpectGet("profile:skeleton").SetVal(s.encoded())

	got, err := s.repo.Get(s.ctx, "skeleton")
	s.Require().NoError(err)
	s.Equal(ToData(skeletonProfile(s.T())), ToData(got))
}

func (s *RedisRepoTestSuite) TestGetMissing() {
	s.mock.ExpectGet("profile:dragon").RedisNil()

	_, err := s.repo.Get(s.ctx, "dragon")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetCorruptProfile() {
	s.mock.ExpectGet("profile:bad").SetVal(`{"id":"bad","vitality":"living","alignment":"N","resistances":[{"type":"radiant","value":5}]}`)

	_, err := s.repo.Get(s.ctx, "bad")
	s.True(dnderr.IsUnknownDamageType(err))
}

func (s *RedisRepoTestSuite) TestList() {
	s.mock.ExpectSMembers("profile:index").SetVal([]string{"skeleton", "ghost"})
	s.mock.ExpectMGet("profile:ghost", "profile:skeleton").SetVal([]interface{}{nil, s.encoded()})

	got, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("skeleton", got[0].ID)
}

func (s *RedisRepoTestSuite) TestListEmpty() {
	s.mock.ExpectSMembers("profile:index").SetVal([]string{})

	got, err := s.repo.List(s.ctx)
	s.NoError(err)
	s.Empty(got)
}

func (s *RedisRepoTestSuite) TestDelete() {
	s.mock.ExpectExists("profile:skeleton").SetVal(1)
	s.mock.ExpectDel("profile:skeleton").SetVal(1)
	s.mock.ExpectSRem("profile:index", "skeleton").SetVal(1)

	s.NoError(s.repo.Delete(s.ctx, "skeleton"))
}

func (s *RedisRepoTestSuite) TestDeleteMissing() {
	s.mock.ExpectExists("profile:skeleton").SetVal(0)

	s.True(dnderr.IsNotFound(s.repo.Delete(s.ctx, "skeleton")))
}
