package weapons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
)

const indexKey = "weapons"

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedis creates a Redis-backed definition repository. Definitions are
// stored as JSON under weapon:<namespace:path> and indexed in the "weapons" set.
func NewRedis(client redis.UniversalClient, timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = SystemTime()
	}
	return &redisRepo{
		client:       client,
		timeProvider: timeProvider,
	}
}

func definitionKey(id identifier.Identifier) string {
	return fmt.Sprintf("weapon:%s", id)
}

func (r *redisRepo) Save(ctx context.Context, def *Definition) error {
	if err := validate(def); err != nil {
		return err
	}

	stored := *def
	stored.UpdatedAt = r.timeProvider.Now()

	data, err := json.Marshal(stored)
	if err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to marshal definition")
	}

	if err := r.client.Set(ctx, definitionKey(def.ID), string(data), 0).Err(); err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to save definition").
			WithMeta("weapon_id", def.ID.String())
	}
	if err := r.client.SAdd(ctx, indexKey, def.ID.String()).Err(); err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to index definition").
			WithMeta("weapon_id", def.ID.String())
	}

	def.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id identifier.Identifier) (*Definition, error) {
	if id.IsZero() {
		return nil, qcerr.InvalidArgument("definition ID is required")
	}

	data, err := r.client.Get(ctx, definitionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, qcerr.NotFoundf("definition '%s' not found", id).
			WithMeta("weapon_id", id.String())
	}
	if err != nil {
		return nil, qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to get definition").
			WithMeta("weapon_id", id.String())
	}

	var def Definition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		return nil, qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to unmarshal definition").
			WithMeta("weapon_id", id.String())
	}
	return &def, nil
}

func (r *redisRepo) List(ctx context.Context) ([]*Definition, error) {
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to list definitions")
	}

	defs := make([]*Definition, len(members))

	g, ctx := errgroup.WithContext(ctx)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			id, err := identifier.Parse(member)
			if err != nil {
				return qcerr.Wrapf(err, "bad index entry %q", member)
			}
			def, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortDefinitions(defs)
	return defs, nil
}

func (r *redisRepo) Delete(ctx context.Context, id identifier.Identifier) error {
	removed, err := r.client.Del(ctx, definitionKey(id)).Result()
	if err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to delete definition").
			WithMeta("weapon_id", id.String())
	}
	if removed == 0 {
		return qcerr.NotFoundf("definition '%s' not found", id).
			WithMeta("weapon_id", id.String())
	}
	if err := r.client.SRem(ctx, indexKey, id.String()).Err(); err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInternal, "failed to unindex definition").
			WithMeta("weapon_id", id.String())
	}
	return nil
}
