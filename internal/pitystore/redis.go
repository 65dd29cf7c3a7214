package pitystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/xtding233/gacha-server/internal/gacha"
	redisclient "github.com/xtding233/gacha-server/internal/redis"
)

const (
	pityKeyPrefix = "gacha:pity:"
	stateSuffix   = ":state"
	revSuffix     = ":rev"
)

// saveIfNewer writes the state only when its revision is greater than the stored one.
// KEYS[1] hash, ARGV[1] state field, ARGV[2] revision field, ARGV[3] json, ARGV[4] revision.
var saveIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[2])
if cur and tonumber(cur) >= tonumber(ARGV[4]) then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[3], ARGV[2], ARGV[4])
return 1
`)

// RedisConfig configures the redis-backed store.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate checks the config.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.New("client cannot be nil")
	}
	return nil
}

type redisStore struct {
	client redisclient.Client
}

// NewRedis creates a store keeping one hash per player.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisStore{client: cfg.Client}, nil
}

func pityKey(playerID int64) string {
	return pityKeyPrefix + strconv.FormatInt(playerID, 10)
}

func (r *redisStore) Load(ctx context.Context, playerID int64) (map[int]gacha.PityState, error) {
	fields, err := r.client.HGetAll(ctx, pityKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load pity for player %d: %w", playerID, err)
	}

	out := make(map[int]gacha.PityState)
	for field, value := range fields {
		banner, ok := strings.CutSuffix(field, stateSuffix)
		if !ok {
			continue
		}
		bannerType, err := strconv.Atoi(banner)
		if err != nil {
			return nil, fmt.Errorf("malformed pity field %q for player %d", field, playerID)
		}
		var st gacha.PityState
		if err := json.Unmarshal([]byte(value), &st); err != nil {
			return nil, fmt.Errorf("failed to decode pity for player %d banner %d: %w", playerID, bannerType, err)
		}
		out[bannerType] = st
	}
	return out, nil
}

func (r *redisStore) Save(ctx context.Context, playerID int64, bannerType int, state gacha.PityState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode pity state: %w", err)
	}
	banner := strconv.Itoa(bannerType)
	err = saveIfNewer.Run(ctx, r.client, []string{pityKey(playerID)},
		banner+stateSuffix, banner+revSuffix, string(data), state.Revision).Err()
	if err != nil {
		return fmt.Errorf("failed to save pity for player %d banner %d: %w", playerID, bannerType, err)
	}
	return nil
}
