package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// IsLogged reports whether token belongs to a live session.
// A logged-out session is stored with a zero creation time and is never live.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	createdAtStr, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return false, err
	}
	if createdAtUnix <= 0 {
		return false, nil
	}

	return c.now().Sub(time.Unix(createdAtUnix, 0)) <= c.ttl, nil
}
