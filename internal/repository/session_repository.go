package repository

import (
	"context"
	"time"

	redisapp "artfolio/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepo хранит выданные админские токены на сервере:
// cookie со знакомой подписью, но без записи в redis, недействительна
type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

func (r *RedisSessionRepo) SaveSession(ctx context.Context, token, username string, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionKey(token), username, ttl).Err()
}

func (r *RedisSessionRepo) SessionExists(ctx context.Context, token string) (bool, error) {
	_, err := r.Client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, token string) error {
	return r.Client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return "admin_session:" + token
}
