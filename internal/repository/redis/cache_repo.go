package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
)

// CacheRepo реализует repository.CacheRepository поверх Redis
type CacheRepo struct {
	client redis.UniversalClient
	prefix string
}

// NewCacheRepo создает новый репозиторий кеша. Все ключи получают префикс prefix.
func NewCacheRepo(client redis.UniversalClient, prefix string) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{client: client, prefix: prefix}, nil
}

func (r *CacheRepo) key(k string) string {
	return r.prefix + k
}

// SetJSON сохраняет структуру JSON в кеше
func (r *CacheRepo) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, expiration).Err()
}

// GetJSON получает структуру JSON из кеша, при промахе возвращает apperrors.ErrNotFound
func (r *CacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete удаляет значение из кеша
func (r *CacheRepo) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Increment увеличивает счетчик на 1
func (r *CacheRepo) Increment(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, r.key(key)).Result()
}

// Expire устанавливает время жизни ключа
func (r *CacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return r.client.Expire(ctx, r.key(key), expiration).Err()
}

// TTL возвращает оставшееся время жизни ключа (-1 без срока, -2 если ключа нет)
func (r *CacheRepo) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, r.key(key)).Result()
}

// NoopCacheRepo используется, когда Redis отключен: всегда промах, запись игнорируется
type NoopCacheRepo struct{}

// SetJSON ничего не делает
func (NoopCacheRepo) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

// GetJSON всегда возвращает промах
func (NoopCacheRepo) GetJSON(context.Context, string, interface{}) error { return apperrors.ErrNotFound }

// Delete ничего не делает
func (NoopCacheRepo) Delete(context.Context, string) error { return nil }

// Increment всегда возвращает 1
func (NoopCacheRepo) Increment(context.Context, string) (int64, error) { return 1, nil }

// Expire ничего не делает
func (NoopCacheRepo) Expire(context.Context, string, time.Duration) error { return nil }

// TTL всегда сообщает об отсутствии ключа
func (NoopCacheRepo) TTL(context.Context, string) (time.Duration, error) { return -2, nil }
