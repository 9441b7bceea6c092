package record

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const redisKeyPrefix = "bank:"

// RedisStore хранит записи в Redis. Значения — те же JSON-строки, что и в
// остальных реализациях; TTL не используется, записи живут до явного удаления.
type RedisStore struct {
	client rueidis.Client
}

// NewRedisStore подключается к Redis по указанному адресу и проверяет соединение.
func NewRedisStore(addr string) (*RedisStore, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Read возвращает значение по ключу.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(redisKeyPrefix+key).Build())
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read record %q: %w", key, err)
	}

	value, err := resp.AsBytes()
	if err != nil {
		return nil, false, fmt.Errorf("read record %q: %w", key, err)
	}
	return value, true, nil
}

// Write заменяет значение ключа целиком.
func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(redisKeyPrefix + key).Value(string(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}

// Remove удаляет запись; отсутствие ключа не является ошибкой.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	cmd := s.client.B().Del().Key(redisKeyPrefix + key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("remove record %q: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close() error {
	s.client.Close()
	return nil
}
