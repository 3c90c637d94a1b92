package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "panel:certificate:"

// RedisCertificateIDStore keeps certificate ids in Redis so multiple panel
// instances hand out the same id for a pair.
type RedisCertificateIDStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCertificateIDStore connects to Redis and verifies the connection.
func NewRedisCertificateIDStore(cfg RedisConfig) (*RedisCertificateIDStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisCertificateIDStore{client: client, keyPrefix: defaultKeyPrefix}, nil
}

// NewRedisCertificateIDStoreWithClient wraps an existing client, useful when
// sharing one client across components.
func NewRedisCertificateIDStoreWithClient(client *redis.Client, keyPrefix string) *RedisCertificateIDStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCertificateIDStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisCertificateIDStore) Get(ctx context.Context, customerID, courseID int64) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(customerID, courseID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get certificate id: %w", err)
	}
	return id, true, nil
}

func (s *RedisCertificateIDStore) Put(ctx context.Context, customerID, courseID int64, certificateID string) error {
	// SETNX keeps the first generated id when two requests race.
	if err := s.client.SetNX(ctx, s.key(customerID, courseID), certificateID, 0).Err(); err != nil {
		return fmt.Errorf("put certificate id: %w", err)
	}
	return nil
}

func (s *RedisCertificateIDStore) key(customerID, courseID int64) string {
	return fmt.Sprintf("%s%d:%d", s.keyPrefix, customerID, courseID)
}
