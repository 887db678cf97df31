package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/hubfare/internal/models"
)

// Cache stores provider offers per leg query. Fares go stale quickly, so
// entries always carry a TTL.
type Cache interface {
	Get(ctx context.Context, provider string, q models.LegQuery) ([]models.LegOffer, bool)
	Set(ctx context.Context, provider string, q models.LegQuery, offers []models.LegOffer) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisConfig().TTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, provider string, q models.LegQuery) ([]models.LegOffer, bool) {
	data, err := c.client.Get(ctx, Key(provider, q)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []models.LegOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (c *RedisCache) Set(ctx context.Context, provider string, q models.LegQuery, offers []models.LegOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(provider, q), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, provider string, q models.LegQuery) ([]models.LegOffer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, provider string, q models.LegQuery, offers []models.LegOffer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key is the cache key of a leg query for one provider.
func Key(provider string, q models.LegQuery) string {
	keyData := struct {
		Origin      string
		Destination string
		Date        string
		Passengers  int
		CabinClass  string
		Currency    string
	}{
		Origin:      strings.ToUpper(q.Origin),
		Destination: strings.ToUpper(q.Destination),
		Date:        q.DateString(),
		Passengers:  q.Passengers,
		CabinClass:  strings.ToLower(q.CabinClass),
		Currency:    strings.ToUpper(q.Currency),
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "legs:" + provider + ":" + hex.EncodeToString(hash[:])
}
