package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unreachable every helper degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Ping reports cache reachability for health checks.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("cache not configured")
	}
	return client.Ping(ctx).Err()
}

// accessTTL keeps stale grants short-lived; grant changes also invalidate.
const accessTTL = 5 * time.Minute

func accessKey(role, moduleKey, featureKey string) string {
	if featureKey == "" {
		return fmt.Sprintf("access:%s:%s", role, moduleKey)
	}
	return fmt.Sprintf("access:%s:%s:%s", role, moduleKey, featureKey)
}

// GetCachedAccess returns a cached access decision, or ok=false on a miss.
func GetCachedAccess(ctx context.Context, role, moduleKey, featureKey string) (allowed, ok bool) {
	if client == nil {
		return false, false
	}
	v, err := client.Get(ctx, accessKey(role, moduleKey, featureKey)).Result()
	if err != nil {
		return false, false
	}
	return v == "1", true
}

// CacheAccess stores an access decision.
func CacheAccess(ctx context.Context, role, moduleKey, featureKey string, allowed bool) {
	if client == nil {
		return
	}
	v := "0"
	if allowed {
		v = "1"
	}
	client.Set(ctx, accessKey(role, moduleKey, featureKey), v, accessTTL)
}

// InvalidateAccess drops every cached decision for a role. Called when the
// role's grants change.
func InvalidateAccess(ctx context.Context, role string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "access:"+role+":*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
