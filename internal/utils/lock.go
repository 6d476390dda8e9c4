package utils

import (
	"context" // Context for lock acquisition
	"time"    // Lock expiry

	"github.com/go-redsync/redsync/v4"                  // Distributed mutex
	"github.com/go-redsync/redsync/v4/redis/goredis/v9" // go-redis pool adapter
	"github.com/redis/go-redis/v9"                      // Redis client
	"github.com/sirupsen/logrus"                        // Logging
)

// RedisLocker hands out Redis-backed mutexes keyed by name
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
	tries  int
}

// NewRedisLocker creates a locker whose mutexes expire after expiry if never released
func NewRedisLocker(rdb redis.UniversalClient, expiry time.Duration) *RedisLocker {
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(rdb)),
		expiry: expiry,
		tries:  32,
	}
}

// Lock blocks until key is held, the retries run out or ctx ends
// The returned func releases the mutex
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(l.tries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		// The caller's ctx may already be done when the work finishes
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Failed to release lock")
		}
	}, nil
}
