package redisstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL = 30 * time.Second
	lockPoll       = 50 * time.Millisecond
)

// ErrLockTimeout means the lock stayed held by someone else for a whole TTL.
var ErrLockTimeout = errors.New("redisstore: lock wait timed out")

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Store struct {
	rdb     redis.UniversalClient
	lockTTL time.Duration
}

func New(addr, password string, db int, lockTTL time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return NewWithClient(rdb, lockTTL), nil
}

func NewWithClient(rdb redis.UniversalClient, lockTTL time.Duration) *Store {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &Store{rdb: rdb, lockTTL: lockTTL}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// Lock blocks until key is acquired (SET NX PX), the context ends, or one TTL
// has passed. The returned func releases the lock if it is still ours.
func (s *Store) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(s.lockTTL)
	for {
		ok, err := s.rdb.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// release on a fresh context; the request one may already be done
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, s.rdb, []string{key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPoll):
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
