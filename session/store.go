package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis transport failure returned by Store.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrSessionCorrupt is returned when a stored blob cannot be decoded.
var ErrSessionCorrupt = errors.New("session blob corrupt")

// Store persists sessions in Redis. Each session is one binary string
// keyed by ID; a sorted set indexes IDs for listing and a counter hands
// out new IDs.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] under the given key prefix.
func NewStore(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "gs"
	}
	return &Store{
		redis:  rdb,
		prefix: prefix,
	}
}

func (s *Store) key(id int64) string {
	return s.prefix + ":s:" + strconv.FormatInt(id, 10)
}

func (s *Store) indexKey() string {
	return s.prefix + ":s:index"
}

func (s *Store) seqKey() string {
	return s.prefix + ":s:seq"
}

// Create assigns the next ID to sess and stores it.
func (s *Store) Create(ctx context.Context, sess *Session) error {
	id, err := s.redis.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	sess.ID = id

	return s.Save(ctx, sess)
}

// Save overwrites the stored copy of sess. Concurrent saves of the same ID
// are last-writer-wins.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess.ID <= 0 {
		return errors.New("session id is not assigned")
	}
	data, err := Encode(sess)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(sess.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(sess.ID), Member: sess.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// FindByID returns the session, or nil with no error when it does not exist.
func (s *Store) FindByID(ctx context.Context, id int64) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
	}
	return sess, nil
}

// List returns every session ordered by ID.
func (s *Store) List(ctx context.Context) ([]*Session, error) {
	ids, err := s.redis.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) == 0 {
		return []*Session{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad index entry %q", ErrSessionCorrupt, raw)
		}
		keys = append(keys, s.key(id))
	}

	values, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make([]*Session, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted between ZRANGE and MGET.
			continue
		}
		sess, err := Decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionCorrupt, err)
		}
		out = append(out, sess)
	}

	return out, nil
}

// Delete removes the session and its index entry. Deleting a missing ID is
// not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
