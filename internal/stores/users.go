package stores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/redis/go-redis/v9"
)

// createUserLua claims the email hash and the id pointer in one step.
//
// KEYS[1] = user hash (by email)
// KEYS[2] = id -> email pointer
// ARGV    = flat field/value list for HSET, then the email as the last element
//
// Returns 1 on success, {err='duplicate'} when the email is taken.
var createUserLua = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return {err='duplicate'}
end
local email = ARGV[#ARGV]
local fields = {}
for i = 1, #ARGV - 1 do
  fields[i] = ARGV[i]
end
redis.call('HSET', KEYS[1], unpack(fields))
redis.call('SET', KEYS[2], email)
return 1
`)

// deleteUserLua removes the hash and its id pointer.
//
// KEYS[1] = user hash (by email)
// ARGV[1] = id key prefix
var deleteUserLua = redis.NewScript(`
local id = redis.call('HGET', KEYS[1], 'id')
if not id then
  return 0
end
redis.call('DEL', KEYS[1], ARGV[1] .. id)
return 1
`)

const (
	fieldID        = "id"
	fieldEmail     = "email"
	fieldHash      = "password"
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldAdmin     = "admin"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// Users is a [goStudio.CredentialStore] on Redis.
type Users struct {
	redis  redis.UniversalClient
	prefix string
}

var _ goStudio.CredentialStore = (*Users)(nil)

func NewUsers(redisClient redis.UniversalClient, prefix string) *Users {
	if prefix == "" {
		prefix = "gs"
	}
	return &Users{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Users) emailKey(email string) string {
	return s.prefix + ":ue:" + email
}

func (s *Users) idPrefix() string {
	return s.prefix + ":u:"
}

func (s *Users) idKey(id int64) string {
	return s.idPrefix() + strconv.FormatInt(id, 10)
}

func (s *Users) seqKey() string {
	return s.prefix + ":u:seq"
}

func (s *Users) FindByIdentifier(ctx context.Context, identifier string) (*goStudio.UserRecord, error) {
	fields, err := s.redis.HGetAll(ctx, s.emailKey(identifier)).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeUser(fields)
}

func (s *Users) FindByID(ctx context.Context, id int64) (*goStudio.UserRecord, error) {
	email, err := s.redis.Get(ctx, s.idKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return s.FindByIdentifier(ctx, email)
}

func (s *Users) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.emailKey(identifier)).Result()
	if err != nil {
		return false, unavailable(err)
	}
	return n > 0, nil
}

// Create assigns the next ID to rec and stores it. A taken email yields
// goStudio.ErrDuplicateIdentifier; the consumed ID is not reused.
func (s *Users) Create(ctx context.Context, rec *goStudio.UserRecord) error {
	id, err := s.redis.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return unavailable(err)
	}

	args := []any{
		fieldID, id,
		fieldEmail, rec.Identifier,
		fieldHash, rec.PasswordHash,
		fieldFirstName, rec.FirstName,
		fieldLastName, rec.LastName,
		fieldAdmin, strconv.FormatBool(rec.Admin),
		fieldCreatedAt, millis(rec.CreatedAt),
		fieldUpdatedAt, millis(rec.UpdatedAt),
		rec.Identifier,
	}

	err = createUserLua.Run(ctx, s.redis, []string{s.emailKey(rec.Identifier), s.idKey(id)}, args...).Err()
	if err != nil {
		if err.Error() == "duplicate" {
			return fmt.Errorf("%w: %s", goStudio.ErrDuplicateIdentifier, rec.Identifier)
		}
		return unavailable(err)
	}

	rec.ID = id
	return nil
}

func (s *Users) DeleteByIdentifier(ctx context.Context, identifier string) error {
	err := deleteUserLua.Run(ctx, s.redis, []string{s.emailKey(identifier)}, s.idPrefix()).Err()
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Users) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), unavailable(err)
	}
	return time.Since(start), nil
}

func decodeUser(fields map[string]string) (*goStudio.UserRecord, error) {
	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user record: bad id %q", fields[fieldID])
	}
	admin, err := strconv.ParseBool(fields[fieldAdmin])
	if err != nil {
		return nil, fmt.Errorf("user record %d: bad admin flag", id)
	}
	created, err := parseMillis(fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("user record %d: %w", id, err)
	}
	updated, err := parseMillis(fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("user record %d: %w", id, err)
	}

	return &goStudio.UserRecord{
		ID:           id,
		Identifier:   fields[fieldEmail],
		PasswordHash: fields[fieldHash],
		FirstName:    fields[fieldFirstName],
		LastName:     fields[fieldLastName],
		Admin:        admin,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func parseMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", raw)
	}
	if ms == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(ms).UTC(), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", goStudio.ErrStoreUnavailable, err)
}
