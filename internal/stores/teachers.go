package stores

import (
	"context"
	"fmt"
	"strconv"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/redis/go-redis/v9"
)

// Teachers is a [goStudio.TeacherStore] on Redis.
type Teachers struct {
	redis  redis.UniversalClient
	prefix string
}

var _ goStudio.TeacherStore = (*Teachers)(nil)

func NewTeachers(redisClient redis.UniversalClient, prefix string) *Teachers {
	if prefix == "" {
		prefix = "gs"
	}
	return &Teachers{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Teachers) key(id int64) string {
	return s.prefix + ":t:" + strconv.FormatInt(id, 10)
}

func (s *Teachers) indexKey() string {
	return s.prefix + ":t:index"
}

func (s *Teachers) seqKey() string {
	return s.prefix + ":t:seq"
}

func (s *Teachers) Create(ctx context.Context, t *goStudio.Teacher) error {
	id, err := s.redis.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return unavailable(err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key(id),
			fieldID, id,
			fieldFirstName, t.FirstName,
			fieldLastName, t.LastName,
			fieldCreatedAt, millis(t.CreatedAt),
			fieldUpdatedAt, millis(t.UpdatedAt),
		)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		return unavailable(err)
	}

	t.ID = id
	return nil
}

func (s *Teachers) FindByID(ctx context.Context, id int64) (*goStudio.Teacher, error) {
	fields, err := s.redis.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeTeacher(fields)
}

// List returns every teacher ordered by ID.
func (s *Teachers) List(ctx context.Context) ([]*goStudio.Teacher, error) {
	ids, err := s.redis.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	_, err = s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, raw := range ids {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("teacher index: bad entry %q", raw)
			}
			cmds = append(cmds, pipe.HGetAll(ctx, s.key(id)))
		}
		return nil
	})
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]*goStudio.Teacher, 0, len(cmds))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		t, err := decodeTeacher(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeTeacher(fields map[string]string) (*goStudio.Teacher, error) {
	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("teacher record: bad id %q", fields[fieldID])
	}
	created, err := parseMillis(fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("teacher record %d: %w", id, err)
	}
	updated, err := parseMillis(fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("teacher record %d: %w", id, err)
	}
	return &goStudio.Teacher{
		ID:        id,
		FirstName: fields[fieldFirstName],
		LastName:  fields[fieldLastName],
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}
