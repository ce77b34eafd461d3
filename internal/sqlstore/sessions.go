package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	goStudio "github.com/MrEthical07/goStudio"
)

// Sessions is the bun-backed goStudio.SessionStore. The member set of a
// session is the set of its participations rows.
type Sessions struct {
	db *bun.DB
}

func NewSessions(db *bun.DB) *Sessions {
	return &Sessions{db: db}
}

func (s *Sessions) FindByID(ctx context.Context, id int64) (*goStudio.Session, error) {
	m := new(sessionModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable(err)
	}

	members, err := s.members(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.session(members[id]), nil
}

// List returns every session ordered by ID with its members.
func (s *Sessions) List(ctx context.Context) ([]*goStudio.Session, error) {
	var rows []sessionModel
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, unavailable(err)
	}

	members, err := s.members(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*goStudio.Session, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].session(members[rows[i].ID]))
	}
	return out, nil
}

// members loads participations grouped by session. With no ids it loads all.
func (s *Sessions) members(ctx context.Context, ids ...int64) (map[int64][]int64, error) {
	var rows []participationModel
	q := s.db.NewSelect().Model(&rows).Order("session_id ASC", "user_id ASC")
	if len(ids) > 0 {
		q = q.Where("session_id IN (?)", bun.In(ids))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, unavailable(err)
	}

	out := make(map[int64][]int64)
	for _, r := range rows {
		out[r.SessionID] = append(out[r.SessionID], r.UserID)
	}
	return out, nil
}

func (s *Sessions) Create(ctx context.Context, sess *goStudio.Session) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		m := newSessionModel(sess)
		m.ID = 0
		if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
			return unavailable(err)
		}
		if err := insertMembers(ctx, tx, m.ID, sess.Members); err != nil {
			return err
		}
		sess.ID = m.ID
		return nil
	})
}

// Save writes the session columns and reconciles participations with
// sess.Members: new members are inserted, absent ones deleted.
func (s *Sessions) Save(ctx context.Context, sess *goStudio.Session) error {
	if sess.ID <= 0 {
		return errors.New("session id is not assigned")
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model(newSessionModel(sess)).
			Column("name", "date", "teacher_id", "description", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return unavailable(err)
		}

		if err := insertMembers(ctx, tx, sess.ID, sess.Members); err != nil {
			return err
		}

		del := tx.NewDelete().Model((*participationModel)(nil)).Where("session_id = ?", sess.ID)
		if len(sess.Members) > 0 {
			del = del.Where("user_id NOT IN (?)", bun.In(sess.Members))
		}
		if _, err := del.Exec(ctx); err != nil {
			return unavailable(err)
		}
		return nil
	})
}

func insertMembers(ctx context.Context, tx bun.Tx, sessionID int64, members []int64) error {
	if len(members) == 0 {
		return nil
	}
	rows := make([]participationModel, 0, len(members))
	for _, userID := range members {
		rows = append(rows, participationModel{SessionID: sessionID, UserID: userID})
	}
	_, err := tx.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: participations: %v", goStudio.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the session; deleting a missing session is not an error.
func (s *Sessions) Delete(ctx context.Context, id int64) error {
	_, err := s.db.NewDelete().Model((*sessionModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return unavailable(err)
	}
	return nil
}
