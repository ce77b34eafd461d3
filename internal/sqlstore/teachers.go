package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	goStudio "github.com/MrEthical07/goStudio"
)

type Teachers struct {
	db *bun.DB
}

func NewTeachers(db *bun.DB) *Teachers {
	return &Teachers{db: db}
}

func (s *Teachers) FindByID(ctx context.Context, id int64) (*goStudio.Teacher, error) {
	m := new(teacherModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return m.teacher(), nil
}

// List returns every teacher ordered by ID.
func (s *Teachers) List(ctx context.Context) ([]*goStudio.Teacher, error) {
	var rows []teacherModel
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, unavailable(err)
	}
	out := make([]*goStudio.Teacher, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].teacher())
	}
	return out, nil
}

func (s *Teachers) Create(ctx context.Context, t *goStudio.Teacher) error {
	m := &teacherModel{
		FirstName: t.FirstName,
		LastName:  t.LastName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return unavailable(err)
	}
	t.ID = m.ID
	return nil
}
