package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	goStudio "github.com/MrEthical07/goStudio"
)

type userModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password,notnull"`
	FirstName    string    `bun:"first_name,notnull"`
	LastName     string    `bun:"last_name,notnull"`
	Admin        bool      `bun:"admin,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

func (m *userModel) record() *goStudio.UserRecord {
	return &goStudio.UserRecord{
		ID:           m.ID,
		Identifier:   m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Admin:        m.Admin,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type teacherModel struct {
	bun.BaseModel `bun:"table:teachers,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement"`
	FirstName string    `bun:"first_name,notnull"`
	LastName  string    `bun:"last_name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (m *teacherModel) teacher() *goStudio.Teacher {
	return &goStudio.Teacher{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type sessionModel struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Date        time.Time `bun:"date,notnull"`
	TeacherID   int64     `bun:"teacher_id,notnull"`
	Description string    `bun:"description,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func newSessionModel(s *goStudio.Session) *sessionModel {
	return &sessionModel{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		TeacherID:   s.TeacherID,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *sessionModel) session(members []int64) *goStudio.Session {
	return &goStudio.Session{
		ID:          m.ID,
		Name:        m.Name,
		Date:        m.Date.UTC(),
		TeacherID:   m.TeacherID,
		Description: m.Description,
		Members:     members,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type participationModel struct {
	bun.BaseModel `bun:"table:participations,alias:p"`

	SessionID int64 `bun:"session_id,pk"`
	UserID    int64 `bun:"user_id,pk"`
}
