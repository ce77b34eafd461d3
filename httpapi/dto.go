package httpapi

import (
	"fmt"
	"time"

	goStudio "github.com/MrEthical07/goStudio"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type jwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

type signupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type sessionRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	TeacherID   int64  `json:"teacher_id"`
	Description string `json:"description"`
}

// input parses Date as RFC 3339 or a plain YYYY-MM-DD day.
func (req sessionRequest) input() (goStudio.SessionInput, error) {
	in := goStudio.SessionInput{
		Name:        req.Name,
		TeacherID:   req.TeacherID,
		Description: req.Description,
	}
	if req.Date == "" {
		return in, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if d, err := time.Parse(layout, req.Date); err == nil {
			in.Date = d
			return in, nil
		}
	}
	return in, fmt.Errorf("%w: date %q is not RFC 3339 or YYYY-MM-DD", goStudio.ErrMalformed, req.Date)
}

type sessionDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   int64     `json:"teacher_id"`
	Description string    `json:"description"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSessionDTO(s *goStudio.Session) sessionDTO {
	users := s.Members
	if users == nil {
		users = []int64{}
	}
	return sessionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		TeacherID:   s.TeacherID,
		Description: s.Description,
		Users:       users,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type teacherDTO struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toTeacherDTO(t *goStudio.Teacher) teacherDTO {
	return teacherDTO{ID: t.ID, LastName: t.LastName, FirstName: t.FirstName, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

// userDTO has no password field.
type userDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *goStudio.UserRecord) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Identifier,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
