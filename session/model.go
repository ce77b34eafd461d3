package session

import (
	"slices"
	"time"
)

// Session is a scheduled class that users can join.
type Session struct {
	ID          int64
	Name        string
	Date        time.Time
	TeacherID   int64
	Description string
	Members     []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is in the participant set.
func (s *Session) HasMember(userID int64) bool {
	return slices.Contains(s.Members, userID)
}

// AddMember inserts userID. It returns false and leaves the set untouched
// when userID is already present.
func (s *Session) AddMember(userID int64) bool {
	if s.HasMember(userID) {
		return false
	}
	s.Members = append(s.Members, userID)
	return true
}

// RemoveMember deletes userID. It returns false when userID was not present.
func (s *Session) RemoveMember(userID int64) bool {
	i := slices.Index(s.Members, userID)
	if i < 0 {
		return false
	}
	s.Members = slices.Delete(s.Members, i, i+1)
	return true
}

// Clone returns a deep copy so callers can mutate members without touching
// a shared value.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Members = slices.Clone(s.Members)
	return &out
}
