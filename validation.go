package goStudio

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

func (v ValidationConfig) register(req RegisterRequest) error {
	if err := v.identifier(req.Identifier); err != nil {
		return err
	}
	if err := v.name("firstName", req.FirstName); err != nil {
		return err
	}
	if err := v.name("lastName", req.LastName); err != nil {
		return err
	}
	n := utf8.RuneCountInString(req.Password)
	if n < v.MinPasswordLength || n > v.MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d to %d characters", ErrMalformed, v.MinPasswordLength, v.MaxPasswordLength)
	}
	return nil
}

func (v ValidationConfig) identifier(id string) error {
	if id == "" {
		return fmt.Errorf("%w: email is required", ErrMalformed)
	}
	if utf8.RuneCountInString(id) > v.MaxIdentifierLength {
		return fmt.Errorf("%w: email exceeds %d characters", ErrMalformed, v.MaxIdentifierLength)
	}
	addr, err := mail.ParseAddress(id)
	if err != nil || addr.Address != id || addr.Name != "" {
		return fmt.Errorf("%w: email is not a bare address", ErrMalformed)
	}
	return nil
}

func (v ValidationConfig) name(field, value string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < v.MinNameLength || n > v.MaxNameLength {
		return fmt.Errorf("%w: %s must be %d to %d characters", ErrMalformed, field, v.MinNameLength, v.MaxNameLength)
	}
	return nil
}

func (v ValidationConfig) session(in SessionInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrMalformed)
	}
	if utf8.RuneCountInString(name) > v.MaxSessionNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrMalformed, v.MaxSessionNameLength)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrMalformed)
	}
	if in.TeacherID <= 0 {
		return fmt.Errorf("%w: teacher_id is required", ErrMalformed)
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return fmt.Errorf("%w: description is required", ErrMalformed)
	}
	if utf8.RuneCountInString(desc) > v.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrMalformed, v.MaxDescriptionLength)
	}
	return nil
}
