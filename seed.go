package goStudio

import (
	"context"
	"errors"
	"fmt"
)

// SeedData is the catalog written by [Seed].
type SeedData struct {
	Users    []RegisterRequest
	Teachers []Teacher
}

// DefaultSeed is the demo data set: one administrator, one member and two
// teachers.
func DefaultSeed() SeedData {
	return SeedData{
		Users: []RegisterRequest{
			{Identifier: "yoga@studio.com", Password: "test!1234", FirstName: "Admin", LastName: "Admin", Admin: true},
			{Identifier: "john.doe@example.com", Password: "password123", FirstName: "John", LastName: "Doe"},
		},
		Teachers: []Teacher{
			{FirstName: "Margot", LastName: "Delahaye"},
			{FirstName: "Hélène", LastName: "Thiercelin"},
		},
	}
}

// SeedReport counts what [Seed] actually inserted.
type SeedReport struct {
	UsersCreated    int
	TeachersCreated int
}

// Seed inserts data through the engine. Users whose identifier exists and
// teachers whose full name exists are skipped, so Seed is safe to rerun.
func Seed(ctx context.Context, e *Engine, data SeedData) (SeedReport, error) {
	var report SeedReport
	if !e.ready() {
		return report, ErrEngineNotReady
	}

	for _, u := range data.Users {
		_, err := e.CreateUser(ctx, u)
		switch {
		case err == nil:
			report.UsersCreated++
		case errors.Is(err, ErrIdentifierTaken):
		default:
			return report, fmt.Errorf("seed user %s: %w", u.Identifier, err)
		}
	}

	existing, err := e.teachers.List(ctx)
	if err != nil {
		return report, fmt.Errorf("seed list teachers: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.FirstName+" "+t.LastName] = true
	}

	for _, t := range data.Teachers {
		name := t.FirstName + " " + t.LastName
		if have[name] {
			continue
		}
		at := e.now().UTC()
		rec := &Teacher{FirstName: t.FirstName, LastName: t.LastName, CreatedAt: at, UpdatedAt: at}
		if err := e.teachers.Create(ctx, rec); err != nil {
			return report, fmt.Errorf("seed teacher %s: %w", name, err)
		}
		have[name] = true
		report.TeachersCreated++
	}

	e.logger.InfoContext(ctx, "seed complete",
		"users_created", report.UsersCreated,
		"teachers_created", report.TeachersCreated,
	)
	return report, nil
}
