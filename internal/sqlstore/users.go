package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	goStudio "github.com/MrEthical07/goStudio"
)

// Users is the bun-backed goStudio.CredentialStore. Email uniqueness is a
// table constraint.
type Users struct {
	db *bun.DB
}

func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

func (s *Users) FindByIdentifier(ctx context.Context, identifier string) (*goStudio.UserRecord, error) {
	m := new(userModel)
	err := s.db.NewSelect().Model(m).Where("email = ?", identifier).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return m.record(), nil
}

func (s *Users) FindByID(ctx context.Context, id int64) (*goStudio.UserRecord, error) {
	m := new(userModel)
	err := s.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return m.record(), nil
}

func (s *Users) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	exists, err := s.db.NewSelect().Model((*userModel)(nil)).Where("email = ?", identifier).Exists(ctx)
	if err != nil {
		return false, unavailable(err)
	}
	return exists, nil
}

// Create inserts rec and copies the generated ID back.
func (s *Users) Create(ctx context.Context, rec *goStudio.UserRecord) error {
	m := &userModel{
		Email:        rec.Identifier,
		PasswordHash: rec.PasswordHash,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Admin:        rec.Admin,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if _, err := s.db.NewInsert().Model(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", goStudio.ErrDuplicateIdentifier, rec.Identifier)
		}
		return unavailable(err)
	}
	rec.ID = m.ID
	return nil
}

// DeleteByIdentifier removes the user; participations go with it through
// the foreign key cascade.
func (s *Users) DeleteByIdentifier(ctx context.Context, identifier string) error {
	_, err := s.db.NewDelete().Model((*userModel)(nil)).Where("email = ?", identifier).Exec(ctx)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", goStudio.ErrStoreUnavailable, err)
}

// Ping checks the database connection and reports its latency.
func (s *Users) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return time.Since(start), unavailable(err)
	}
	return time.Since(start), nil
}
