package sqlstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(upInitSchema, downInitSchema)
}

func upInitSchema(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().Model((*userModel)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		if _, err := tx.NewCreateTable().Model((*teacherModel)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create teachers: %w", err)
		}
		if _, err := tx.NewCreateTable().
			Model((*sessionModel)(nil)).
			IfNotExists().
			ForeignKey(`("teacher_id") REFERENCES "teachers" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create sessions: %w", err)
		}
		if _, err := tx.NewCreateTable().
			Model((*participationModel)(nil)).
			IfNotExists().
			ForeignKey(`("session_id") REFERENCES "sessions" ("id") ON DELETE CASCADE`).
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create participations: %w", err)
		}
		return nil
	})
}

func downInitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*participationModel)(nil),
		(*sessionModel)(nil),
		(*teacherModel)(nil),
		(*userModel)(nil),
	}
	for _, m := range models {
		if _, err := db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
