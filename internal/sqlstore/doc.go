// Package sqlstore implements the goStudio persistence interfaces on a
// relational database through bun, with SQLite (modernc.org/sqlite) as the
// bundled driver.
//
// Participation is a join table keyed by (session_id, user_id); its primary
// key is what makes a user unable to join the same session twice at the
// storage level. Deleting a user or a session cascades to its rows.
//
// Schema changes go through [Migrations] and bun/migrate.
package sqlstore
