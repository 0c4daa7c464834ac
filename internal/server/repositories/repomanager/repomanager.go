// Package repomanager wires together repository constructors and database
// migrations for the PostgreSQL backend.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/aleksivanovs/studentcompanion/internal/dbx"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/expenses"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/favorites"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/notes"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/refreshtokens"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/subjects"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/tasks"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Subjects(db dbx.DBTX) subjects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Expenses(db dbx.DBTX) expenses.Repository
	Notes(db dbx.DBTX) notes.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
