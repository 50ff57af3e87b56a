package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/balances"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/events"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/globals"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/identities"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/participants"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/profiles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Globals(db dbx.DBTX) globals.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Identities(db dbx.DBTX) identities.Repository
	Challenges(db dbx.DBTX) challenges.Repository
	Participants(db dbx.DBTX) participants.Repository
	Balances(db dbx.DBTX) balances.Repository
	Events(db dbx.DBTX) events.Repository
}
