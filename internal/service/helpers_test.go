package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/notify"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// testNow is a fixed afternoon so start-of-day truncation is visible.
var testNow = time.Date(2026, 3, 10, 15, 45, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type harness struct {
	db       *sql.DB
	uow      db.UnitOfWork
	feed     *notify.Feed
	zones    ZoneService
	projects ProjectService
	board    BoardService
}

func setup(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	feed := notify.NewFeed()
	projectRepo := repository.NewSQLiteProjectRepo(database)
	return &harness{
		db:       database,
		uow:      uow,
		feed:     feed,
		zones:    NewZoneService(zone.BaseCatalog(), repository.NewSQLiteOverlayRepo(database), uow, feed, fixedClock),
		projects: NewProjectService(projectRepo, uow, feed, fixedClock),
		board:    NewBoardService(projectRepo, repository.NewSQLiteAssignmentRepo(database), fixedClock),
	}
}

func messages(f *notify.Feed) []string {
	var out []string
	for _, n := range f.Items() {
		out = append(out, n.Message)
	}
	return out
}
