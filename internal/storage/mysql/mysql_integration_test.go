//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"dune_tours/internal/domain"
	mysqlrepo "dune_tours/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=dune",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/dune?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	safari := domain.Activity{
		ID:          "desert-safari",
		Category:    "adventure",
		Duration:    "3 hours",
		GroupSize:   "2-8",
		Image:       "/img/safari.jpg",
		Title:       domain.LocalizedText{"en": "Desert Safari", "fr": "Safari dans le désert"},
		Description: domain.LocalizedText{"en": "Dunes at sunset"},
		Highlights:  domain.Highlights{"en": {"4x4", "Sunset"}},
		Prices:      domain.PriceRecord{"TND": 80, "USD": 30},
		Position:    2,
	}
	camel := domain.Activity{
		ID:       "camel-ride",
		Category: "culture",
		Title:    domain.LocalizedText{"en": "Camel ride"},
		Prices:   domain.PriceRecord{"USD": 20},
		Position: 1,
	}
	for _, a := range []domain.Activity{safari, camel} {
		if err := repo.UpsertActivity(ctx, a); err != nil {
			t.Fatalf("UpsertActivity(%s): %v", a.ID, err)
		}
	}

	got, err := repo.GetActivity(ctx, "desert-safari")
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if got.Title["fr"] != "Safari dans le désert" || got.Prices["TND"] != 80 || len(got.Highlights["en"]) != 2 {
		t.Fatalf("unexpected activity: %+v", got)
	}

	page, err := repo.ListActivities(ctx, domain.ActivitiesQuery{Limit: 10})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "camel-ride" {
		t.Fatalf("expected position order, got %+v", page.Items)
	}

	page, err = repo.ListActivities(ctx, domain.ActivitiesQuery{Category: pstr("adventure"), Limit: 10})
	if err != nil {
		t.Fatalf("ListActivities(category): %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "desert-safari" {
		t.Fatalf("unexpected filtered page: %+v", page.Items)
	}

	// update in place
	safari.Prices["EUR"] = 28
	if err := repo.UpsertActivity(ctx, safari); err != nil {
		t.Fatalf("UpsertActivity(update): %v", err)
	}
	got, _ = repo.GetActivity(ctx, "desert-safari")
	if got.Prices["EUR"] != 28 {
		t.Fatalf("update not applied: %+v", got.Prices)
	}

	if err := repo.LogMiss(ctx, "ghost", 404, "not found"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}
	if err := repo.LogMiss(ctx, "ghost", 404, "not found"); err != nil {
		t.Fatalf("LogMiss(dup): %v", err)
	}

	if err := repo.DeleteActivity(ctx, "camel-ride"); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if _, err := repo.GetActivity(ctx, "camel-ride"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteActivity(ctx, "camel-ride"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
