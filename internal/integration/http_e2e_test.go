//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "dune_tours/internal/adapters/http_server"
	redisad "dune_tours/internal/adapters/redis"
	"dune_tours/internal/app"
	"dune_tours/internal/domain"
	mysqlrepo "dune_tours/internal/storage/mysql"
)

// ---------- helpers ----------
func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}

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

// ---------- the test ----------
func TestHTTP_EndToEnd_Card_DE_EUR(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
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

	repo := mysqlrepo.New(db)
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	// Seed: no EUR price and no German title, so both chains fall back
	err = repo.UpsertActivity(context.Background(), domain.Activity{
		ID:          "desert-safari",
		Category:    "adventure",
		Duration:    "3h",
		Title:       domain.LocalizedText{"en": "Desert Safari", "fr": "Safari dans le désert"},
		Description: domain.LocalizedText{"en": "Dunes at sunset", "de": "Dünen bei Sonnenuntergang"},
		Highlights:  domain.Highlights{"en": {"4x4", "Tea"}, "de": {"Geländewagen", "Tee"}},
		Prices:      domain.PriceRecord{"TND": 80, "USD": 30},
	})
	if err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Catalog: app.NewCatalogService(repo, cache, time.Minute, nil),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/activities/desert-safari?lang=de&currency=EUR")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var card app.ActivityCard
	if err := json.NewDecoder(res.Body).Decode(&card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.Title != "Desert Safari" || card.Description != "Dünen bei Sonnenuntergang" {
		t.Fatalf("unexpected text: %+v", card)
	}
	if len(card.Highlights) != 2 || card.Highlights[0] != "Geländewagen" {
		t.Fatalf("unexpected highlights: %v", card.Highlights)
	}
	if card.Price != 30 || card.Currency != domain.CurUSD {
		t.Fatalf("unexpected price: %v %s", card.Price, card.Currency)
	}
	if !mr.Exists("activity:desert-safari") {
		t.Fatalf("expected the entity to be cached")
	}
}
