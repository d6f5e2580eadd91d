package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"dream-analyzer/backend/internal/db/migrations"

	"github.com/pressly/goose/v3"
)

func TestRunMigrations_UsesEmbeddedFS(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	called := false
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		if dir != "." {
			t.Errorf("Expected dir '.', got %q", dir)
		}
		return nil
	}

	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !called {
		t.Error("Expected goose to be invoked")
	}

	files, err := fs.Glob(migrations.Migrations, "*.sql")
	if err != nil || len(files) != 2 {
		t.Errorf("Expected 2 embedded migrations, got %v (%v)", files, err)
	}
}

func TestRunMigrations_WrapsError(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	err := RunMigrations(context.Background(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped boom, got %v", err)
	}
}
