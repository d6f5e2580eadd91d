package repositories

import (
	"testing"

	gormModels "dream-analyzer/backend/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup test database: GORM and sqlx share one in-memory SQLite connection
func setupTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&gormModels.User{}, &gormModels.Dream{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db, sqlx.NewDb(sqlDB, "sqlite3")
}

func createUser(t *testing.T, db *gorm.DB, user *gormModels.User) *gormModels.User {
	t.Helper()
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}
