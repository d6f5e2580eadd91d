package services

import (
	"context"
	"testing"

	"dream-analyzer/backend/internal/models/dtos"
	gormModels "dream-analyzer/backend/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Mock TelegramProvider
type mockTelegramProvider struct {
	getChatMemberFunc     func(ctx context.Context, chatID string, userID int64) (*dtos.ChatMember, int, error)
	createInvoiceLinkFunc func(ctx context.Context, req dtos.CreateInvoiceLinkReq) (string, int, error)
}

func (m *mockTelegramProvider) GetChatMember(ctx context.Context, chatID string, userID int64) (*dtos.ChatMember, int, error) {
	return m.getChatMemberFunc(ctx, chatID, userID)
}

func (m *mockTelegramProvider) CreateInvoiceLink(ctx context.Context, req dtos.CreateInvoiceLinkReq) (string, int, error) {
	return m.createInvoiceLinkFunc(ctx, req)
}

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

	// Auto migrate
	if err := db.AutoMigrate(&gormModels.User{}, &gormModels.Dream{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db, sqlx.NewDb(sqlDB, "sqlite3")
}

func seedUser(t *testing.T, db *gorm.DB, telegramID int64, balance int, claimed bool) *gormModels.User {
	t.Helper()
	user := &gormModels.User{
		TelegramID:           telegramID,
		Balance:              balance,
		ChannelRewardClaimed: claimed,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *gormModels.User {
	t.Helper()
	var user gormModels.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	return &user
}
