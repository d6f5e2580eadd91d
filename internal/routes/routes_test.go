package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"dream-analyzer/backend/internal/api"
	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/config"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/metrics"
	gormModels "dream-analyzer/backend/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-envconfig"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testBotToken = "123456:TEST-token"
	testChannel  = "@dream_channel"
)

type testServer struct {
	handler       http.Handler
	db            *gorm.DB
	telegramCalls *int32
}

// newTestServer wires the real router over in-memory SQLite and a fake Bot API answering getChatMember with status
func newTestServer(t *testing.T, env map[string]string, status string) *testServer {
	t.Helper()

	var calls int32
	telegram := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !strings.HasSuffix(r.URL.Path, "/getChatMember") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"ok":true,"result":{"status":%q,"user":{"id":42,"is_bot":false,"first_name":"Ada"}}}`, status)
	}))
	t.Cleanup(telegram.Close)

	vars := map[string]string{
		"BOT_TOKEN":             testBotToken,
		"CHANNEL_ID":            testChannel,
		"TELEGRAM_API_BASE_URL": telegram.URL,
		"REDIS_ENABLED":         "false",
	}
	for k, v := range env {
		vars[k] = v
	}
	cfg, err := config.LoadWith(context.Background(), envconfig.MapLookuper(vars))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := gormDB.AutoMigrate(&gormModels.User{}, &gormModels.Dream{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	deps, err := api.InitDependencies(
		cfg,
		sqlx.NewDb(sqlDB, "sqlite3"),
		gormDB,
		common.NewCacheService(time.Minute, time.Minute),
		metrics.NewMetricsRegistry(prometheus.NewRegistry()),
	)
	if err != nil {
		t.Fatalf("Failed to init dependencies: %v", err)
	}

	return &testServer{
		handler:       RegisterRoutes(deps, time.Now()),
		db:            gormDB,
		telegramCalls: &calls,
	}
}

func (s *testServer) seedUser(t *testing.T, telegramID int64, balance int) *gormModels.User {
	t.Helper()
	user := &gormModels.User{TelegramID: telegramID, Balance: balance}
	if err := s.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func (s *testServer) balance(t *testing.T, id string) (int, bool) {
	t.Helper()
	var user gormModels.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	return user.Balance, user.ChannelRewardClaimed
}

func (s *testServer) do(t *testing.T, method, path, initData string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if initData != "" {
		req.Header.Set(constants.InitDataHeader, initData)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode %s %s response %q: %v", method, path, rr.Body.String(), err)
	}
	return rr.Code, body
}

func initDataFor(telegramID int64, botToken string) string {
	fields := url.Values{}
	fields.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	fields.Set("user", fmt.Sprintf(`{"id":%d,"first_name":"Ada"}`, telegramID))
	return auth.SignInitData(fields, botToken)
}

const claimPath = "/api/v1/rewards/claim-channel-token"

func TestClaim_BadSignatureTouchesNothing(t *testing.T) {
	s := newTestServer(t, nil, "member")
	user := s.seedUser(t, 42, 2)

	code, body := s.do(t, http.MethodPost, claimPath, initDataFor(42, "999:wrong"))

	if code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", code)
	}
	if body["error"] != constants.ErrMsgInvalidInitData {
		t.Errorf("Unexpected body %v", body)
	}
	if n := atomic.LoadInt32(s.telegramCalls); n != 0 {
		t.Errorf("Expected no Telegram calls, got %d", n)
	}
	if bal, claimed := s.balance(t, user.ID); bal != 2 || claimed {
		t.Errorf("Expected untouched account, got balance=%d claimed=%v", bal, claimed)
	}
}

func TestClaim_HappyPathThenRepeat(t *testing.T) {
	s := newTestServer(t, nil, "member")
	user := s.seedUser(t, 42, 2)
	initData := initDataFor(42, testBotToken)

	code, body := s.do(t, http.MethodPost, claimPath, initData)
	if code != http.StatusOK || body["success"] != true || body["newTokens"] != float64(3) {
		t.Fatalf("Expected grant with 3 tokens, got %d %v", code, body)
	}
	if bal, claimed := s.balance(t, user.ID); bal != 3 || !claimed {
		t.Errorf("Expected balance 3 and claimed, got %d/%v", bal, claimed)
	}

	code, body = s.do(t, http.MethodPost, claimPath, initData)
	if code != http.StatusOK || body["success"] != false || body["alreadyClaimed"] != true {
		t.Errorf("Expected idempotent repeat, got %d %v", code, body)
	}
	if bal, _ := s.balance(t, user.ID); bal != 3 {
		t.Errorf("Expected balance to stay 3, got %d", bal)
	}
	if n := atomic.LoadInt32(s.telegramCalls); n != 1 {
		t.Errorf("Expected exactly one membership check, got %d", n)
	}
}

func TestClaim_NotSubscribed(t *testing.T) {
	s := newTestServer(t, nil, "left")
	user := s.seedUser(t, 42, 2)

	code, body := s.do(t, http.MethodPost, claimPath, initDataFor(42, testBotToken))
	if code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
	if body["success"] != false || body["subscribed"] != false || body["status"] != "left" {
		t.Errorf("Unexpected body %v", body)
	}
	if bal, claimed := s.balance(t, user.ID); bal != 2 || claimed {
		t.Errorf("Expected untouched account, got %d/%v", bal, claimed)
	}
}

func TestClaim_MissingConfiguration(t *testing.T) {
	s := newTestServer(t, map[string]string{"CHANNEL_ID": ""}, "member")
	s.seedUser(t, 42, 2)

	code, body := s.do(t, http.MethodPost, claimPath, initDataFor(42, testBotToken))
	if code != http.StatusOK || body["success"] != false || body["error"] != constants.ErrMsgServerConfig {
		t.Errorf("Expected 200 configuration error, got %d %v", code, body)
	}
	if n := atomic.LoadInt32(s.telegramCalls); n != 0 {
		t.Errorf("Expected no Telegram calls, got %d", n)
	}
}

func TestClaim_MissingInitData(t *testing.T) {
	s := newTestServer(t, nil, "member")

	code, body := s.do(t, http.MethodPost, claimPath, "")
	if code != http.StatusUnauthorized || body["error"] != constants.ErrMsgMissingInitData {
		t.Errorf("Expected 401, got %d %v", code, body)
	}
}

func TestClaim_UnknownAccount(t *testing.T) {
	s := newTestServer(t, nil, "member")

	code, body := s.do(t, http.MethodPost, claimPath, initDataFor(7, testBotToken))
	if code != http.StatusNotFound || body["error"] != constants.ErrMsgUserNotFound {
		t.Errorf("Expected 404, got %d %v", code, body)
	}
}

func TestProfile_CreatesAccountOnFirstCall(t *testing.T) {
	s := newTestServer(t, map[string]string{"CHANNEL_URL": "https://t.me/dream_channel"}, "member")

	code, body := s.do(t, http.MethodGet, "/api/v1/user/profile", initDataFor(42, testBotToken))
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d %v", code, body)
	}
	data, _ := body["data"].(map[string]any)
	if data["tokens"] != float64(3) || data["planTier"] != "free" || data["channelUrl"] != "https://t.me/dream_channel" {
		t.Errorf("Unexpected profile %v", data)
	}

	// The new account can now claim the reward
	code, body = s.do(t, http.MethodPost, claimPath, initDataFor(42, testBotToken))
	if code != http.StatusOK || body["newTokens"] != float64(4) {
		t.Errorf("Expected grant to 4 tokens, got %d %v", code, body)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil, "member")

	code, body := s.do(t, http.MethodGet, "/healthCheck", "")
	if code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("Expected healthy, got %d %v", code, body)
	}
}
