package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/dtos"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *TelegramProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &TelegramProvider{
		BaseURL:  server.URL,
		BotToken: "123:abc",
		Client:   &http.Client{},
	}
}

func writeTelegramError(w http.ResponseWriter, status int, description string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dtos.TelegramResponse[any]{
		Ok:          false,
		ErrorCode:   status,
		Description: description,
	})
}

func TestTelegramProvider_GetChatMember_Success(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/bot123:abc/getChatMember" {
			t.Errorf("Expected path /bot123:abc/getChatMember, got %s", r.URL.Path)
		}

		var req dtos.GetChatMemberReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.ChatID != "@dream_channel" || req.UserID != 42 {
			t.Errorf("Unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(dtos.TelegramResponse[dtos.ChatMember]{
			Ok: true,
			Result: dtos.ChatMember{
				Status: "member",
				User:   dtos.TelegramUser{ID: 42, FirstName: "Ada"},
			},
		})
	})

	member, status, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if member.Status != "member" || member.User.ID != 42 {
		t.Errorf("Unexpected member %+v", member)
	}
}

func TestTelegramProvider_GetChatMember_ErrorClassification(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		description string
		wantCode    string
	}{
		{"chat not found", http.StatusBadRequest, "Bad Request: chat not found", constants.ErrCodeChatNotFound},
		{"user not found", http.StatusBadRequest, "Bad Request: user not found", constants.ErrCodeUserNotFound},
		{"participant invalid", http.StatusBadRequest, "Bad Request: PARTICIPANT_ID_INVALID", constants.ErrCodeUserNotFound},
		{"other bad request", http.StatusBadRequest, "Bad Request: invalid user_id specified", constants.ErrCodeBadRequest},
		{"bot not admin", http.StatusForbidden, "Forbidden: bot is not a member of the channel chat", constants.ErrCodeForbidden},
		{"bad token", http.StatusUnauthorized, "Unauthorized", constants.ErrCodeInvalidBotToken},
		{"flood", http.StatusTooManyRequests, "Too Many Requests: retry after 5", constants.ErrCodeRateLimited},
		{"server error", http.StatusBadGateway, "Bad Gateway", constants.ErrCodeUpstreamError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeTelegramError(w, tc.status, tc.description)
			})

			_, status, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)
			if status != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, status)
			}

			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if perr.Code != tc.wantCode {
				t.Errorf("Expected code %s, got %s", tc.wantCode, perr.Code)
			}
		})
	}
}

func TestTelegramProvider_GetChatMember_NonJSONFailure(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html>maintenance</html>"))
	})

	_, _, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != constants.ErrCodeUpstreamError {
		t.Fatalf("Expected upstream error, got %v", err)
	}
}

func TestTelegramProvider_GetChatMember_MalformedResult(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":"not-an-object"}`))
	})

	_, _, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != constants.ErrCodeInvalidDataFormat {
		t.Fatalf("Expected invalid data format error, got %v", err)
	}
}

func TestTelegramProvider_GetChatMember_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := &TelegramProvider{BaseURL: server.URL, BotToken: "123:abc", Client: &http.Client{}}

	_, status, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)
	if status != 0 {
		t.Errorf("Expected status 0, got %d", status)
	}

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != constants.ErrCodeNetworkError {
		t.Fatalf("Expected network error, got %v", err)
	}
}

func TestTelegramProvider_GetChatMember_EmptyArguments(t *testing.T) {
	provider := NewTelegramProvider("", "123:abc", nil)

	_, status, err := provider.GetChatMember(context.Background(), "", 42)
	if err == nil {
		t.Error("Expected error for empty chat id")
	}
	if status != 0 {
		t.Errorf("Expected status 0, got %d", status)
	}
}

func TestTelegramProvider_MissingBotToken(t *testing.T) {
	provider := NewTelegramProvider("http://127.0.0.1:1", "", nil)

	_, _, err := provider.GetChatMember(context.Background(), "@dream_channel", 42)

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != constants.ErrCodeInvalidBotToken {
		t.Fatalf("Expected invalid bot token error, got %v", err)
	}
}

func TestTelegramProvider_CreateInvoiceLink(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot123:abc/createInvoiceLink" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req dtos.CreateInvoiceLinkReq
		json.NewDecoder(r.Body).Decode(&req)
		if req.Currency != "XTR" || req.Prices[0].Amount != 150 {
			t.Errorf("Unexpected invoice request %+v", req)
		}

		json.NewEncoder(w).Encode(dtos.TelegramResponse[string]{
			Ok:     true,
			Result: "https://t.me/$invoice-abc",
		})
	})

	link, _, err := provider.CreateInvoiceLink(context.Background(), dtos.CreateInvoiceLinkReq{
		Title:    "Basic",
		Payload:  "plan:basic:42",
		Currency: "XTR",
		Prices:   []dtos.LabeledPrice{{Label: "Basic", Amount: 150}},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if link != "https://t.me/$invoice-abc" {
		t.Errorf("Unexpected link %s", link)
	}
}
