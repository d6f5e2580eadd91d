package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// webAppDataLabel binds the derived key to Mini App init data
const webAppDataLabel = "WebAppData"

// maxClockSkew tolerates auth_date values slightly ahead of the server clock
const maxClockSkew = time.Minute

var (
	ErrMissingToken         = errors.New("init data is missing")
	ErrSignatureMismatch    = errors.New("init data signature mismatch")
	ErrMalformedUserPayload = errors.New("init data user payload is malformed")
	ErrSessionExpired       = errors.New("init data is expired")
)

type VerifyOptions struct {
	// MaxAge rejects init data whose auth_date is older; zero disables the check
	MaxAge time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

// VerifyInitData checks the Telegram Mini App init data signature and returns the principal it carries.
func VerifyInitData(raw string, botToken string, opts VerifyOptions) (*Principal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMissingToken
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}

	received := values.Get("hash")
	if received == "" {
		return nil, ErrSignatureMismatch
	}

	expected := signFields(values, botToken)
	if !hmac.Equal([]byte(received), []byte(expected)) {
		return nil, ErrSignatureMismatch
	}

	authDate, err := checkAuthDate(values.Get("auth_date"), opts)
	if err != nil {
		return nil, err
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, fmt.Errorf("%w: user field is missing", ErrMalformedUserPayload)
	}

	var user TelegramUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUserPayload, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id is missing", ErrMalformedUserPayload)
	}

	return &Principal{
		ExternalID: user.ID,
		User:       user,
		AuthDate:   authDate,
	}, nil
}

// SignInitData returns fields encoded as init data with a valid hash. Any existing hash is replaced.
func SignInitData(fields url.Values, botToken string) string {
	signed := url.Values{}
	for k, v := range fields {
		if k == "hash" || len(v) == 0 {
			continue
		}
		signed.Set(k, v[0])
	}
	signed.Set("hash", signFields(signed, botToken))
	return signed.Encode()
}

// DataCheckString is the canonical form the hash is computed over:
// every field except hash, sorted by key, as key=value lines.
func DataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

func signFields(values url.Values, botToken string) string {
	secret := hmac.New(sha256.New, []byte(webAppDataLabel))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(DataCheckString(values)))
	return hex.EncodeToString(mac.Sum(nil))
}

func checkAuthDate(raw string, opts VerifyOptions) (time.Time, error) {
	var authDate time.Time
	if raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid auth_date", ErrSessionExpired)
		}
		authDate = time.Unix(secs, 0)
	}

	if opts.MaxAge <= 0 {
		return authDate, nil
	}
	if authDate.IsZero() {
		return time.Time{}, fmt.Errorf("%w: auth_date is missing", ErrSessionExpired)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	age := now().Sub(authDate)
	if age > opts.MaxAge || age < -maxClockSkew {
		return time.Time{}, ErrSessionExpired
	}
	return authDate, nil
}
