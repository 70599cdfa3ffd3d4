package middleware

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const testSecret = "test-secret"

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf) // plain JSON lines
	return &buf
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, sub, iss string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    iss,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func userToken(t *testing.T, uid uint) string {
	t.Helper()
	return signToken(t, jwt.SigningMethodHS256, []byte(testSecret),
		strconv.FormatUint(uint64(uid), 10), "", time.Now().Add(time.Hour))
}
