// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file verifies bearer tokens issued by the identity service and exposes
// the authenticated user to downstream handlers. Requests without an
// Authorization header continue anonymously; a header that is present but
// invalid is rejected with 401.
//
// Accepted header forms:
//
//	Authorization: Bearer <jwt>
//	Authorization: Token <jwt>
//
// The token must be HS256-signed with the shared secret. The `sub` claim holds
// the numeric user ID. When an issuer is configured, `iss` must match it.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ctxKeyUserID is where the authenticated user ID (uint) is stored.
const ctxKeyUserID = "userID"

// Authenticate parses the Authorization header when present and stores the
// authenticated user ID in the Gin context.
//
// An empty secret disables verification entirely: every request is anonymous.
func Authenticate(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(secret)

	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" || secret == "" {
			c.Next()
			return
		}

		var claims jwt.RegisteredClaims
		_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		uid, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || uid == 0 {
			unauthorized(c, "invalid token subject")
			return
		}

		c.Set(ctxKeyUserID, uint(uid))
		enrichLogger(c, uint(uid))
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401. Install it after
// Authenticate on routes that need a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			unauthorized(c, "authentication credentials were not provided")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID, or 0 for anonymous requests.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(h string) string {
	scheme, tok, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(tok)
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="foodgram"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
