// Package auth handles caller-supplied bearer tokens.
// Tokens are issued and verified by the MemCommerce backend; this package only forwards
// them and never checks signatures. This is a leaf package with no domain dependencies.
package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// HeaderAuthorization is the header carrying the bearer token.
const HeaderAuthorization = "Authorization"

const bearerPrefix = "Bearer "

// BearerHeader returns the request headers that forward token verbatim.
func BearerHeader(token string) map[string]string {
	return map[string]string{HeaderAuthorization: bearerPrefix + token}
}

// Subject returns the "sub" claim of token for log context, or "" when token is not a JWT.
// The signature is NOT verified: the value is informational only and must never be used
// for access decisions.
func Subject(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
