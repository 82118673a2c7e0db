package console

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the stored session credential carries an exp
// claim in the past. Signature verification belongs to the server; the
// console only introspects expiry so a reload does not rehydrate a dead
// session. Opaque or claimless tokens are treated as live and left for the
// server to reject.
func TokenExpired(token string, at ...time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	now := time.Now()
	if len(at) > 0 {
		now = at[0]
	}
	return exp.Before(now)
}
