package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "session"
	SessionTTL = 24 * time.Hour
	RoleAdmin  = "admin"
	RoleUser   = "user"
)

// SessionClaims identify one client session. SID keys the session's active
// cart; Subject is empty for guests and holds the account id after login.
type SessionClaims struct {
	SID  string `json:"sid"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenService struct {
	Secret []byte
}

func (t *TokenService) Issue(accountID, role, sid string, exp time.Time) (string, error) {
	claims := SessionClaims{
		SID:  sid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(t.Secret)
}

func (t *TokenService) Parse(tokenStr string) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid || claims.SID == "" {
		return nil, errors.New("invalid session token")
	}
	return &claims, nil
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
