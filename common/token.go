package common

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"teamtasks/model"
)

// SessionClaims is the payload of the session cookie: just the user id
// plus standard expiry bookkeeping.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// ReleaseToken signs a session token for the user.
func ReleaseToken(cfg *Config, user model.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(time.Duration(cfg.Http.SessionExpire) * time.Second).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "teamtasks",
			Subject:   user.Username,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Http.SecretKey))
}

// ParseToken validates the signature and returns the embedded claims.
func ParseToken(cfg *Config, tokenString string) (*jwt.Token, *SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Http.SecretKey), nil
	})
	return token, claims, err
}
