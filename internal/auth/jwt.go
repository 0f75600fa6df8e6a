// Package auth выпускает и проверяет JWT, хеширует пароли.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken — токен не прошёл проверку подписи/срока или не содержит пользователя.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL время жизни токена, если в конфиге не задано.
const DefaultTokenTTL = 24 * time.Hour

// Claims — стандартные утверждения плюс идентификатор пользователя.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// JWT выпускает и разбирает HS256-токены одним секретом.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT создаёт менеджер токенов. ttl <= 0 заменяется DefaultTokenTTL.
func NewJWT(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue подписывает токен для пользователя.
func (j *JWT) Issue(userID int64) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(j.secret)
}

// Parse проверяет токен и возвращает id пользователя.
func (j *JWT) Parse(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return 0, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
