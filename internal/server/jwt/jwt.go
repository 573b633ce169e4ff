package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates that token is malformed, tampered or expired
var ErrInvalidToken = errors.New("invalid token")

// Issuer имя издателя в registered claims
const Issuer = "userhub"

// Claims представляет JWT claims сессионного токена
// Полезная нагрузка состоит из одного идентификатора пользователя
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Service выпускает и проверяет сессионные токены
// Секрет и срок жизни фиксируются на старте процесса
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService создает новый сервис токенов
// Возвращает ошибку при пустом секрете, без него подпись невозможна
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// TTL возвращает срок жизни выпускаемых токенов
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue создает подписанный HS256 токен с claims {id: userID}
// и стандартными полями iat/nbf/exp
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode проверяет подпись и срок действия токена и возвращает claims
// Любая проблема с токеном сворачивается в ErrInvalidToken
func (s *Service) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC, иначе подпись можно подделать сменой алгоритма
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
