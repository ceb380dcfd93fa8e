// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Токен содержит только идентификатор пользователя (subject), время выпуска
// и время истечения. Подпись — HS256 с серверным секретным ключом.
// Токены не хранятся на сервере и не отзываются: единственный механизм
// завершения — истечение срока действия.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает интерфейс для выпуска и проверки токенов доступа.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанным ID.
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет подпись и срок действия токена,
	// возвращает его claims, если токен корректен.
	ParseToken(tokenStr string) (*jwt.RegisteredClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает JWT токен с subject равным userID,
// подписывая его секретным ключом. Время жизни определяется tokenTTL.
func (j *MakerImpl) GenerateToken(userID string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия.
//
// Ошибки библиотеки (jwt.ErrTokenExpired и пр.) оборачиваются через %w,
// чтобы нормализатор ошибок мог различить истёкший и некорректный токен.
func (j *MakerImpl) ParseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}
