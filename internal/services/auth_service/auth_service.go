package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"artfolio/internal/domain/models"
	"artfolio/internal/lib/logger/sl"
	"artfolio/internal/repository"
	"artfolio/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const SessionTTL = 7 * 24 * time.Hour

// AuthService выдаёт и проверяет админские сессии. Токен подписан и
// хранится на сервере: значение cookie само по себе ничего не решает,
// при каждом запросе проверяются подпись и запись в хранилище.
// Учётные данные приходят из конфигурации, не из исходников.
type AuthService struct {
	log          *slog.Logger
	sessions     repository.SessionRepository
	username     string
	passwordHash []byte
	secret       []byte
}

func NewAuthService(log *slog.Logger, sessions repository.SessionRepository, username, passwordHash, secret string) *AuthService {
	return &AuthService{
		log:          log,
		sessions:     sessions,
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
	}
}

// Login проверяет учётные данные и возвращает выданную сессию
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.AdminSession, error) {
	const op = "auth_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to login admin")

	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		log.Warn("unknown admin username")
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCredentials)
	}

	token, err := s.newToken(username)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.SaveSession(ctx, token, username, SessionTTL); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in")

	return &models.AdminSession{Username: username, Token: token}, nil
}

// Validate принимает токен из cookie: подпись, срок и наличие записи
// на сервере проверяются все вместе
func (s *AuthService) Validate(ctx context.Context, token string) (bool, error) {
	const op = "auth_service.Validate"

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false, nil
	}

	exists, err := s.sessions.SessionExists(ctx, token)
	if err != nil {
		s.log.Error("failed to check session", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// Logout отзывает сессию на сервере; отсутствие записи — не ошибка
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "auth_service.Logout"

	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil
		}
		s.log.Error("failed to delete session", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *AuthService) newToken(username string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = username
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(SessionTTL).Unix()

	return token.SignedString(s.secret)
}
