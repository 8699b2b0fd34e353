package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	services "artfolio/internal/services/auth_service"
	"artfolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, token, username string, ttl time.Duration) error {
	args := m.Called(ctx, token, username, ttl)
	return args.Error(0)
}

func (m *MockSessionRepository) SessionExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

const testSecret = "test-secret"

func newTestService(t *testing.T, password string) (*services.AuthService, *MockSessionRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	mockSessions := new(MockSessionRepository)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	return services.NewAuthService(log, mockSessions, "admin", string(hash), testSecret), mockSessions
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield stored token", func(t *testing.T) {
		service, mockSessions := newTestService(t, "correct-horse")

		mockSessions.On("SaveSession", ctx, mock.AnythingOfType("string"), "admin", services.SessionTTL).
			Return(nil).Once()

		adminSession, err := service.Login(ctx, "admin", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, "admin", adminSession.Username)
		assert.NotEmpty(t, adminSession.Token)
		mockSessions.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, mockSessions := newTestService(t, "correct-horse")

		_, err := service.Login(ctx, "admin", "battery-staple")

		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
		mockSessions.AssertNotCalled(t, "SaveSession")
	})

	t.Run("wrong username", func(t *testing.T) {
		service, mockSessions := newTestService(t, "correct-horse")

		_, err := service.Login(ctx, "root", "correct-horse")

		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
		mockSessions.AssertNotCalled(t, "SaveSession")
	})
}

func TestAuthService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token with live session", func(t *testing.T) {
		service, mockSessions := newTestService(t, "pw")

		mockSessions.On("SaveSession", ctx, mock.AnythingOfType("string"), "admin", services.SessionTTL).
			Return(nil).Once()
		adminSession, err := service.Login(ctx, "admin", "pw")
		require.NoError(t, err)

		mockSessions.On("SessionExists", ctx, adminSession.Token).Return(true, nil).Once()

		valid, err := service.Validate(ctx, adminSession.Token)
		require.NoError(t, err)
		assert.True(t, valid)
		mockSessions.AssertExpectations(t)
	})

	t.Run("revoked session fails even with valid signature", func(t *testing.T) {
		service, mockSessions := newTestService(t, "pw")

		mockSessions.On("SaveSession", ctx, mock.AnythingOfType("string"), "admin", services.SessionTTL).
			Return(nil).Once()
		adminSession, err := service.Login(ctx, "admin", "pw")
		require.NoError(t, err)

		mockSessions.On("SessionExists", ctx, adminSession.Token).Return(false, nil).Once()

		valid, err := service.Validate(ctx, adminSession.Token)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("garbage token does not hit storage", func(t *testing.T) {
		service, mockSessions := newTestService(t, "pw")

		valid, err := service.Validate(ctx, "not-a-jwt")
		require.NoError(t, err)
		assert.False(t, valid)
		mockSessions.AssertNotCalled(t, "SessionExists")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes server entry", func(t *testing.T) {
		service, mockSessions := newTestService(t, "pw")

		mockSessions.On("DeleteSession", ctx, "some-token").Return(nil).Once()

		require.NoError(t, service.Logout(ctx, "some-token"))
		mockSessions.AssertExpectations(t)
	})

	t.Run("missing session is not an error", func(t *testing.T) {
		service, mockSessions := newTestService(t, "pw")

		mockSessions.On("DeleteSession", ctx, "gone-token").
			Return(storage.ErrSessionNotFound).Once()

		require.NoError(t, service.Logout(ctx, "gone-token"))
		mockSessions.AssertExpectations(t)
	})
}
