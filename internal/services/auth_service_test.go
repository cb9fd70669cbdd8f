package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

type mockRTRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleted         []string
}

func (m *mockRTRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRTRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        "test",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		DBOperationTimeout: time.Second,
		FromEmail:          "noreply@fintera.app",
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewAuthService(mockRepo, nil, testConfig())

	result, err := service.Login(context.Background(), "nobody@example.com", "password")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Status: models.StatusInactive}, nil
		},
	}
	service := NewAuthService(mockRepo, nil, testConfig())

	result, err := service.Login(context.Background(), "inactive@example.com", "password")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Status: models.StatusActive, EncryptedPassword: hash}, nil
		},
	}
	service := NewAuthService(mockRepo, nil, testConfig())

	_, err = service.Login(context.Background(), "agent@example.com", "battery-staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	rtRepo := &mockRTRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expired}, nil
		},
	}
	service := NewAuthService(&mockUserRepo{}, rtRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "stale")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, []string{"stale"}, rtRepo.deleted)
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Status: models.StatusInactive}, nil
		},
	}
	rtRepo := &mockRTRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1}, nil
		},
	}
	service := NewAuthService(mockRepo, rtRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "token")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthService_CreateUserAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repository.NewRepositories(db)
	service := NewAuthService(repos.User, repos.RefreshToken, testConfig())
	ctx := context.Background()

	user, err := service.CreateUser(ctx, " Admin@Fintera.App ", "s3cret-pass", "Admin Fintera", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@fintera.app", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.EncryptedPassword)

	_, err = service.CreateUser(ctx, "admin@fintera.app", "s3cret-pass", "Otro", models.RoleAgent)
	assert.ErrorIs(t, err, ErrDuplicate)

	result, err := service.Login(ctx, "admin@fintera.app", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Len(t, result.RefreshToken, 64)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	rotated, err := service.RefreshToken(ctx, result.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, result.RefreshToken, rotated.RefreshToken)

	_, err = service.RefreshToken(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	service := NewAuthService(&mockUserRepo{}, nil, testConfig())
	ctx := context.Background()

	_, err := service.CreateUser(ctx, "not-an-email", "long-enough", "X", models.RoleAgent)
	assert.Error(t, err)

	_, err = service.CreateUser(ctx, "a@example.com", "short", "X", models.RoleAgent)
	assert.Error(t, err)

	_, err = service.CreateUser(ctx, "a@example.com", "long-enough", "X", "owner")
	assert.True(t, err != nil && !errors.Is(err, ErrDuplicate))
}
