package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)

	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokens.On("GenerateToken", mock.Anything).Return("token-abc", nil)

	service := NewService(users, tokens, nil)

	out, err := service.Register(context.Background(), RegisterRequest{
		Email:    "  Guest@Example.COM ",
		Password: "password123",
		Name:     "Gabriel",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, "guest@example.com", out.User.Email)
	assert.NotEqual(t, "password123", out.User.PasswordHash)
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)

	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := NewService(users, tokens, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "guest@example.com",
		Password: "password123",
		Name:     "Gabriel",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &domain.User{ID: uuid.New(), Email: "guest@example.com", PasswordHash: string(hash)}
	users.On("GetByEmail", mock.Anything, "guest@example.com").Return(u, nil)
	tokens.On("GenerateToken", u.ID).Return("token-abc", nil)

	service := NewService(users, tokens, nil)

	out, err := service.Login(context.Background(), LoginRequest{
		Email:    "guest@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &domain.User{ID: uuid.New(), Email: "guest@example.com", PasswordHash: string(hash)}
	users.On("GetByEmail", mock.Anything, "guest@example.com").Return(u, nil)

	service := NewService(users, tokens, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "guest@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	service := NewService(users, tokens, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
