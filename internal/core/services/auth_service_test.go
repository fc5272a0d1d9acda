package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/martalonghi/aura-wellness-engine/internal/adapters/repository"
	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastSeen(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register the owner account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "owner@aura.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Count", ctx).Return(0, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject a second owner", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Count", ctx).Return(1, nil)

		user, err := service.Register(ctx, RegisterInput{
			Email:    "second@aura.app",
			Password: "StrongPassword123!",
		})

		assert.ErrorIs(t, err, domain.ErrOwnerExists)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Count", ctx).Return(0, nil)

		user, err := service.Register(ctx, RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Count", ctx).Return(0, nil)

		user, err := service.Register(ctx, RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Count", ctx).Return(0, nil)
		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{
			Email:    "duplicate@email.com",
			Password: "StrongPassword123!",
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)

		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Register_ConcurrentFirstOwners(t *testing.T) {
	t.Parallel()

	repo := repository.NewInMemoryUserRepository()
	service := NewAuthService(repo)
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := service.Register(ctx, RegisterInput{
				Email:    fmt.Sprintf("owner%d@aura.app", n),
				Password: "StrongPassword123!",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrOwnerExists)
	}
	assert.Equal(t, 1, succeeded, "exactly one registration may win the race")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	newOwner := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser("owner-1", "owner@aura.app")
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword("StrongPassword123!"))
		return user
	}

	t.Run("Success: Valid credentials return the owner", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()
		owner := newOwner(t)

		mockRepo.On("GetByEmail", ctx, "owner@aura.app").Return(owner, nil)
		mockRepo.On("UpdateLastSeen", ctx, "owner-1", mock.AnythingOfType("time.Time")).Return(nil)

		user, err := service.Login(ctx, LoginInput{Email: "owner@aura.app", Password: "StrongPassword123!"})

		assert.NoError(t, err)
		assert.Equal(t, owner.ID, user.ID)
	})

	t.Run("Fail: Wrong password and unknown email are indistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()
		owner := newOwner(t)

		mockRepo.On("GetByEmail", ctx, "owner@aura.app").Return(owner, nil)
		mockRepo.On("GetByEmail", ctx, "ghost@aura.app").Return(nil, domain.ErrUserNotFound)

		_, errWrongPass := service.Login(ctx, LoginInput{Email: "owner@aura.app", Password: "WrongPassword!"})
		_, errNoUser := service.Login(ctx, LoginInput{Email: "ghost@aura.app", Password: "whatever123"})

		assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	})
}
