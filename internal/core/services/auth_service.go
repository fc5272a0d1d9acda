package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// AuthService manages the single owner account. Registration closes once an
// owner exists; devices afterwards authenticate with the owner's credentials.
type AuthService struct {
	repo domain.UserRepository

	// mu serializes Register's count-then-create so two concurrent first
	// registrations cannot both observe an empty table.
	mu sync.Mutex
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth service: counting users: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrOwnerExists
	}

	user, err := domain.NewUser(uuid.NewString(), input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		// A wrong email and a wrong password must be indistinguishable.
		return nil, domain.ErrInvalidCredentials
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastSeen(ctx, user.ID, time.Now().UTC()); err != nil {
		// Last-seen is bookkeeping only; never block a login on it.
		log.Printf("auth service: updating last seen for %s: %v", user.ID, err)
	}

	return user, nil
}
