package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suPer8Hu/animai/internal/common"
)

var (
	ErrEmailRequired = fmt.Errorf("email is required: %w", common.ErrValidation)
	ErrNotFound      = fmt.Errorf("user %w", common.ErrNotFound)
)

type Service struct {
	repo *Repo
	now  func() time.Time
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Login resolves a user by email, creating one on first sight. The nickname
// argument only matters for new accounts.
func (s *Service) Login(ctx context.Context, email, nickname string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = DefaultNickname(email)
	}

	created, _, err := s.repo.CreateOrGetExisting(ctx, &User{
		Email:     email,
		Nickname:  nickname,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uint64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// SeedTestUser creates test@example.com when the users table is empty.
func (s *Service) SeedTestUser(ctx context.Context) (*User, bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if n > 0 {
		return nil, false, nil
	}
	u := &User{Email: "test@example.com", Nickname: "testuser", CreatedAt: s.now()}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// DefaultNickname is the local part of an email address.
func DefaultNickname(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}
