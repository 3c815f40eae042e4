package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kanmind/internal/apperror"
	"kanmind/internal/cache"
	"kanmind/internal/dto"
	"kanmind/internal/logger"
	"kanmind/internal/model"
	"kanmind/internal/repository"
)

const invalidCredentials = "Invalid email or password"

// Service registers users, issues their tokens and resolves tokens back to users.
type Service struct {
	users  repository.UserRepositoryInterface
	tokens repository.TokenRepositoryInterface
	cache  cache.TokenCache
	keys   *KeyIssuer
}

func NewService(users repository.UserRepositoryInterface, tokens repository.TokenRepositoryInterface,
	tokenCache cache.TokenCache, keys *KeyIssuer) *Service {
	if tokenCache == nil {
		tokenCache = cache.NopTokenCache{}
	}
	return &Service{users: users, tokens: tokens, cache: tokenCache, keys: keys}
}

// Register creates the user and its first token in one transaction.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*model.Token, *model.User, error) {
	email := normalizeEmail(req.Email)

	if req.Password != req.RepeatedPassword {
		return nil, nil, apperror.ValidationFields(map[string]string{
			"repeated_password": "Passwords do not match.",
		})
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if existing != nil {
		return nil, nil, emailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	first, last := SplitFullname(req.Fullname)
	user := &model.User{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: string(hash),
	}

	token, err := s.users.CreateWithToken(ctx, user, s.keys.Generate)
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, nil, emailTaken()
	}
	if err != nil {
		return nil, nil, apperror.Internal(fmt.Errorf("create user: %w", err))
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID)
	return token, user, nil
}

// Login returns the user's existing token or issues a new one.
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*model.Token, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, nil, apperror.Internal(fmt.Errorf("find user by email: %w", err))
	}
	if user == nil {
		return nil, nil, apperror.Authentication(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, apperror.Authentication(invalidCredentials)
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID, s.keys.Generate)
	if err != nil {
		return nil, nil, apperror.Internal(fmt.Errorf("get or create token: %w", err))
	}
	return token, user, nil
}

// Authenticate resolves a token key to its user. The signature is checked
// first, then the key must still be stored.
func (s *Service) Authenticate(ctx context.Context, key string) (*model.User, error) {
	userID, err := s.keys.Parse(key)
	if err != nil {
		return nil, apperror.Authentication("Invalid token")
	}

	cachedID, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Token cache lookup failed", "error", err)
	}
	if hit && cachedID == userID {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("get user: %w", err))
		}
		if user != nil {
			return user, nil
		}
	}

	token, err := s.tokens.GetByKey(ctx, key)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, apperror.Authentication("Invalid token")
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("get token: %w", err))
	}
	if token.UserID != userID {
		return nil, apperror.Authentication("Invalid token")
	}

	if err := s.cache.Set(ctx, key, userID); err != nil {
		logger.WarnContext(ctx, "Token cache store failed", "error", err)
	}
	return &token.User, nil
}

// Logout deletes the key. The next login issues a new one.
func (s *Service) Logout(ctx context.Context, key string) error {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.WarnContext(ctx, "Token cache eviction failed", "error", err)
	}

	err := s.tokens.DeleteByKey(ctx, key)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return apperror.Authentication("Invalid token")
	}
	if err != nil {
		return apperror.Internal(fmt.Errorf("delete token: %w", err))
	}
	return nil
}

// SplitFullname splits on the first space: "Ada King Lovelace" gives
// ("Ada", "King Lovelace").
func SplitFullname(fullname string) (first, last string) {
	fullname = strings.TrimSpace(fullname)
	first, last, _ = strings.Cut(fullname, " ")
	return first, strings.TrimSpace(last)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken() error {
	return apperror.ValidationFields(map[string]string{
		"email": "A user with this email already exists.",
	})
}
