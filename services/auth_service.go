package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"book-review/constants"
	"book-review/metrics"
	"book-review/models"
	"book-review/repositories"
)

var (
	ErrCredentialsRequired  = errors.New("username and password are required")
	ErrMissingCredentials   = errors.New("authorization header is required")
	ErrMalformedCredentials = errors.New("invalid authentication format")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUsernameTaken        = errors.New("username already taken")
)

// SeedUsers are upserted on every startup.
var SeedUsers = []models.User{
	{ID: "ldnel", Password: "secret", Role: constants.RoleAdmin},
	{ID: "frank", Password: "secret2", Role: constants.RoleGuest},
}

type IAuthService interface {
	Signup(username string, password string) error
	Login(username string, password string) (*models.User, error)
	Authenticate(authorizationHeader string) (*models.Identity, error)
	FindAllUsers() (*[]models.User, error)
	Seed() error
}

type AuthService struct {
	repository repositories.IAuthRepository
	hasher     IPasswordHasher
}

func NewAuthService(repository repositories.IAuthRepository, hasher IPasswordHasher) IAuthService {
	return &AuthService{
		repository: repository,
		hasher:     hasher,
	}
}

func (s *AuthService) Signup(username string, password string) error {
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}

	_, err := s.repository.FindUser(username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:       username,
		Password: stored,
		Role:     constants.RoleGuest,
	}
	if err := s.repository.CreateUser(user); err != nil {
		// 同時登録で先を越された場合
		if errors.Is(err, repositories.ErrUserExists) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	metrics.RegistrationsTotal.Inc()
	return nil
}

func (s *AuthService) Login(username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	return s.verify(username, password)
}

// Authenticate decodes a "Basic <base64(username:password)>" header and
// checks it against the Credential Store. Nothing is cached between calls.
func (s *AuthService) Authenticate(authorizationHeader string) (*models.Identity, error) {
	if authorizationHeader == "" {
		return nil, ErrMissingCredentials
	}

	parts := strings.Split(authorizationHeader, " ")
	if parts[0] != "Basic" || len(parts) < 2 || parts[1] == "" {
		return nil, ErrMalformedCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		// パディングなしのペイロードも受け付ける
		decoded, err = base64.RawStdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, ErrMalformedCredentials
		}
	}

	username, password, _ := strings.Cut(string(decoded), ":")
	user, err := s.verify(username, password)
	if err != nil {
		return nil, err
	}
	return &models.Identity{ID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) verify(username string, password string) (*models.User, error) {
	foundUser, err := s.repository.FindUser(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Matches(foundUser.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return foundUser, nil
}

func (s *AuthService) FindAllUsers() (*[]models.User, error) {
	return s.repository.FindAllUsers()
}

func (s *AuthService) Seed() error {
	for _, seed := range SeedUsers {
		stored, err := s.hasher.Hash(seed.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.ID, err)
		}
		seed.Password = stored
		if err := s.repository.UpsertUser(seed); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.ID, err)
		}
	}
	return nil
}
