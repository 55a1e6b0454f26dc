package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// IPasswordHasher decides how passwords are stored and compared.
type IPasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored string, password string) bool
}

// NewPasswordHasher returns the hasher for a PASSWORD_SCHEME value.
func NewPasswordHasher(scheme string) (IPasswordHasher, error) {
	switch scheme {
	case "", PasswordSchemePlain:
		return PlainPasswordHasher{}, nil
	case PasswordSchemeBcrypt:
		return BcryptPasswordHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// PlainPasswordHasher stores passwords as given and compares them by exact equality.
type PlainPasswordHasher struct{}

func (PlainPasswordHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswordHasher) Matches(stored string, password string) bool {
	return stored == password
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptPasswordHasher) Matches(stored string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
