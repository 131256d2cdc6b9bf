package services

import (
	"errors"

	"bathstore/internal/domain"
	"bathstore/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username, email, or telephone or password")

type AuthService struct {
	Users *repos.UserRepo
}

// Login accepts a username, email, or telephone as the identifier and binds
// the session on success.
func (s *AuthService) Login(sid, login, password string) (*domain.User, error) {
	u, err := s.Users.ByLogin(login)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials without touching any session, for the
// token endpoint.
func (s *AuthService) Authenticate(login, password string) (*domain.User, error) {
	u, err := s.Users.ByLogin(login)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

// SignUp registers a customer account. Duplicate identifier errors from the
// repo pass through so the form can name the clashing field.
func (s *AuthService) SignUp(username, email, telephone, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.CreateCustomer(username, email, telephone, string(hash))
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
