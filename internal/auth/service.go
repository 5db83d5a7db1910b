package auth

import (
	"context"
	"errors"
	"strings"

	"auth-serverless/internal/account"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is what a successful login hands back to the client.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Service composes a credential store with a password hasher and a token
// issuer. Collaborators are passed in explicitly; there is no other wiring.
type Service struct {
	store  account.Store
	hasher PasswordHasher
	issuer *TokenIssuer
}

func NewService(store account.Store, hasher PasswordHasher, issuer *TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, issuer: issuer}
}

func (s *Service) Register(ctx context.Context, username, password, email string) (account.Account, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	password = strings.TrimSpace(password)
	email = strings.TrimSpace(email)

	if username == "" || password == "" {
		return account.Account{}, errors.New("username and password are required")
	}

	_, err := s.store.FindByUsername(ctx, username)
	if err == nil {
		return account.Account{}, ErrUserAlreadyExists
	}
	if !errors.Is(err, account.ErrNotFound) {
		return account.Account{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return account.Account{}, err
	}

	created, err := s.store.Insert(ctx, account.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// Concurrent registration can slip past the lookup above.
		if errors.Is(err, account.ErrDuplicateUsername) {
			return account.Account{}, ErrUserAlreadyExists
		}
		return account.Account{}, err
	}

	return created, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	acc, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Unknown username and wrong password are deliberately
			// indistinguishable to the caller.
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if !s.hasher.Verify(password, acc.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresIn, err := s.issuer.Issue(acc.Username)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
