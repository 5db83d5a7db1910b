package account

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Store holds username → credential associations. Insert enforces username
// uniqueness; the returned Account carries whatever the store assigned
// (id, creation time).
type Store interface {
	FindByUsername(ctx context.Context, username string) (Account, error)
	Insert(ctx context.Context, acc Account) (Account, error)
}
