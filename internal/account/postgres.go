package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (Account, error) {
	var acc Account
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM accounts
		WHERE username = $1
	`, username).Scan(&acc.ID, &acc.Username, &email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("query account by username: %w", err)
	}
	if email.Valid {
		acc.Email = email.String
	}

	return acc, nil
}

func (s *PostgresStore) Insert(ctx context.Context, acc Account) (Account, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Account{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	acc.ID = id.String()
	acc.CreatedAt = time.Now().UTC()

	var email any
	if acc.Email != "" {
		email = acc.Email
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, acc.ID, acc.Username, email, acc.PasswordHash, acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Account{}, ErrDuplicateUsername
		}
		return Account{}, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}
