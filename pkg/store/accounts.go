package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shouni/gemini-storybook/pkg/domain"
)

// CreateAccount は新規アカウントを挿入します。ユーザー名の重複は
// domain.ErrUsernameTaken を返します。
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		account.ID, account.Username, account.PasswordHash,
		account.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create account %q: %w", account.Username, domain.ErrUsernameTaken)
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccountByUsername はユーザー名でアカウントを引きます。
// 見つからない場合は domain.ErrNotFound を返します。
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var (
		account   domain.Account
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?",
		username,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = parseTimestamp(createdAt)
	return &account, nil
}

func parseTimestamp(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
