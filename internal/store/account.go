package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// accountRepo implements AccountRepo on the accounts table.
type accountRepo struct {
	drv *entsql.Driver
}

func (r *accountRepo) Create(ctx context.Context, a *Account) error {
	existing, err := r.ByEmail(ctx, a.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	query, args := builder().Insert("accounts").
		Columns("id", "email", "password_hash", "display_name", "created_at").
		Values(a.ID, normalizeEmail(a.Email), a.PasswordHash, a.DisplayName, a.CreatedAt.UnixMilli()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *accountRepo) ByEmail(ctx context.Context, email string) (*Account, error) {
	query, args := builder().
		Select("id", "email", "password_hash", "display_name", "created_at").
		From(entsql.Table("accounts")).
		Where(entsql.EQ("email", normalizeEmail(email))).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		a         Account
		createdMs int64
	)
	if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &createdMs); err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.CreatedAt = time.UnixMilli(createdMs)
	return &a, nil
}

func (r *accountRepo) UpdateDisplayName(ctx context.Context, id, name string) error {
	query, args := builder().Update("accounts").
		Set("display_name", name).
		Where(entsql.EQ("id", id)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
