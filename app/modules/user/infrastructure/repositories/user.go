package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// UserDBImpl is a repository for user data operations.
type UserDBImpl struct {
	DB *bun.DB
}

// CreateUser creates a new user within a transaction.
func (db *UserDBImpl) CreateUser(ctx context.Context, user *User) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (db *UserDBImpl) GetUserByID(ctx context.Context, id sharedtypes.UserID) (*User, error) {
	user := &User{}
	err := db.DB.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (db *UserDBImpl) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := db.DB.NewSelect().Model(user).Where("lower(email) = lower(?)", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (db *UserDBImpl) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := db.DB.NewSelect().Model(user).Where("lower(username) = lower(?)", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUsername renames a user and keeps the denormalized username on their
// leaderboard entries in sync, all within one transaction.
func (db *UserDBImpl) UpdateUsername(ctx context.Context, id sharedtypes.UserID, username string) (*User, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("username = ?", username).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.NewUpdate().
		Table("leaderboard").
		Set("username = ?", username).
		Where("user_id = ?", id).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard usernames: %w", err)
	}

	user := &User{}
	if err := tx.NewSelect().Model(user).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}
