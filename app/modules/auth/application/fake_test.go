package authservice

import (
	"context"
	"time"

	authdb "github.com/snake-playground/backend/app/modules/auth/infrastructure/repositories"
	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// ------------------------
// Fake User Repo
// ------------------------

// FakeUserRepository is an in-memory userdb.Repository.
type FakeUserRepository struct {
	users map[sharedtypes.UserID]*userdb.User

	CreateUserFunc func(ctx context.Context, user *userdb.User) error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: map[sharedtypes.UserID]*userdb.User{}}
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, user *userdb.User) error {
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, user)
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return userdb.ErrEmailTaken
		}
		if u.Username == user.Username {
			return userdb.ErrUsernameTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *FakeUserRepository) GetUserByID(ctx context.Context, id sharedtypes.UserID) (*userdb.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*userdb.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) GetUserByUsername(ctx context.Context, username string) (*userdb.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepository) UpdateUsername(ctx context.Context, id sharedtypes.UserID, username string) (*userdb.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	u.Username = username
	return u, nil
}

// ------------------------
// Fake Token Repo
// ------------------------

// FakeTokenRepository is an in-memory revoked-token store.
type FakeTokenRepository struct {
	revoked map[string]authdb.RevokedToken

	RevokeFunc func(ctx context.Context, tokenHash string, userID sharedtypes.UserID, expiresAt time.Time) error
}

func NewFakeTokenRepository() *FakeTokenRepository {
	return &FakeTokenRepository{revoked: map[string]authdb.RevokedToken{}}
}

func (f *FakeTokenRepository) Revoke(ctx context.Context, tokenHash string, userID sharedtypes.UserID, expiresAt time.Time) error {
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, tokenHash, userID, expiresAt)
	}
	if _, ok := f.revoked[tokenHash]; !ok {
		f.revoked[tokenHash] = authdb.RevokedToken{
			TokenHash: tokenHash,
			UserID:    userID,
			RevokedAt: time.Now().UTC(),
			ExpiresAt: expiresAt,
		}
	}
	return nil
}

func (f *FakeTokenRepository) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	_, ok := f.revoked[tokenHash]
	return ok, nil
}

func (f *FakeTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64
	for hash, rt := range f.revoked {
		if rt.ExpiresAt.Before(now) {
			delete(f.revoked, hash)
			deleted++
		}
	}
	return deleted, nil
}

var (
	_ userdb.Repository = (*FakeUserRepository)(nil)
	_ authdb.Repository = (*FakeTokenRepository)(nil)
)
