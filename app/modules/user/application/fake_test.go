package userservice

import (
	"context"

	userdb "github.com/snake-playground/backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/snake-playground/backend/app/shared"
)

// FakeUserRepository is an in-memory userdb.Repository.
type FakeUserRepository struct {
	users map[sharedtypes.UserID]*userdb.User

	UpdateUsernameFunc func(ctx context.Context, id sharedtypes.UserID, username string) (*userdb.User, error)
}

func NewFakeUserRepository(users ...*userdb.User) *FakeUserRepository {
	f := &FakeUserRepository{users: map[sharedtypes.UserID]*userdb.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, user *userdb.User) error {
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
	if f.UpdateUsernameFunc != nil {
		return f.UpdateUsernameFunc(ctx, id, username)
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	u.Username = username
	return u, nil
}

var _ userdb.Repository = (*FakeUserRepository)(nil)
