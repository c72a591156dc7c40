package user

import (
	"context"
	"fmt"
)

type StubUserRepo struct {
	Users  map[string]User
	nextId int
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{Users: make(map[string]User), nextId: 1}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Uid == "" {
		user.Uid = fmt.Sprintf("user-%d", s.nextId)
	}
	s.nextId++
	s.Users[user.Uid] = user
	return user, nil
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	u, ok := s.Users[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, uid string) error {
	if _, ok := s.Users[uid]; !ok {
		return ErrUserNotFound
	}
	delete(s.Users, uid)
	return nil
}
