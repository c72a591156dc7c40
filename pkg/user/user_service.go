package user

import (
	"context"
	"fmt"

	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	DeleteCurrentUser(ctx context.Context) error
}

type UserServiceImpl struct {
	repo     Repo
	eventBus *event_bus.EventBus
}

func NewUserService(repo Repo, eventBus *event_bus.EventBus) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, eventBus: eventBus}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	return u.repo.CreateUser(ctx, user)
}

// DeleteCurrentUser removes the user row (event rows cascade away with it)
// and announces the deletion on the bus so per-user state held elsewhere is
// discarded too.
func (u *UserServiceImpl) DeleteCurrentUser(ctx context.Context) error {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if err := u.repo.DeleteUser(ctx, uid); err != nil {
		return err
	}

	if err := u.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.UserDeletedType, event_bus.UserDeleted{
		Uid: uid,
	})); err != nil {
		// The user is gone regardless of what subscribers did with it.
		log.Errorf("user deleted but publishing notification failed: %v", err)
	}
	return nil
}
