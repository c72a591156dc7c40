package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	DeleteUser(ctx context.Context, uid string) error
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	query := `INSERT INTO users (uid, email, display_name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := u.db.ExecContext(ctx, query, user.Uid, user.Email, user.DisplayName, time.Now().UnixMilli())
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT uid, email, display_name FROM users WHERE uid = $1`

	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(&user.Uid, &user.Email, &user.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, uid string) error {
	query := `DELETE FROM users WHERE uid = $1`
	result, err := u.db.ExecContext(ctx, query, uid)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Info("no rows affected of deleting user")
		return ErrUserNotFound
	}
	return nil
}
