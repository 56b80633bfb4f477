// Package auth implements the minimal email/password surface the lifecycle
// hooks attach to. It deliberately stops at credential storage and
// verification: no sessions or tokens are issued here.
package auth

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nqhuy/signup-gate/internal/repository"
	"github.com/nqhuy/signup-gate/model"
)

const mysqlErrDuplicateEntry = 1062

type Service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// SignUp creates a user with a bcrypt password hash. A duplicate email is
// reported as ErrEmailRegistered.
func (s *Service) SignUp(ctx context.Context, name string, email string, password string) (*model.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:       model.GenerateID(),
		Name:     name,
		Email:    email,
		Password: string(passwordHash),
	}
	var mysqlErr *mysql.MySQLError
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}
	return &user, nil
}

// SignIn verifies the email/password pair. Unknown email and wrong password
// collapse into ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
