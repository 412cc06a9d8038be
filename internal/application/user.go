package application

import (
	"errors"
	"time"

	"github.com/yash-kumarsharma/vellum/internal/api/middleware"
	"github.com/yash-kumarsharma/vellum/internal/domain/user"
	"github.com/yash-kumarsharma/vellum/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("current password is incorrect")
	ErrPasswordHashFailure = errors.New("failed to hash password")
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{Repos: repos}
}

func (s *UserService) Register(input user.RegisterInput) (user.PublicUser, error) {
	_, err := s.Repos.User.GetUserByEmail(input.Email)
	if err == nil {
		return user.PublicUser{}, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.PublicUser{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.PublicUser{}, ErrPasswordHashFailure
	}

	u := user.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     input.Name,
	}
	if err := s.Repos.User.SaveUser(&u); err != nil {
		return user.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login verifies credentials and issues a bearer token. Unknown email
// and wrong password report the same error.
func (s *UserService) Login(email, password string) (user.User, string, error) {
	u, err := s.Repos.User.GetUserByEmail(email)
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(u.ID, u.Email, 24*time.Hour)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

func (s *UserService) Me(id uint) (user.PublicUser, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return user.PublicUser{}, ErrUserNotFound
	}
	return u.Public(), nil
}

func (s *UserService) UpdateProfile(id uint, input user.UpdateProfileInput) (user.PublicUser, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return user.PublicUser{}, ErrUserNotFound
	}

	if input.Email != nil && *input.Email != u.Email {
		_, err := s.Repos.User.GetUserByEmail(*input.Email)
		if err == nil {
			return user.PublicUser{}, ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return user.PublicUser{}, err
		}
		u.Email = *input.Email
	}
	if input.Name != nil {
		u.Name = *input.Name
	}

	if err := s.Repos.User.SaveUser(&u); err != nil {
		return user.PublicUser{}, err
	}
	return u.Public(), nil
}

// UpdatePassword re-verifies the current password before writing a new
// hash.
func (s *UserService) UpdatePassword(id uint, input user.UpdatePasswordInput) error {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.OldPassword)); err != nil {
		return ErrIncorrectPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashFailure
	}
	u.Password = string(hashed)
	return s.Repos.User.SaveUser(&u)
}
