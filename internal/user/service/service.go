package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"keyshop/internal/user"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrInvalidCreds   = errors.New("invalid credentials")
	ErrRegisterClosed = errors.New("registration is closed")
	ErrUserNotFound   = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetAll(ctx context.Context) ([]*user.User, error)
	Count(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, id int64, hashed string) error
	TouchLastSignIn(ctx context.Context, id int64) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register создаёт первого админа. Когда пользователи уже есть,
// регистрация закрыта - новых заводит админ через защищённый маршрут.
func (s *UserService) Register(ctx context.Context, email, password string) (*user.User, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRegisterClosed
	}

	return s.create(ctx, email, password)
}

// CreateUser - создание пользователя уже авторизованным админом
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*user.User, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserExists
	}

	return s.create(ctx, email, password)
}

func (s *UserService) create(ctx context.Context, email, password string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:    email,
		Password: string(hash),
		IsAdmin:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Printf("UserService: user %s created", u.Email)
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCreds
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return nil, ErrInvalidCreds
	}

	if err := s.repo.TouchLastSignIn(ctx, u.ID); err != nil {
		log.Printf("UserService: failed to update last_sign_in for %s: %v", u.Email, err)
	}

	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, newPassword string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, id, string(hash))
}
