package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"petcare-api/internal/auth"
	"petcare-api/internal/validate"
)

var (
	ErrNotFound = errors.New("user not found")

	// Conflictos de registro. El chequeo de username va antes que el de
	// email, y los handlers dependen de poder distinguirlos (ambos 409).
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// Login: un único error genérico, no se revela cuál factor falló.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError es una falla de validación de registro. A diferencia de
// pets, auth corta en el primer validador que falla.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// TokenIssuer emite el bearer token ligado a un user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register crea la cuenta y devuelve el usuario más su access token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return User{}, "", ValidationError{Msg: "Username, email and password are required"}
	}

	// Orden fijo: username, email, password. Gana la primera falla.
	if ok, msg := validate.Username(in.Username); !ok {
		return User{}, "", ValidationError{Msg: msg}
	}
	if ok, msg := validate.Email(in.Email); !ok {
		return User{}, "", ValidationError{Msg: msg}
	}
	if ok, msg := validate.Password(in.Password); !ok {
		return User{}, "", ValidationError{Msg: msg}
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return User{}, "", ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, "", err
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

type LoginInput struct {
	Username string
	Password string
}

// Login autentica y devuelve el usuario más un token nuevo.
func (s *Service) Login(ctx context.Context, in LoginInput) (User, string, error) {
	if in.Username == "" || in.Password == "" {
		return User{}, "", ValidationError{Msg: "Username and password are required"}
	}

	u, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := auth.CheckPassword(in.Password, u.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}
