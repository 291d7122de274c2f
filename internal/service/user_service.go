package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository"
	"home-ledger/internal/storage"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = fmt.Errorf("user %w", domain.ErrConflict)
)

// AvatarSize is the edge length in pixels of stored avatars.
const AvatarSize = 256

// UserInput is the full set of user-editable account fields.
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in UserInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, caller ledger.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, caller ledger.Principal, id string, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, caller ledger.Principal, id string) error
	SetAvatar(ctx context.Context, caller ledger.Principal, id string, body io.Reader) (*domain.User, error)
	AvatarURL(ctx context.Context, user *domain.User, expires time.Duration) (string, error)
}

type userService struct {
	users    repository.UserRepository
	avatars  storage.Service
	validate *validator.Validate
}

// NewUserService builds the service; avatars may be nil when no object store is configured.
func NewUserService(users repository.UserRepository, avatars storage.Service) UserService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &userService{
		users:    users,
		avatars:  avatars,
		validate: v,
	}
}

func (s *userService) check(in *UserInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Password = strings.TrimSpace(in.Password)

	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate user: %w", err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return domain.MissingFields(missing...)
	}
	return &domain.ValidationError{Fields: invalid, Reason: "invalid fields"}
}

func (s *userService) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		var req required
		req.text("email", email)
		req.text("password", password)
		return nil, req.err()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) Get(ctx context.Context, caller ledger.Principal, id string) (*domain.User, error) {
	if err := caller.Authorize(id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, caller ledger.Principal, id string, in UserInput) (*domain.User, error) {
	if err := caller.Authorize(id); err != nil {
		return nil, err
	}
	if err := s.check(&in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Name = in.Name
	user.Email = in.Email
	user.PasswordHash = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Delete removes the account. Ledger entries are left in place.
func (s *userService) Delete(ctx context.Context, caller ledger.Principal, id string) error {
	if err := caller.Authorize(id); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if user.Avatar != "" && s.avatars != nil {
		// the account is gone either way; a leftover object is only storage
		_ = s.avatars.Delete(ctx, user.Avatar)
	}
	return nil
}

// SetAvatar stores the uploaded image as a square JPEG thumbnail and replaces any previous one.
func (s *userService) SetAvatar(ctx context.Context, caller ledger.Principal, id string, body io.Reader) (*domain.User, error) {
	if err := caller.Authorize(id); err != nil {
		return nil, err
	}
	if s.avatars == nil {
		return nil, storage.ErrNotConfigured
	}
	thumbnail, err := avatarThumbnail(body)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", id, uuid.NewString())
	if err := s.avatars.Upload(ctx, key, thumbnail, "image/jpeg"); err != nil {
		return nil, domain.Upstream("upload avatar", err)
	}
	if err := s.users.SetAvatar(ctx, id, key); err != nil {
		_ = s.avatars.Delete(ctx, key)
		return nil, err
	}
	if user.Avatar != "" {
		_ = s.avatars.Delete(ctx, user.Avatar)
	}

	user.Avatar = key
	return sanitizeUser(user), nil
}

func avatarThumbnail(body io.Reader) (*bytes.Buffer, error) {
	img, err := imaging.Decode(body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.InvalidField("avatar", "unsupported image")
	}
	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return &buf, nil
}

// AvatarURL returns a time-limited link to the user's avatar, or "" when there is none.
func (s *userService) AvatarURL(ctx context.Context, user *domain.User, expires time.Duration) (string, error) {
	if user == nil || user.Avatar == "" || s.avatars == nil {
		return "", nil
	}
	url, err := s.avatars.PresignURL(ctx, user.Avatar, expires)
	if err != nil {
		return "", domain.Upstream("presign avatar", err)
	}
	return url, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
