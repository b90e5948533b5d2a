package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrPhoneTaken         = errors.New("phone already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConfirmationFailed = errors.New("confirmation failed")
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Extra    string `json:"extra"`
	Password string `json:"password"`
}

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)
)

// NormalizePhone drops all whitespace, so "0989 000 000" and "0989000000"
// name the same account.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone must be 8 to 15 digits", ErrInvalidInput)
	}
	return nil
}

func validateRegistration(in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if err := validatePhone(in.Phone); err != nil {
		return err
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// REGISTER
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = NormalizePhone(in.Phone)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.repo.ExistsByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(in.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Gender:   in.Gender,
		Extra:    in.Extra,
		Role:     RoleCustomer,
		Password: string(hashedPassword),
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN accepts either the email or the phone number as identifier.
func (s *Service) Login(ctx context.Context, identifier, password string) (*User, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) DisplayName(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	previousPhone := user.Phone
	patch.Apply(user)
	user.Name = strings.TrimSpace(user.Name)
	user.Phone = NormalizePhone(user.Phone)
	if user.Name == "" {
		return nil, ErrMissingFields
	}

	if user.Phone != previousPhone {
		if err := validatePhone(user.Phone); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByPhone(ctx, user.Phone)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneTaken
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// PromoteToAdmin grants the admin role after the target user re-confirms
// their identifier and password.
func (s *Service) PromoteToAdmin(
	ctx context.Context,
	userID string,
	confirmIdentifier string,
	confirmPassword string,
) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	confirmIdentifier = strings.TrimSpace(confirmIdentifier)
	if confirmIdentifier != user.Email && (user.Phone == "" || NormalizePhone(confirmIdentifier) != user.Phone) {
		return nil, ErrConfirmationFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(confirmPassword)) != nil {
		return nil, ErrConfirmationFailed
	}

	user.Role = RoleAdmin
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrUserNotFound
	}

	user, err := s.repo.FindByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	return s.repo.FindByPhone(ctx, NormalizePhone(identifier))
}
