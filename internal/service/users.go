package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Two-factor attempt limits per pending sign-in. Admin users get the
// stricter limit.
const (
	maxTwoFactorAttempts      = 5
	maxAdminTwoFactorAttempts = 3
)

// UserService handles registration, sign-in and profile updates. Passwords
// are stored as bcrypt hashes; the two-factor step is a demo stub that
// accepts any six-digit code.
type UserService struct {
	dir      *directory.Directory
	activity *activity.Logger
	logger   *slog.Logger

	mu       sync.Mutex
	attempts map[string]int
}

// NewUserService creates a new UserService
func NewUserService(dir *directory.Directory, act *activity.Logger, logger *slog.Logger) *UserService {
	return &UserService{
		dir:      dir,
		activity: act,
		logger:   logger,
		attempts: make(map[string]int),
	}
}

// SignUpParams carries the personal details collected at registration
type SignUpParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	Address     string
	City        string
	State       string
	ZipCode     string
	SSN         string
	Password    string
}

// SignUp registers a new user
func (s *UserService) SignUp(ctx context.Context, p SignUpParams) (*models.User, error) {
	if err := s.validateSignUp(p); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to hash password", Err: err}
	}

	user := models.User{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		DateOfBirth:  p.DateOfBirth,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		SSN:          p.SSN,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.dir.Update(ctx, func(ctx context.Context) error {
		users, err := s.dir.Users(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load users", Err: err}
		}

		for _, existing := range users {
			if existing.Email == p.Email {
				return &ServiceError{Code: ErrCodeAlreadyExists, Message: "email already registered"}
			}
		}

		return s.dir.SaveUsers(ctx, append(users, user))
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeUser, "signup",
		fmt.Sprintf("New user registered: %s", user.FullName()), user.Email)

	redacted := user
	redacted.PasswordHash = ""
	return &redacted, nil
}

func (s *UserService) validateSignUp(p SignUpParams) error {
	if p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Phone == "" {
		return &ServiceError{Code: ErrCodeInvalidInput, Message: "please fill in all required fields"}
	}
	if err := ValidateEmail(p.Email); err != nil {
		return &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	if p.ZipCode != "" {
		if err := ValidateZipCode(p.ZipCode); err != nil {
			return &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
		}
	}
	if p.SSN != "" {
		if err := ValidateSSN(p.SSN); err != nil {
			return &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
		}
	}
	if err := ValidatePassword(p.Password); err != nil {
		return &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
	}
	return nil
}

// Login verifies credentials. Sign-in completes only after the two-factor
// step; Login itself does not mark the user as signed in.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.dir.UserByEmail(ctx, email)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidCredentials, Message: "invalid email or password"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.activity.Record(ctx, models.LogTypeAuth, "login_failed", "Failed login attempt", email)
		return nil, &ServiceError{Code: ErrCodeInvalidCredentials, Message: "invalid email or password"}
	}

	// a fresh sign-in starts a fresh verification allowance
	s.mu.Lock()
	delete(s.attempts, email)
	s.mu.Unlock()

	redacted := *user
	redacted.PasswordHash = ""
	return &redacted, nil
}

// VerifyTwoFactor checks the demo verification code and completes sign-in
// by setting the current-user flag. Attempts are bounded per pending
// sign-in; the counter resets on success or on a fresh login.
func (s *UserService) VerifyTwoFactor(ctx context.Context, email, code string) error {
	user, err := s.dir.UserByEmail(ctx, email)
	if err != nil {
		return &ServiceError{Code: ErrCodeNotFound, Message: "user not found"}
	}

	limit := maxTwoFactorAttempts
	if user.IsAdmin {
		limit = maxAdminTwoFactorAttempts
	}

	s.mu.Lock()
	if s.attempts[email] >= limit {
		s.mu.Unlock()
		return &ServiceError{Code: ErrCodeTooManyAttempts, Message: "too many failed attempts, please try again later"}
	}
	s.mu.Unlock()

	if err := ValidateTwoFactorCode(code); err != nil {
		s.mu.Lock()
		s.attempts[email]++
		remaining := limit - s.attempts[email]
		s.mu.Unlock()
		return &ServiceError{
			Code:    ErrCodeInvalidCode,
			Message: fmt.Sprintf("invalid code, %d attempts remaining", remaining),
		}
	}

	s.mu.Lock()
	delete(s.attempts, email)
	s.mu.Unlock()

	if err := s.dir.SetCurrentUserEmail(ctx, email); err != nil {
		return &ServiceError{Code: ErrCodeInternalError, Message: "failed to record sign-in", Err: err}
	}

	s.activity.Record(ctx, models.LogTypeAuth, "login", "User signed in", email)
	return nil
}

// Logout clears the current-user flag
func (s *UserService) Logout(ctx context.Context, email string) error {
	if err := s.dir.SetCurrentUserEmail(ctx, ""); err != nil {
		return &ServiceError{Code: ErrCodeInternalError, Message: "failed to clear sign-in", Err: err}
	}
	s.activity.Record(ctx, models.LogTypeAuth, "logout", "User signed out", email)
	return nil
}

// ProfileUpdate carries the mutable profile fields. Email is the immutable
// record key and cannot change.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// UpdateProfile applies profile edits for the given user
func (s *UserService) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.User, error) {
	if update.ZipCode != "" {
		if err := ValidateZipCode(update.ZipCode); err != nil {
			return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: err.Error()}
		}
	}

	var updated models.User
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		users, err := s.dir.Users(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load users", Err: err}
		}

		for i := range users {
			if users[i].Email != email {
				continue
			}
			applyProfileUpdate(&users[i], update)
			updated = users[i]
			return s.dir.SaveUsers(ctx, users)
		}
		return &ServiceError{Code: ErrCodeNotFound, Message: "user not found"}
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeUser, "profile_updated", "Profile details changed", email)

	updated.PasswordHash = ""
	return &updated, nil
}

func applyProfileUpdate(user *models.User, update ProfileUpdate) {
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.ZipCode != "" {
		user.ZipCode = update.ZipCode
	}
}

// SeedAdmin ensures the configured admin user exists. The credential comes
// from configuration, never from source.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return s.dir.Update(ctx, func(ctx context.Context) error {
		users, err := s.dir.Users(ctx)
		if err != nil {
			return err
		}

		for _, existing := range users {
			if existing.Email == email {
				return nil
			}
		}

		admin := models.User{
			FirstName:    "Admin",
			LastName:     "User",
			Email:        email,
			PasswordHash: string(hash),
			IsAdmin:      true,
			CreatedAt:    time.Now(),
		}
		s.logger.Info("seeding admin user", "email", email)
		return s.dir.SaveUsers(ctx, append(users, admin))
	})
}
