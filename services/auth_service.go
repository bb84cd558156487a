package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"netflix-clone-backend/helper"
	"netflix-clone-backend/models"
)

type AuthService struct {
	users    models.UserStore
	tokens   *TokenService
	throttle LoginThrottle
	log      *logrus.Logger
}

func NewAuthService(users models.UserStore, tokens *TokenService, throttle LoginThrottle, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
		log:      log,
	}
}

// Register creates a password-based account. The email existence check
// and the unique index on email both map duplicates to ErrUserExists,
// so racing signups cannot produce two accounts.
func (s *AuthService) Register(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, models.ErrInvalidRole
	}

	email := helper.NormalizeEmail(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, models.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     helper.NormalizeName(req.Name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return nil, models.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithFields(logrus.Fields{"email": email, "user_id": user.ID.Hex()}).Info("user registered")

	return user, nil
}

// Authenticate verifies an email/password pair and issues a session
// token. clientIP feeds the throttle key; an empty value is fine.
func (s *AuthService) Authenticate(ctx context.Context, req *models.LoginRequest, clientIP string) (string, *models.User, error) {
	email := helper.NormalizeEmail(req.Email)

	if !s.throttle.Allow(email + "|" + clientIP) {
		return "", nil, models.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Google-only accounts carry no password hash and can never pass
	// a password check.
	if user.Password == "" {
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.WithField("email", email).Info("user logged in")

	return token, user, nil
}

// CheckExists reports whether an account with the email exists. A
// missing account is a normal answer, not an error, and nothing about
// passwords is consulted.
func (s *AuthService) CheckExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, helper.NormalizeEmail(email))
	if errors.Is(err, models.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return true, nil
}

// VerifySession validates a session token and re-fetches the user from
// storage rather than trusting the token payload.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrNoToken
	}

	claims, err := s.tokens.ParseSessionToken(token)
	if err != nil {
		return nil, models.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

// GoogleAuthenticate bridges a Google identity to a local account.
// First sign-in for an email creates a password-less Visitor account;
// later sign-ins backfill googleId when it is still unset and refresh
// the picture whenever one is provided. An existing password credential
// is never touched.
func (s *AuthService) GoogleAuthenticate(ctx context.Context, req *models.GoogleLoginRequest) (string, *models.User, error) {
	email := helper.NormalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		user = &models.User{
			Name:     helper.NormalizeName(req.Name),
			Email:    email,
			GoogleID: req.GoogleID,
			Picture:  req.Picture,
			Role:     models.RoleVisitor,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return "", nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.WithFields(logrus.Fields{"email": email, "user_id": user.ID.Hex()}).Info("user created via google login")
	} else {
		googleID := ""
		if req.GoogleID != "" && user.GoogleID == "" {
			googleID = req.GoogleID
		}
		if googleID != "" || req.Picture != "" {
			if err := s.users.UpdateGoogleIdentity(ctx, user.ID, googleID, req.Picture); err != nil {
				return "", nil, fmt.Errorf("failed to update google identity: %w", err)
			}
			if googleID != "" {
				user.GoogleID = googleID
			}
			if req.Picture != "" {
				user.Picture = req.Picture
			}
		}
	}

	token, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
