package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the passcode or identity was not accepted.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// SessionTTL is how long an unlocked session stays valid.
const SessionTTL = 24 * time.Hour

// AccessOptions configures how the owner unlocks the tracker.
type AccessOptions struct {
	// PasscodeHash is a bcrypt hash. Empty disables passcode login.
	PasscodeHash string
	// Owner is the identity accepted from forward auth and SSO.
	Owner string
	// ForwardAuth trusts the Remote-User header set by a reverse proxy.
	ForwardAuth bool
	// SSO reports whether an OIDC provider is configured.
	SSO bool
}

// HashPasscode returns a bcrypt hash of passcode.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passcode: %w", err)
	}
	return string(hash), nil
}

// AccessService gates the single owner's access with sessions.
type AccessService struct {
	sessions domain.SessionRepository
	opts     AccessOptions
	now      func() time.Time
}

// NewAccessService creates a new access service.
func NewAccessService(sessions domain.SessionRepository, opts AccessOptions) *AccessService {
	return &AccessService{sessions: sessions, opts: opts, now: time.Now}
}

// Enabled reports whether any lock is configured. Without one every
// request is let through.
func (s *AccessService) Enabled() bool {
	return s.opts.PasscodeHash != "" || s.opts.ForwardAuth || s.opts.SSO
}

// SSOEnabled reports whether SSO login is offered.
func (s *AccessService) SSOEnabled() bool {
	return s.opts.SSO
}

// Login checks the passcode and creates a session.
func (s *AccessService) Login(ctx context.Context, passcode, userAgent string) (string, error) {
	if s.opts.PasscodeHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.opts.PasscodeHash), []byte(passcode)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.startSession(ctx, "passcode", userAgent)
}

// LoginWithIdentity creates a session for an identity already verified
// elsewhere (e.g. via SSO). Only the owner is accepted.
func (s *AccessService) LoginWithIdentity(ctx context.Context, identity, userAgent string) (string, error) {
	if !s.isOwner(identity) {
		return "", ErrInvalidCredentials
	}
	return s.startSession(ctx, identity, userAgent)
}

// ValidateForwardAuth reports whether the Remote-User header set by a
// trusted proxy names the owner.
func (s *AccessService) ValidateForwardAuth(remoteUser string) bool {
	return s.opts.ForwardAuth && s.isOwner(remoteUser)
}

// ValidateSession checks that a session token is live and was issued to the
// same user agent.
func (s *AccessService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.Session, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Logout invalidates a session.
func (s *AccessService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// PurgeExpired removes sessions past their expiry.
func (s *AccessService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *AccessService) isOwner(identity string) bool {
	if identity == "" || s.opts.Owner == "" {
		return false
	}
	return ConstantTimeCompare(identity, s.opts.Owner)
}

func (s *AccessService) startSession(ctx context.Context, subject, userAgent string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	err = s.sessions.Create(ctx, domain.Session{
		Token:     token,
		Subject:   subject,
		UserAgent: userAgent,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
