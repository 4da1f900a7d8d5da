// Package auth implements the session authentication boundary: credential
// verification, signed session tokens and the per-request route guard.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"matmind-server-go/internal/domain/auth/model"
	"matmind-server-go/internal/domain/auth/store"
	platformerrors "matmind-server-go/internal/platform/errors"
)

type (
	// UserIdentity re-exports the shared auth entity for callers.
	UserIdentity = model.UserIdentity
	// Logger re-exports the logging interface used across the domain.
	Logger = model.Logger
)

// ErrInvalidCredentials is the single failure every credential-path problem
// collapses into. Callers must not be able to tell a malformed email from an
// unknown account or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	maxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// Verifier checks login credentials against the user store.
type Verifier struct {
	users  store.Store
	logger Logger
}

// NewVerifier wires a Verifier to its user store.
func NewVerifier(users store.Store, logger Logger) (*Verifier, error) {
	if users == nil {
		return nil, errors.New("credential verifier requires a user store")
	}
	if logger == nil {
		return nil, errors.New("credential verifier requires a logger")
	}
	return &Verifier{users: users, logger: logger}, nil
}

// NormalizeEmail trims whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return email != "" && len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

func validPassword(password string) bool {
	return len(password) >= minPasswordLength && len(password) <= maxPasswordLength
}

// VerifyCredentials authenticates an email/password pair. Every rejection
// reason returns ErrInvalidCredentials; only store faults surface as a
// storage error so the transport layer can respond 500 instead of 401.
func (v *Verifier) VerifyCredentials(
	ctx context.Context,
	email string,
	password string,
) (UserIdentity, error) {
	normalized := NormalizeEmail(email)

	if !validEmail(normalized) || !validPassword(password) {
		v.logger.Debug("login rejected: input validation failed")
		return UserIdentity{}, ErrInvalidCredentials
	}

	record, ok, err := v.users.FindByEmail(ctx, normalized)
	if err != nil {
		v.logger.Error("user store lookup failed: %v", err)
		return UserIdentity{}, platformerrors.Wrap(
			platformerrors.KindStorage, "verify_credentials", "user lookup failed", err)
	}
	if !ok {
		v.logger.Debug("login rejected: unknown email")
		return UserIdentity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(record.PasswordHash),
		[]byte(password),
	); err != nil {
		v.logger.Debug("login rejected: password mismatch for %s", record.ID)
		return UserIdentity{}, ErrInvalidCredentials
	}

	return record.Identity(), nil
}

// Register creates a user record with a bcrypt hash of the password. Input
// rules match the login path so accounts are always loginable.
func (v *Verifier) Register(
	ctx context.Context,
	id string,
	email string,
	name string,
	password string,
) (UserIdentity, error) {
	normalized := NormalizeEmail(email)
	if !validEmail(normalized) || !validPassword(password) {
		return UserIdentity{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserIdentity{}, platformerrors.Wrap(
			platformerrors.KindAuth, "register", "failed to hash password", err)
	}

	record := model.UserRecord{
		ID:           id,
		Email:        normalized,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := v.users.Create(ctx, record); err != nil {
		v.logger.Error("user create failed: %v", err)
		return UserIdentity{}, platformerrors.Wrap(
			platformerrors.KindStorage, "register", "failed to create user", err)
	}
	return record.Identity(), nil
}
