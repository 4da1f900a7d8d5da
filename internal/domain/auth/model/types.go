package model

import "time"

// UserIdentity is the authenticated subject exposed to the rest of the
// system. It never carries the password hash.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserRecord is the stored account shape the credential verifier reads.
// PasswordHash stays inside the auth domain.
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity strips the record down to its public claims.
func (r UserRecord) Identity() UserIdentity {
	return UserIdentity{
		ID:    r.ID,
		Email: r.Email,
		Name:  r.Name,
	}
}

// Logger provides the minimal logging contract required by the auth domain.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
