package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Identity is the authenticated caller of one request.
type Identity struct {
	SessionID string `db:"id"`
	UserID    int64  `db:"user_id"`
	Username  string `db:"username"`
	Role      string `db:"role"`
	Notice    string `db:"notice"`
}

type Session struct {
	ID        string
	UserID    int64
	Role      string
	Token     string
	ExpiresAt time.Time
}

// SessionStore keeps sessions as rows in the sessions table.
type SessionStore struct {
	DB     *sqlx.DB
	Tokens TokenService
	Now    func() time.Time
}

func NewSessionStore(db *sqlx.DB, tokens TokenService) *SessionStore {
	return &SessionStore{DB: db, Tokens: tokens, Now: tokens.now}
}

// Login verifies credentials and opens a session. Unknown user and wrong
// password both yield ErrAuthentication and leave no session behind.
func (s *SessionStore) Login(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrAuthentication
	}
	user, err := FindUserByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrAuthentication
		}
		return Session{}, WrapError(err, "find user")
	}
	if !s.Tokens.VerifyPassword(password, user.PasswordHash) {
		return Session{}, ErrAuthentication
	}
	if !ValidRole(user.Role) {
		return Session{}, ErrAuthentication
	}

	now := s.Now()
	session := Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(s.Tokens.TTL),
	}
	token, err := s.Tokens.CreateSessionToken(session.ID, session.UserID, session.Role, session.ExpiresAt)
	if err != nil {
		return Session{}, WrapError(err, "sign session")
	}
	session.Token = token

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1 AND expires_at <= $2`, user.ID, now); err != nil {
		return Session{}, WrapError(err, "purge sessions")
	}
	if _, err := s.DB.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, role, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
`, session.ID, session.UserID, session.Role, now, session.ExpiresAt); err != nil {
		return Session{}, WrapError(err, "create session")
	}
	return session, nil
}

// Authenticate resolves a session cookie into the caller's identity.
func (s *SessionStore) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.Tokens.ParseSessionToken(token)
	if err != nil {
		return Identity{}, ErrUnauthorized("Session is not valid")
	}
	var identity Identity
	err = sqlx.GetContext(ctx, s.DB, &identity, `
SELECT s.id, s.user_id, u.username, s.role, COALESCE(s.notice, '') AS notice
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.id = $1 AND s.expires_at > $2
`, claims.SessionID, s.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrUnauthorized("Session expired")
		}
		return Identity{}, WrapError(err, "load session")
	}
	return identity, nil
}

func (s *SessionStore) Logout(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return WrapError(err, "delete session")
}

// SetNotice stores a one-shot message shown by the next page.
func (s *SessionStore) SetNotice(ctx context.Context, sessionID, notice string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE sessions SET notice = $2 WHERE id = $1`, sessionID, notice)
	return WrapError(err, "set notice")
}

// PopNotice returns the pending notice loaded with the identity and clears it.
func (s *SessionStore) PopNotice(ctx context.Context, identity Identity) (string, error) {
	if identity.Notice == "" {
		return "", nil
	}
	if _, err := s.DB.ExecContext(ctx, `UPDATE sessions SET notice = NULL WHERE id = $1`, identity.SessionID); err != nil {
		return "", WrapError(err, "clear notice")
	}
	return identity.Notice, nil
}
