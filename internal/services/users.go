package services

import (
	"context"
	"strings"

	"gym-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

func FindUserByUsername(ctx context.Context, q sqlx.QueryerContext, username string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT id, username, password, role FROM users WHERE username = $1`, username)
	return user, err
}

func ListUsers(ctx context.Context, q sqlx.QueryerContext) ([]models.User, error) {
	users := []models.User{}
	err := sqlx.SelectContext(ctx, q, &users, `SELECT id, username, password, role FROM users ORDER BY id`)
	return users, err
}

// SeedUser creates the account or resets its password and role. Accounts are
// only ever created this way, never through the web surface.
func SeedUser(ctx context.Context, db sqlx.ExtContext, tokens TokenService, username, password, role string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrBadRequest("Username and password are required")
	}
	if !ValidRole(role) {
		return 0, ErrBadRequest("Unknown role: " + role)
	}
	hash, err := tokens.HashPassword(password)
	if err != nil {
		return 0, WrapError(err, "hash password")
	}
	var id int64
	err = db.QueryRowxContext(ctx, `
INSERT INTO users (username, password, role)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role
RETURNING id
`, username, hash, role).Scan(&id)
	if err != nil {
		return 0, MapStoreError(err, "seed user "+username)
	}
	return id, nil
}
