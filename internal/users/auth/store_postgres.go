// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/database/schema"
	"github.com/taibuivan/bookwise/internal/platform/dberr"
)

// Unique constraints on users.account.
const (
	constraintEmail    = "account_email_key"
	constraintUsername = "account_username_key"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var accountColumns = schema.Select("", schema.UserAccount.Columns())

// scanUser reads a row selected with schema.UserAccount.Columns() plus,
// when withPassword is set, a trailing password hash column.
func scanUser(row pgx.Row, withPassword bool) (*User, error) {
	user := &User{}
	targets := []any{
		&user.ID, &user.Email, &user.Name, &user.Username, &user.Bio, &user.Image, &user.Website,
		&user.GoodreadsURL, &user.TwitterURL, &user.FavoriteGenres, &user.ReadingGoal, &user.IsAdmin,
		&user.BooksRead, &user.ReviewsWritten, &user.DiscussionsStarted, &user.JoinedDate, &user.UpdatedAt,
	}
	if withPassword {
		targets = append(targets, &user.PasswordHash)
	}

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (ID, Email, Name, Username and PasswordHash must be set)

Returns:
  - error: Conflict for a taken email or username, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.Name,
		schema.UserAccount.Username, schema.UserAccount.FavoriteGenres, schema.UserAccount.IsAdmin,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	if user.FavoriteGenres == nil {
		user.FavoriteGenres = []string{}
	}

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Username, user.FavoriteGenres, user.IsAdmin,
	).Scan(&user.JoinedDate, &user.UpdatedAt)

	switch {
	case dberr.IsUniqueViolation(err, constraintEmail):
		return apperr.Conflict("Email is already registered")
	case dberr.IsUniqueViolation(err, constraintUsername):
		return apperr.Conflict("Username is already taken")
	}
	return dberr.Wrap(err, "create_user")
}

// FindByID retrieves a user record by its primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id), false)
	if err != nil {
		return nil, dberr.WrapAs(err, "User", "find_user_by_id")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: The password hash is loaded as well, because this is the
lookup used by login.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Password, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email), true)
	if err != nil {
		return nil, dberr.WrapAs(err, "User", "find_user_by_email")
	}
	return user, nil
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := scanUser(repository.pool.QueryRow(context, query, username), false)
	if err != nil {
		return nil, dberr.WrapAs(err, "User", "find_user_by_username")
	}
	return user, nil
}

/*
Update persists the mutable profile fields.

Description: Counters, email and the admin flag are never written here; they
have their own code paths.

Returns:
  - error: apperr.NotFound, Conflict for a taken username, or database errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Username, schema.UserAccount.Bio, schema.UserAccount.Website,
		schema.UserAccount.GoodreadsURL, schema.UserAccount.TwitterURL, schema.UserAccount.FavoriteGenres,
		schema.UserAccount.ReadingGoal, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	if user.FavoriteGenres == nil {
		user.FavoriteGenres = []string{}
	}

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Name, user.Username, user.Bio, user.Website,
		user.GoodreadsURL, user.TwitterURL, user.FavoriteGenres, user.ReadingGoal,
	).Scan(&user.UpdatedAt)

	if dberr.IsUniqueViolation(err, constraintUsername) {
		return apperr.Conflict("Username is already taken")
	}
	return dberr.WrapAs(err, "User", "update_user")
}

// SetPassword replaces the password hash.
func (repository *PostgresUserRepository) SetPassword(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	return repository.execOne(context, query, "set_user_password", userID, passwordHash)
}

// SetAdmin flips the administrator flag.
func (repository *PostgresUserRepository) SetAdmin(context context.Context, userID string, isAdmin bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.IsAdmin, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	return repository.execOne(context, query, "set_user_admin", userID, isAdmin)
}

// IsAdmin reads the administrator flag; missing users are not administrators.
func (repository *PostgresUserRepository) IsAdmin(context context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAccount.IsAdmin, schema.UserAccount.Table, schema.UserAccount.ID)

	var isAdmin bool
	err := repository.pool.QueryRow(context, query, userID).Scan(&isAdmin)
	if dberr.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "read_admin_flag")
	}
	return isAdmin, nil
}

func (repository *PostgresUserRepository) execOne(context context.Context, query, action string, args ...any) error {
	command, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if command.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
