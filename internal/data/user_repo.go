package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/pgxutil"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// UserRepo provides database operations for the legacy user directory.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	userColumnsClause = `id, auth_id, email, first_name, last_name, role, password_hash, confirmed_at, created_at, updated_at`

	userGetByIDQuery = `
		SELECT ` + userColumnsClause + `
		FROM users
		WHERE id = $1`

	userGetByAuthIDQuery = `
		SELECT ` + userColumnsClause + `
		FROM users
		WHERE auth_id = $1`

	userGetByEmailQuery = `
		SELECT ` + userColumnsClause + `
		FROM users
		WHERE lower(email) = lower($1)`
)

// Create inserts a new user record. When an auth id is supplied, an incomplete
// profile stub keyed by that auth id is created in the same transaction so the
// profile-completion flow always has a row to update.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.User
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO users (
				auth_id, email, first_name, last_name, role, password_hash, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+userColumnsClause,
			params.AuthID,
			email,
			strings.TrimSpace(params.FirstName),
			strings.TrimSpace(params.LastName),
			params.Role,
			params.PasswordHash,
			createdAt,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return err
		}

		if params.AuthID == nil {
			return nil
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, role, profile_complete, created_at)
			VALUES ($1, $2, FALSE, $3)
			ON CONFLICT (user_id) DO NOTHING`,
			*params.AuthID, params.Role, createdAt)
		return err
	}})
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a user by record id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// GetByAuthID retrieves a user by its auth-service identifier.
func (r *UserRepo) GetByAuthID(ctx context.Context, authID string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByAuthIDQuery, "failed to get user by auth ID", authID)
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, "failed to get user by email", email)
}

// AttachAuthID writes the given auth-service id onto the record, repairing a
// stale or missing foreign key. Already-correct rows are left untouched, which
// keeps the operation idempotent.
func (r *UserRepo) AttachAuthID(ctx context.Context, id, authID string) (bool, error) {
	var rowsAffected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE users
			SET auth_id = $2, updated_at = $3
			WHERE id = $1 AND (auth_id IS DISTINCT FROM $2)`,
			id, authID, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		rowsAffected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to attach auth id: %w", err)
	}
	return rowsAffected > 0, nil
}

// getByQuery executes a query and returns a single user.
func (r *UserRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUserEmailExists
	}
	return err
}
