package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/pgxutil"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// ProfileRepo provides database operations for role profiles. Profiles are
// keyed by the auth-service user id, not the legacy user record id.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a new ProfileRepo with a custom time provider (useful for tests).
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

const (
	profileColumnsClause = `user_id, role, profile_complete, phone, company_name, license_number, created_at, updated_at`

	profileGetByUserIDQuery = `
		SELECT ` + profileColumnsClause + `
		FROM profiles
		WHERE user_id = $1`
)

// GetByUserID retrieves the profile for an auth-service user id.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetByUserIDQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		profile, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Upsert writes the completed profile for a user, creating the row when the
// signup flow never produced a stub. A successful upsert always marks the
// profile complete.
func (r *ProfileRepo) Upsert(ctx context.Context, userID string, req model.CompleteProfileRequest) (*model.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (
				user_id, role, profile_complete, phone, company_name, license_number, created_at
			) VALUES ($1, $2, TRUE, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				role = EXCLUDED.role,
				profile_complete = TRUE,
				phone = EXCLUDED.phone,
				company_name = EXCLUDED.company_name,
				license_number = EXCLUDED.license_number,
				updated_at = $6
			RETURNING `+profileColumnsClause,
			userID,
			req.Role,
			trimmedOrEmpty(req.Phone),
			trimmedOrEmpty(req.CompanyName),
			trimmedOrEmpty(req.LicenseNumber),
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &out, nil
}
