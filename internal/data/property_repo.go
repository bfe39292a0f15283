package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/database"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/pgxutil"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// PropertyRepo provides database operations for properties.
type PropertyRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPropertyRepo creates a new PropertyRepo with real time provider.
func NewPropertyRepo(db *sql.DB) *PropertyRepo {
	return &PropertyRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPropertyRepoWithTimeProvider creates a new PropertyRepo with a custom time provider (useful for tests).
func NewPropertyRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PropertyRepo {
	return &PropertyRepo{DB: db, timeProvider: tp}
}

const (
	propertyColumnsClause = `id, owner_id, address, city, state, postal_code, year_built, created_at, updated_at`

	propertyGetByIDQuery = `
		SELECT ` + propertyColumnsClause + `
		FROM properties
		WHERE id = $1`
)

// Create inserts a new property owned by the given user.
func (r *PropertyRepo) Create(ctx context.Context, ownerID string, req model.CreatePropertyRequest) (*model.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, errors.New("owner id is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Property
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO properties (
				owner_id, address, city, state, postal_code, year_built, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+propertyColumnsClause,
			ownerID,
			strings.TrimSpace(req.Address),
			strings.TrimSpace(req.City),
			strings.TrimSpace(req.State),
			strings.TrimSpace(req.PostalCode),
			req.YearBuilt,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Property])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a property by ID.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, propertyGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		property, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Property])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property by ID: %w", err)
	}
	return &property, nil
}

// List retrieves properties with optional filters and sorting.
func (r *PropertyRepo) List(ctx context.Context, opts model.PropertiesListOptions) ([]*model.Property, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	queryOpts := r.buildPropertyQueryOptions(opts, limit, offset)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.Property
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Property])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	res := make([]*model.Property, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a property.
func (r *PropertyRepo) Update(ctx context.Context, id string, req model.UpdatePropertyRequest) (*model.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Property
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, propertyGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Property])
			return e
		}
		args = append(args, id)
		query := "UPDATE properties SET " + setClause + " WHERE id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING " + propertyColumnsClause
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Property])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a property.
func (r *PropertyRepo) buildUpdateClause(req model.UpdatePropertyRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Address))
	}
	if req.City != nil {
		setParts = append(setParts, fmt.Sprintf("city = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.City))
	}
	if req.State != nil {
		setParts = append(setParts, fmt.Sprintf("state = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.State))
	}
	if req.PostalCode != nil {
		setParts = append(setParts, fmt.Sprintf("postal_code = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.PostalCode))
	}
	if req.YearBuilt != nil {
		setParts = append(setParts, fmt.Sprintf("year_built = $%d", nextIdx()))
		args = append(args, *req.YearBuilt)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a property by ID.
func (r *PropertyRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete property: %w", err)
	}
	return rows > 0, nil
}

// propertyColumns returns the standard column list for dynamic property queries.
func propertyColumns() []string {
	return []string{
		"id",
		"owner_id",
		"address",
		"city",
		"state",
		"postal_code",
		"year_built",
		"created_at",
		"updated_at",
	}
}

// buildPropertyQueryOptions builds query options for property listing with filters and sorting.
func (r *PropertyRepo) buildPropertyQueryOptions(
	opts model.PropertiesListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(propertyColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.OwnerID != nil && strings.TrimSpace(*opts.OwnerID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("owner_id", database.Equal, strings.TrimSpace(*opts.OwnerID)),
		))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("address", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, "created_at", map[string]string{
		"address":    "address",
		"city":       "city",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("properties", queryOpts...)
}
