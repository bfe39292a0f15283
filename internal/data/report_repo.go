package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/database"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/pgxutil"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// ReportRepo provides database operations for damage reports.
type ReportRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewReportRepo creates a new ReportRepo with real time provider.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewReportRepoWithTimeProvider creates a new ReportRepo with a custom time provider (useful for tests).
func NewReportRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ReportRepo {
	return &ReportRepo{DB: db, timeProvider: tp}
}

const (
	reportColumnsClause = `id, property_id, creator_id, adjuster_id, title, description, status, incident_date, created_at, updated_at`

	reportGetByIDQuery = `
		SELECT ` + reportColumnsClause + `
		FROM reports
		WHERE id = $1`
)

// Create files a new report against a property. New reports always start in
// draft status.
func (r *ReportRepo) Create(ctx context.Context, creatorID string, req model.CreateReportRequest) (*model.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(creatorID) == "" {
		return nil, errors.New("creator id is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Report
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO reports (
				property_id, creator_id, title, description, status, incident_date, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+reportColumnsClause,
			req.PropertyID,
			creatorID,
			strings.TrimSpace(req.Title),
			req.Description,
			model.ReportStatusDraft,
			req.IncidentDate,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a report by ID.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	var report model.Report
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, reportGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		report, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report by ID: %w", err)
	}
	return &report, nil
}

// List retrieves reports with optional filters and sorting.
func (r *ReportRepo) List(ctx context.Context, opts model.ReportsListOptions) ([]*model.Report, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	queryOpts := r.buildReportQueryOptions(opts, limit, offset)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.Report
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Report])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	res := make([]*model.Report, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a report.
func (r *ReportRepo) Update(ctx context.Context, id string, req model.UpdateReportRequest) (*model.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Report
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, reportGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
			return e
		}
		args = append(args, id)
		query := "UPDATE reports SET " + setClause + " WHERE id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING " + reportColumnsClause
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a report.
func (r *ReportRepo) buildUpdateClause(req model.UpdateReportRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.AdjusterID != nil {
		if strings.TrimSpace(*req.AdjusterID) == "" {
			setParts = append(setParts, "adjuster_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("adjuster_id = $%d", nextIdx()))
			args = append(args, *req.AdjusterID)
		}
	}
	if req.IncidentDate != nil {
		setParts = append(setParts, fmt.Sprintf("incident_date = $%d", nextIdx()))
		args = append(args, *req.IncidentDate)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a report by ID.
func (r *ReportRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	return rows > 0, nil
}

// reportColumns returns the standard column list for dynamic report queries.
func reportColumns() []string {
	return []string{
		"id",
		"property_id",
		"creator_id",
		"adjuster_id",
		"title",
		"description",
		"status",
		"incident_date",
		"created_at",
		"updated_at",
	}
}

// buildReportQueryOptions builds query options for report listing with filters and sorting.
func (r *ReportRepo) buildReportQueryOptions(
	opts model.ReportsListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(reportColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.PropertyID != nil && strings.TrimSpace(*opts.PropertyID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("property_id", database.Equal, strings.TrimSpace(*opts.PropertyID)),
		))
	}
	if opts.CreatorID != nil && strings.TrimSpace(*opts.CreatorID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("creator_id", database.Equal, strings.TrimSpace(*opts.CreatorID)),
		))
	}
	if opts.Status != nil && opts.Status.Valid() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, string(*opts.Status)),
		))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, "created_at", map[string]string{
		"title":      "title",
		"status":     "status",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("reports", queryOpts...)
}

func (r *ReportRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrReportNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.TableName == "reports" {
		return ErrPropertyNotFound
	}
	return err
}
