package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/database"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data/pgxutil"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
)

// MessageRepo provides database operations for direct messages.
type MessageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMessageRepo creates a new MessageRepo with real time provider.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewMessageRepoWithTimeProvider creates a new MessageRepo with a custom time provider (useful for tests).
func NewMessageRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: tp}
}

const messageColumnsClause = `id, sender_id, recipient_id, report_id, body, read_at, created_at`

// Create inserts a new message from the given sender.
func (r *MessageRepo) Create(ctx context.Context, senderID string, req model.SendMessageRequest) (*model.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(senderID) == "" {
		return nil, errors.New("sender id is required")
	}

	var out model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO messages (
				sender_id, recipient_id, report_id, body, created_at
			) VALUES ($1, $2, $3, $4, $5)
			RETURNING `+messageColumnsClause,
			senderID,
			strings.TrimSpace(req.RecipientID),
			req.ReportID,
			strings.TrimSpace(req.Body),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// ListConversation retrieves messages exchanged between two users, in either
// direction, newest first by default when NewestFirst is set.
func (r *MessageRepo) ListConversation(ctx context.Context, opts model.MessagesListOptions) ([]*model.Message, error) {
	if strings.TrimSpace(opts.UserID) == "" || strings.TrimSpace(opts.OtherUserID) == "" {
		return nil, errors.New("both conversation participants are required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "sender_id", "recipient_id", "report_id", "body", "read_at", "created_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithCondition(
			database.WhereCond("sender_id", database.In, []any{opts.UserID, opts.OtherUserID}),
		),
		database.WithCondition(
			database.WhereCond("recipient_id", database.In, []any{opts.UserID, opts.OtherUserID}),
		),
	}
	if opts.ReportID != nil && strings.TrimSpace(*opts.ReportID) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("report_id", database.Equal, strings.TrimSpace(*opts.ReportID)),
		))
	}
	if opts.UnreadOnly {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("read_at", database.IsNull, nil),
		))
	}
	dir := sortDirAsc
	if opts.NewestFirst {
		dir = sortDirDesc
	}
	queryOpts = append(queryOpts, database.WithOrderBy("created_at", dir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("messages", queryOpts...))

	var rowsOut []model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	res := make([]*model.Message, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead stamps read_at on a message. Only the recipient may mark a message
// read, and an already-read message is left untouched.
func (r *MessageRepo) MarkRead(ctx context.Context, id, recipientID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE messages
			SET read_at = $3
			WHERE id = $1 AND recipient_id = $2 AND read_at IS NULL`,
			id, recipientID, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark message read: %w", err)
	}
	return rows > 0, nil
}

func (r *MessageRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && strings.Contains(pgErr.ConstraintName, "report") {
		return ErrReportNotFound
	}
	return err
}
