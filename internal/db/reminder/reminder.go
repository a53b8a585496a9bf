package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const reminderColumns = "id, user_id, message, created_at, at, scheduled_at, fired_at, status"

type PgxReminderRepository struct {
	db DBTX
}

func NewPgxReminderRepository(db DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder (user_id, message, created_at, at, scheduled_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+reminderColumns,
		string(input.UserID),
		input.Message,
		input.CreatedAt,
		input.At,
		encodeOptionalTime(input.ScheduledAt),
		input.Status.String(),
	)
	return decodeReminder(row)
}

func (r *PgxReminderRepository) GetByID(
	ctx context.Context,
	id reminder.ID,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+reminderColumns+` FROM reminder WHERE id = $1`,
		int64(id),
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) GetLatestFired(
	ctx context.Context,
	userID user.ID,
) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+reminderColumns+` FROM reminder
		 WHERE user_id = $1 AND status = $2 AND fired_at IS NOT NULL
		 ORDER BY fired_at DESC
		 LIMIT 1`,
		string(userID),
		reminder.StatusFired.String(),
	)
	rem, err = decodeReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) (reminders []reminder.Reminder, err error) {
	query, args := buildReadQuery("SELECT "+reminderColumns+" FROM reminder", options)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return reminders, err
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Count(
	ctx context.Context,
	options reminder.ReadOptions,
) (uint, error) {
	countOptions := options
	countOptions.OrderBy = reminder.OrderByNotSet
	countOptions.Limit = c.Optional[uint]{}
	query, args := buildReadQuery("SELECT COUNT(*) FROM reminder", countOptions)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxReminderRepository) Update(
	ctx context.Context,
	input reminder.UpdateInput,
) (rem reminder.Reminder, err error) {
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 8)

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if input.DoAtUpdate {
		set = append(set, "at = "+arg(input.At))
	}
	if input.DoStatusUpdate {
		set = append(set, "status = "+arg(input.Status.String()))
	}
	if input.DoFiredAtUpdate {
		set = append(set, "fired_at = "+arg(encodeOptionalTime(input.FiredAt)))
	}
	if input.DoScheduledAtUpdate {
		set = append(set, "scheduled_at = "+arg(encodeOptionalTime(input.ScheduledAt)))
	}
	if len(set) == 0 {
		return rem, e.NewInvalidStateError("update input does not update anything")
	}

	where := []string{"id = " + arg(int64(input.ID))}
	if input.ExpectStatus.IsPresent {
		where = append(where, "status = "+arg(input.ExpectStatus.Value.String()))
	}
	if input.ExpectFiredAt.IsPresent {
		where = append(where, "fired_at = "+arg(input.ExpectFiredAt.Value))
	}
	if input.ExpectDueBy.IsPresent {
		where = append(where, "at <= "+arg(input.ExpectDueBy.Value))
	}

	query := fmt.Sprintf(
		"UPDATE reminder SET %s WHERE %s RETURNING %s",
		strings.Join(set, ", "),
		strings.Join(where, " AND "),
		reminderColumns,
	)
	rem, err = decodeReminder(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) Schedule(
	ctx context.Context,
	input reminder.ScheduleInput,
) (reminders []reminder.Reminder, err error) {
	rows, err := r.db.Query(
		ctx,
		`UPDATE reminder SET scheduled_at = $1
		 WHERE status = $2
		   AND at <= $3
		   AND (scheduled_at IS NULL OR scheduled_at <= $4)
		 RETURNING `+reminderColumns,
		input.ScheduledAt,
		reminder.StatusPending.String(),
		input.AtBefore,
		input.RequeueBefore,
	)
	if err != nil {
		return reminders, err
	}
	defer rows.Close()

	reminders = make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := decodeReminder(rows)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *PgxReminderRepository) Delete(ctx context.Context, input reminder.DeleteInput) error {
	args := []interface{}{int64(input.ID)}
	where := []string{"id = $1"}
	if input.ExpectStatus.IsPresent {
		args = append(args, input.ExpectStatus.Value.String())
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.ExpectFiredAt.IsPresent {
		args = append(args, input.ExpectFiredAt.Value)
		where = append(where, fmt.Sprintf("fired_at = $%d", len(args)))
	}

	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM reminder WHERE "+strings.Join(where, " AND "),
		args...,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) DeleteByUserID(ctx context.Context, userID user.ID) (uint, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM reminder WHERE user_id = $1", string(userID))
	if err != nil {
		return 0, err
	}
	return uint(tag.RowsAffected()), nil
}

func (r *PgxReminderRepository) DeleteFiredBefore(
	ctx context.Context,
	firedBefore time.Time,
) (uint, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM reminder WHERE status = $1 AND fired_at < $2",
		reminder.StatusFired.String(),
		firedBefore,
	)
	if err != nil {
		return 0, err
	}
	return uint(tag.RowsAffected()), nil
}

func buildReadQuery(prefix string, options reminder.ReadOptions) (string, []interface{}) {
	args := make([]interface{}, 0, 2)
	where := make([]string, 0, 2)
	if options.UserIDEquals.IsPresent {
		args = append(args, string(options.UserIDEquals.Value))
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if options.StatusEquals.IsPresent {
		args = append(args, options.StatusEquals.Value.String())
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	switch options.OrderBy {
	case reminder.OrderByAtAsc:
		sb.WriteString(" ORDER BY at ASC")
	case reminder.OrderByAtDesc:
		sb.WriteString(" ORDER BY at DESC")
	case reminder.OrderByFiredAtDesc:
		sb.WriteString(" ORDER BY fired_at DESC NULLS LAST")
	}
	if options.Limit.IsPresent {
		args = append(args, int64(options.Limit.Value))
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return sb.String(), args
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func decodeReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id          int64
		userID      string
		scheduledAt sql.NullTime
		firedAt     sql.NullTime
		status      string
	)
	err = row.Scan(
		&id,
		&userID,
		&rem.Message,
		&rem.CreatedAt,
		&rem.At,
		&scheduledAt,
		&firedAt,
		&status,
	)
	if err != nil {
		return rem, err
	}
	rem.ID = reminder.ID(id)
	rem.UserID = user.ID(userID)
	rem.ScheduledAt = c.NewOptional(scheduledAt.Time, scheduledAt.Valid)
	rem.FiredAt = c.NewOptional(firedAt.Time, firedAt.Valid)
	rem.Status, err = reminder.ParseStatus(status)
	if err != nil {
		return rem, err
	}
	return rem, rem.Validate()
}
