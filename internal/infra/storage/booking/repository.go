package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/dbmetrics"
	"github.com/Cappie92/bookme-sub002/pkg/psqlbuilder"
)

// Repository read-only репозиторий записей клиентов.
// Записи принадлежат подсистеме бронирования; планировщик расписания
// их читает для детекции конфликтов и никогда не изменяет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByOwnerAndDateRange получает активные записи работника
// за период [from, to] (границы включительно)
func (r *Repository) GetActiveByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"booking_date",
		"start_time",
		"end_time",
		"work_type",
		"status",
	).
		From("bookings").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": []domain.BookingStatus{
			domain.BookingStatusPending,
			domain.BookingStatusConfirmed,
		}}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOwnerAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOwnerAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс записей
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking

		err := rows.Scan(
			&b.ID,
			&b.OwnerID,
			&b.Date,
			&b.StartTime,
			&b.EndTime,
			&b.WorkType,
			&b.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.Date = domain.DateOnly(b.Date)
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
