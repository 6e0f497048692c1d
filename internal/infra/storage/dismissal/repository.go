package dismissal

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/dbmetrics"
	"github.com/Cappie92/bookme-sub002/pkg/psqlbuilder"
)

// Repository per-owner набор скрытых конфликтов.
// Действие ignore не меняет сами слоты — это display-only переход:
// ключ попадает в этот набор, и конфликт фильтруется из выдачи по умолчанию,
// оставаясь доступным по явному запросу.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория скрытых конфликтов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add добавляет ключи слотов в набор скрытых.
// Повторное скрытие уже скрытого ключа — no-op.
func (r *Repository) Add(ctx context.Context, ownerID int64, keys []domain.SlotKey) error {
	if len(keys) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("dismissed_conflicts").
		Columns("owner_id", "slot_date", "hour", "minute")

	for _, key := range keys {
		insertBuilder = insertBuilder.Values(ownerID, key.Date, key.Hour, key.Minute)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (owner_id, slot_date, hour, minute) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByOwner получает набор скрытых ключей работника начиная с даты.
// Ключи карты совпадают с domain.SlotKey.String().
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64, from time.Time) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_date", "hour", "minute").
		From("dismissed_conflicts").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dismissed := make(map[string]struct{})
	for rows.Next() {
		var key domain.SlotKey
		if err := rows.Scan(&key.Date, &key.Hour, &key.Minute); err != nil {
			return nil, fmt.Errorf("%w: GetByOwner - scan row: %v", ErrScanRow, err)
		}
		key.Date = domain.DateOnly(key.Date)
		dismissed[key.String()] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - rows error: %v", ErrScanRow, err)
	}

	return dismissed, nil
}
