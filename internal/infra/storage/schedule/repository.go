package schedule

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

// Repository репозиторий слотов расписания.
// Хранение разреженное: строка существует только для слота, который
// хоть раз был записан; отсутствие строки читается как нерабочее время.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const slotColumns = "owner_id, slot_date, hour, minute, is_working, work_type, has_conflict, conflict_type, updated_at"

// UpsertBatch записывает батч слотов одним запросом (batch-or-nothing).
// Повторная запись существующего ключа перезаписывает его значения —
// "последняя запись выигрывает". Для атомарности нескольких батчей одной
// логической операции вызывающий код оборачивает их в транзакцию
// (через txmanager); активная транзакция подхватывается из контекста.
func (r *Repository) UpsertBatch(ctx context.Context, slots []domain.ScheduleSlot) (int, error) {
	if len(slots) == 0 {
		return 0, ErrEmptyBatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("schedule_slots").
		Columns(
			"owner_id",
			"slot_date",
			"hour",
			"minute",
			"is_working",
			"work_type",
			"has_conflict",
			"conflict_type",
		)

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(
			slot.OwnerID,
			slot.Date,
			slot.Hour,
			slot.Minute,
			slot.IsWorking,
			slot.WorkType,
			slot.HasConflict,
			slot.ConflictType,
		)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (owner_id, slot_date, hour, minute) DO UPDATE SET
			is_working = EXCLUDED.is_working,
			work_type = EXCLUDED.work_type,
			has_conflict = EXCLUDED.has_conflict,
			conflict_type = EXCLUDED.conflict_type,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UpsertBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpsertBatch - execute insert: %v", ErrExecQuery, err)
	}

	written, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpsertBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return int(written), nil
}

// GetByOwnerAndDateRange получает слоты работника за период [from, to]
// (границы включительно), упорядоченные по дате и времени
func (r *Repository) GetByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"owner_id",
		"slot_date",
		"hour",
		"minute",
		"is_working",
		"work_type",
		"has_conflict",
		"conflict_type",
		"updated_at",
	).
		From("schedule_slots").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, hour ASC, minute ASC")

	// Под транзакцией материализации блокируем окно от параллельных записей
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByKeys получает существующие слоты по набору ключей.
// Результат — карта, ключ которой совпадает с domain.SlotKey.String().
// Отсутствующие ключи в карту не попадают (читаются как нерабочие).
func (r *Repository) GetByKeys(ctx context.Context, ownerID int64, keys []domain.SlotKey) (map[string]domain.ScheduleSlot, error) {
	result := make(map[string]domain.ScheduleSlot, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	// Выбираем по диапазону дат и фильтруем по точным ключам в памяти:
	// ключей в одном батче немного, а запрос остается простым
	from, to := keys[0].Date, keys[0].Date
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		wanted[key.String()] = struct{}{}
		if key.Date.Before(from) {
			from = key.Date
		}
		if key.Date.After(to) {
			to = key.Date
		}
	}

	slots, err := r.GetByOwnerAndDateRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		encoded := slot.Key().String()
		if _, ok := wanted[encoded]; ok {
			result[encoded] = slot
		}
	}

	return result, nil
}

// ClearFrom переводит все слоты работника начиная с указанной даты
// в нерабочее состояние без конфликта. Строки не удаляются — история
// ключей сохраняется, семантика чтения совпадает с удалением.
func (r *Repository) ClearFrom(ctx context.Context, ownerID int64, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("is_working", false).
		Set("has_conflict", false).
		Set("conflict_type", domain.ConflictNone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.Or{
			squirrel.Eq{"is_working": true},
			squirrel.Eq{"has_conflict": true},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ClearFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ClearFrom - execute update: %v", ErrExecQuery, err)
	}

	cleared, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ClearFrom - get rows affected: %v", ErrExecQuery, err)
	}

	return int(cleared), nil
}

// GetConflicted получает конфликтные слоты начиная с указанной даты.
// ownerID == nil означает все работники (для фонового janitor).
// conflictType == nil означает любой тип конфликта.
func (r *Repository) GetConflicted(ctx context.Context, ownerID *int64, conflictType *domain.ConflictType, from time.Time) ([]domain.ScheduleSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"owner_id",
		"slot_date",
		"hour",
		"minute",
		"is_working",
		"work_type",
		"has_conflict",
		"conflict_type",
		"updated_at",
	).
		From("schedule_slots").
		Where(squirrel.Eq{"has_conflict": true}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		OrderBy("owner_id ASC, slot_date ASC, hour ASC, minute ASC")

	if ownerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *ownerID})
	}
	if conflictType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"conflict_type": *conflictType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConflicted - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConflicted - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ClearConflictFlags снимает флаг конфликта с указанных ключей,
// не меняя рабочий статус слотов
func (r *Repository) ClearConflictFlags(ctx context.Context, ownerID int64, keys []domain.SlotKey) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	keyMatch := make(squirrel.Or, 0, len(keys))
	for _, key := range keys {
		keyMatch = append(keyMatch, squirrel.Eq{
			"slot_date": key.Date,
			"hour":      key.Hour,
			"minute":    key.Minute,
		})
	}

	query, args, err := psqlbuilder.Update("schedule_slots").
		Set("has_conflict", false).
		Set("conflict_type", domain.ConflictNone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(keyMatch).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ClearConflictFlags - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ClearConflictFlags - execute update: %v", ErrExecQuery, err)
	}

	cleared, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ClearConflictFlags - get rows affected: %v", ErrExecQuery, err)
	}

	return int(cleared), nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]domain.ScheduleSlot, error) {
	slots := make([]domain.ScheduleSlot, 0)

	for rows.Next() {
		var slot domain.ScheduleSlot
		var updatedAt sql.NullTime

		err := rows.Scan(
			&slot.OwnerID,
			&slot.Date,
			&slot.Hour,
			&slot.Minute,
			&slot.IsWorking,
			&slot.WorkType,
			&slot.HasConflict,
			&slot.ConflictType,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.Date = domain.DateOnly(slot.Date)
		slot.UpdatedAt = updatedAt.Time
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
