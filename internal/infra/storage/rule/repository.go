package rule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/dbmetrics"
	"github.com/Cappie92/bookme-sub002/pkg/psqlbuilder"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// Repository репозиторий правил повторяемости.
// На работника хранится ровно одно актуальное правило (последнее примененное).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// payload JSONB-представление вариантной части правила
type payload struct {
	Weekdays  map[int]timeRangePayload `json:"weekdays,omitempty"`
	Monthdays map[int]timeRangePayload `json:"monthdays,omitempty"`
	Shift     *shiftPayload            `json:"shift,omitempty"`
}

type timeRangePayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type shiftPayload struct {
	WorkDays  int              `json:"workDays"`
	RestDays  int              `json:"restDays"`
	StartDate string           `json:"startDate"`
	Time      timeRangePayload `json:"time"`
}

// Upsert сохраняет правило работника, затирая предыдущее
func (r *Repository) Upsert(ctx context.Context, rule *domain.RecurrenceRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := encodePayload(rule)
	if err != nil {
		return fmt.Errorf("%w: Upsert - encode payload: %v", ErrEncodePayload, err)
	}

	query, args, err := psqlbuilder.Insert("schedule_rules").
		Columns(
			"owner_id",
			"rule_type",
			"work_type",
			"payload",
			"valid_until",
		).
		Values(
			rule.OwnerID,
			rule.Type,
			rule.WorkType,
			encoded,
			rule.ValidUntil,
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			rule_type = EXCLUDED.rule_type,
			work_type = EXCLUDED.work_type,
			payload = EXCLUDED.payload,
			valid_until = EXCLUDED.valid_until,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByOwner получает последнее примененное правило работника
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.RecurrenceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"rule_type",
		"work_type",
		"payload",
		"valid_until",
		"updated_at",
	).
		From("schedule_rules").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rule      domain.RecurrenceRule
		encoded   []byte
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.OwnerID,
		&rule.Type,
		&rule.WorkType,
		&encoded,
		&rule.ValidUntil,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - scan rule: %v", ErrScanRow, err)
	}

	if err := decodePayload(encoded, &rule); err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - decode payload: %v", ErrDecodePayload, err)
	}

	rule.ValidUntil = domain.DateOnly(rule.ValidUntil)
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func encodePayload(rule *domain.RecurrenceRule) ([]byte, error) {
	p := payload{}

	if rule.Weekdays != nil {
		p.Weekdays = make(map[int]timeRangePayload, len(rule.Weekdays))
		for day, tr := range rule.Weekdays {
			p.Weekdays[day] = timeRangePayload{Start: tr.Start.String(), End: tr.End.String()}
		}
	}

	if rule.Monthdays != nil {
		p.Monthdays = make(map[int]timeRangePayload, len(rule.Monthdays))
		for day, tr := range rule.Monthdays {
			p.Monthdays[day] = timeRangePayload{Start: tr.Start.String(), End: tr.End.String()}
		}
	}

	if rule.Shift != nil {
		p.Shift = &shiftPayload{
			WorkDays:  rule.Shift.WorkDays,
			RestDays:  rule.Shift.RestDays,
			StartDate: rule.Shift.StartDate.Format(domain.DateFormat),
			Time: timeRangePayload{
				Start: rule.Shift.Time.Start.String(),
				End:   rule.Shift.Time.End.String(),
			},
		}
	}

	return json.Marshal(p)
}

func decodePayload(encoded []byte, rule *domain.RecurrenceRule) error {
	var p payload
	if err := json.Unmarshal(encoded, &p); err != nil {
		return err
	}

	if p.Weekdays != nil {
		rule.Weekdays = make(map[int]domain.TimeRange, len(p.Weekdays))
		for day, tr := range p.Weekdays {
			decoded, err := decodeTimeRange(tr)
			if err != nil {
				return err
			}
			rule.Weekdays[day] = decoded
		}
	}

	if p.Monthdays != nil {
		rule.Monthdays = make(map[int]domain.TimeRange, len(p.Monthdays))
		for day, tr := range p.Monthdays {
			decoded, err := decodeTimeRange(tr)
			if err != nil {
				return err
			}
			rule.Monthdays[day] = decoded
		}
	}

	if p.Shift != nil {
		startDate, err := time.Parse(domain.DateFormat, p.Shift.StartDate)
		if err != nil {
			return err
		}
		shiftTime, err := decodeTimeRange(p.Shift.Time)
		if err != nil {
			return err
		}
		rule.Shift = &domain.ShiftPattern{
			WorkDays:  p.Shift.WorkDays,
			RestDays:  p.Shift.RestDays,
			StartDate: startDate,
			Time:      shiftTime,
		}
	}

	return nil
}

func decodeTimeRange(tr timeRangePayload) (domain.TimeRange, error) {
	start, err := types.NewTimeStringFromString(tr.Start)
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := types.NewTimeStringFromString(tr.End)
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
}
