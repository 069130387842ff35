package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepository{db: db}
}

const rosterColumns = `
	id, employee_id, start_date, end_date, start_time, end_time,
	break_duration_minutes, early_departure_threshold_minutes, grace_period_minutes,
	is_active, shift_pattern, created_at, updated_at
`

func scanRoster(row pgx.Row) (roster.Roster, error) {
	var r roster.Roster
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate, &r.StartTime, &r.EndTime,
		&r.BreakDurationMinutes, &r.EarlyDepartureThresholdMinutes, &r.GracePeriodMinutes,
		&r.IsActive, &r.ShiftPattern, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements roster.RosterRepository.
func (repo *rosterRepository) Create(ctx context.Context, newRoster roster.Roster) (roster.Roster, error) {
	q := GetQuerier(ctx, repo.db)

	id, err := uuid.NewV7()
	if err != nil {
		return roster.Roster{}, fmt.Errorf("failed to generate roster id: %w", err)
	}

	query := `
		INSERT INTO rosters (
			id, employee_id, start_date, end_date, start_time, end_time,
			break_duration_minutes, early_departure_threshold_minutes, grace_period_minutes,
			is_active, shift_pattern
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		newRoster.EmployeeID,
		newRoster.StartDate,
		newRoster.EndDate,
		newRoster.StartTime,
		newRoster.EndTime,
		newRoster.BreakDurationMinutes,
		newRoster.EarlyDepartureThresholdMinutes,
		newRoster.GracePeriodMinutes,
		newRoster.IsActive,
		newRoster.ShiftPattern,
	).Scan(&newRoster.ID, &newRoster.CreatedAt, &newRoster.UpdatedAt)

	if err != nil {
		return roster.Roster{}, fmt.Errorf("failed to create roster: %w", err)
	}

	return newRoster, nil
}

// GetByID implements roster.RosterRepository.
func (repo *rosterRepository) GetByID(ctx context.Context, id string) (roster.Roster, error) {
	q := GetQuerier(ctx, repo.db)

	query := fmt.Sprintf(`SELECT %s FROM rosters WHERE id = $1`, rosterColumns)

	r, err := scanRoster(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.Roster{}, roster.ErrRosterNotFound
		}
		return roster.Roster{}, fmt.Errorf("failed to get roster: %w", err)
	}

	return r, nil
}

// FindActiveRosters implements roster.RosterRepository.
func (repo *rosterRepository) FindActiveRosters(ctx context.Context, employeeID string, date time.Time) ([]roster.Roster, error) {
	q := GetQuerier(ctx, repo.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM rosters
		WHERE employee_id = $1
		  AND is_active = TRUE
		  AND start_date <= $2::date
		  AND end_date >= $2::date
		ORDER BY created_at DESC
	`, rosterColumns)

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find active rosters: %w", err)
	}
	defer rows.Close()

	var rosters []roster.Roster
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, r)
	}

	return rosters, rows.Err()
}

// List implements roster.RosterRepository.
func (repo *rosterRepository) List(ctx context.Context, filter roster.RosterFilter) ([]roster.Roster, int64, error) {
	q := GetQuerier(ctx, repo.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.ActiveOn != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = TRUE AND start_date <= $%d::date AND end_date >= $%d::date", argPos, argPos))
		args = append(args, *filter.ActiveOn)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM rosters WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rosters: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM rosters
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, rosterColumns, where, argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer rows.Close()

	var rosters []roster.Roster
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, r)
	}

	return rosters, total, rows.Err()
}

// Update implements roster.RosterRepository.
func (repo *rosterRepository) Update(ctx context.Context, req roster.UpdateRosterRequest) (roster.Roster, error) {
	q := GetQuerier(ctx, repo.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.StartTime != nil {
		appendSet("start_time", *req.StartTime)
	}
	if req.EndTime != nil {
		appendSet("end_time", *req.EndTime)
	}
	if req.BreakDurationMinutes != nil {
		appendSet("break_duration_minutes", *req.BreakDurationMinutes)
	}
	if req.EarlyDepartureThresholdMinutes != nil {
		appendSet("early_departure_threshold_minutes", *req.EarlyDepartureThresholdMinutes)
	}
	if req.GracePeriodMinutes != nil {
		appendSet("grace_period_minutes", *req.GracePeriodMinutes)
	}
	if req.EndDate != nil {
		appendSet("end_date", *req.EndDate)
	}
	if len(req.ShiftPattern) > 0 {
		appendSet("shift_pattern", []byte(req.ShiftPattern))
	}

	query := fmt.Sprintf(`
		UPDATE rosters SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, rosterColumns)
	args = append(args, req.ID)

	r, err := scanRoster(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.Roster{}, roster.ErrRosterNotFound
		}
		return roster.Roster{}, fmt.Errorf("failed to update roster: %w", err)
	}

	return r, nil
}

// Deactivate implements roster.RosterRepository.
func (repo *rosterRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, repo.db)

	tag, err := q.Exec(ctx, `
		UPDATE rosters SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrRosterNotFound
	}

	return nil
}
