package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleOverrideRepository struct {
	db *database.DB
}

func NewScheduleOverrideRepository(db *database.DB) roster.ScheduleOverrideRepository {
	return &scheduleOverrideRepository{db: db}
}

const overrideColumns = `
	id, employee_id, department_id, start_time, end_time,
	start_date, end_date, created_at, updated_at
`

func scanOverride(row pgx.Row) (roster.ScheduleOverride, error) {
	var o roster.ScheduleOverride
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.DepartmentID, &o.StartTime, &o.EndTime,
		&o.StartDate, &o.EndDate, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create implements roster.ScheduleOverrideRepository.
func (repo *scheduleOverrideRepository) Create(ctx context.Context, override roster.ScheduleOverride) (roster.ScheduleOverride, error) {
	q := GetQuerier(ctx, repo.db)

	id, err := uuid.NewV7()
	if err != nil {
		return roster.ScheduleOverride{}, fmt.Errorf("failed to generate override id: %w", err)
	}

	query := `
		INSERT INTO schedule_overrides (
			id, employee_id, department_id, start_time, end_time, start_date, end_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		override.EmployeeID,
		override.DepartmentID,
		override.StartTime,
		override.EndTime,
		override.StartDate,
		override.EndDate,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)

	if err != nil {
		return roster.ScheduleOverride{}, fmt.Errorf("failed to create schedule override: %w", err)
	}

	return override, nil
}

// GetByID implements roster.ScheduleOverrideRepository.
func (repo *scheduleOverrideRepository) GetByID(ctx context.Context, id string) (roster.ScheduleOverride, error) {
	q := GetQuerier(ctx, repo.db)

	query := fmt.Sprintf(`SELECT %s FROM schedule_overrides WHERE id = $1`, overrideColumns)

	o, err := scanOverride(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ScheduleOverride{}, roster.ErrOverrideNotFound
		}
		return roster.ScheduleOverride{}, fmt.Errorf("failed to get schedule override: %w", err)
	}

	return o, nil
}

// FindForDate implements roster.ScheduleOverrideRepository.
func (repo *scheduleOverrideRepository) FindForDate(ctx context.Context, employeeID, departmentID string, date time.Time) ([]roster.ScheduleOverride, error) {
	q := GetQuerier(ctx, repo.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM schedule_overrides
		WHERE (employee_id = $1 OR department_id = $2)
		  AND start_date <= $3::date
		  AND end_date >= $3::date
		ORDER BY employee_id NULLS LAST, created_at DESC
	`, overrideColumns)

	rows, err := q.Query(ctx, query, employeeID, departmentID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule overrides: %w", err)
	}
	defer rows.Close()

	var overrides []roster.ScheduleOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule override: %w", err)
		}
		overrides = append(overrides, o)
	}

	return overrides, rows.Err()
}

// Delete implements roster.ScheduleOverrideRepository.
func (repo *scheduleOverrideRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, repo.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrOverrideNotFound
	}

	return nil
}
