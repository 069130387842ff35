package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.roster_id, a.roster_missing,
	a.first_check_in_time, a.first_check_out_time,
	a.second_check_in_time, a.second_check_out_time,
	a.status, a.minutes_late, a.early_departure_minutes,
	a.working_duration_minutes, a.break_duration_minutes,
	a.created_at, a.updated_at,
	e.full_name AS employee_name, e.department_id, d.name AS department_name
`

const attendanceJoins = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.RosterID, &att.RosterMissing,
		&att.FirstCheckInTime, &att.FirstCheckOutTime,
		&att.SecondCheckInTime, &att.SecondCheckOutTime,
		&att.Status, &att.MinutesLate, &att.EarlyDepartureMinutes,
		&att.WorkingDurationMinutes, &att.BreakDurationMinutes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.DepartmentID, &att.DepartmentName,
	)
	return att, err
}

// Upsert implements attendance.AttendanceRepository.
// One record per employee per calendar date; conflicting writes update the
// existing record so event recording and metric recomputation share a path.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, roster_id, roster_missing,
			first_check_in_time, first_check_out_time,
			second_check_in_time, second_check_out_time,
			status, minutes_late, early_departure_minutes,
			working_duration_minutes, break_duration_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			roster_id = EXCLUDED.roster_id,
			roster_missing = EXCLUDED.roster_missing,
			first_check_in_time = EXCLUDED.first_check_in_time,
			first_check_out_time = EXCLUDED.first_check_out_time,
			second_check_in_time = EXCLUDED.second_check_in_time,
			second_check_out_time = EXCLUDED.second_check_out_time,
			status = EXCLUDED.status,
			minutes_late = EXCLUDED.minutes_late,
			early_departure_minutes = EXCLUDED.early_departure_minutes,
			working_duration_minutes = EXCLUDED.working_duration_minutes,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		record.EmployeeID,
		record.Date,
		record.RosterID,
		record.RosterMissing,
		record.FirstCheckInTime,
		record.FirstCheckOutTime,
		record.SecondCheckInTime,
		record.SecondCheckOutTime,
		record.Status,
		record.MinutesLate,
		record.EarlyDepartureMinutes,
		record.WorkingDurationMinutes,
		record.BreakDurationMinutes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = $1`, attendanceColumns, attendanceJoins)

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.employee_id = $1 AND a.date = $2::date
		LIMIT 1
	`, attendanceColumns, attendanceJoins)

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// FindByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindByDateRange(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if !filter.StartDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argPos))
		args = append(args, filter.StartDate)
		argPos++
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argPos))
		args = append(args, filter.EndDate)
		argPos++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argPos))
		args = append(args, filter.DepartmentID)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s WHERE %s`, attendanceJoins, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY a.date DESC, e.full_name`, attendanceColumns, attendanceJoins, where)

	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

// FindOpenFirstSessions implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindOpenFirstSessions(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.date < $1::date
		  AND a.status IN ('FIRST_SESSION_ACTIVE', 'FIRST_CHECK_OUT')
		ORDER BY a.date
	`, attendanceColumns, attendanceJoins)

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find open sessions: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}
