package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"davefit/internal/domain"
)

type WorkoutRepository interface {
	Create(ctx context.Context, entry domain.WorkoutLogEntry) error
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.WorkoutLogEntry, error)
}

type PgWorkoutRepository struct {
	pool *pgxpool.Pool
}

func NewPgWorkoutRepository(pool *pgxpool.Pool) *PgWorkoutRepository {
	return &PgWorkoutRepository{pool: pool}
}

func (r *PgWorkoutRepository) Create(ctx context.Context, entry domain.WorkoutLogEntry) error {
	const query = `
		INSERT INTO workout_logs (id, user_id, routine_id, date, duration_minutes, calories_burned,
			perceived_effort, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.RoutineID,
		entry.Date,
		entry.DurationMinutes,
		entry.CaloriesBurned,
		entry.PerceivedEffort,
		entry.Notes,
		entry.CreatedAt,
	)
	return err
}

// ListRecent devuelve el historial del mas reciente al mas antiguo.
func (r *PgWorkoutRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.WorkoutLogEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT id, user_id, routine_id, date, duration_minutes, calories_burned,
			perceived_effort, notes, created_at
		FROM workout_logs
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.WorkoutLogEntry, 0, limit)
	for rows.Next() {
		var entry domain.WorkoutLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.RoutineID,
			&entry.Date,
			&entry.DurationMinutes,
			&entry.CaloriesBurned,
			&entry.PerceivedEffort,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
