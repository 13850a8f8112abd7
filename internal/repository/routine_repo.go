package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"davefit/internal/domain"
)

type RoutineRepository interface {
	ListPublic(ctx context.Context, limit int) ([]domain.RoutineCandidate, error)
}

type PgRoutineRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoutineRepository(pool *pgxpool.Pool) *PgRoutineRepository {
	return &PgRoutineRepository{pool: pool}
}

// ListPublic devuelve el catalogo publico en orden de alta; el recomendador respeta ese orden.
func (r *PgRoutineRepository) ListPublic(ctx context.Context, limit int) ([]domain.RoutineCandidate, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, name, description, level, location, estimated_minutes, days_per_week,
			objective, is_public, created_by, created_at, updated_at
		FROM routines
		WHERE is_public = TRUE
		ORDER BY created_at ASC, id ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]domain.RoutineCandidate, 0)
	for rows.Next() {
		var (
			routine  domain.RoutineCandidate
			level    string
			location string
		)
		if err := rows.Scan(
			&routine.ID,
			&routine.Name,
			&routine.Description,
			&level,
			&location,
			&routine.EstimatedMinutes,
			&routine.DaysPerWeek,
			&routine.Objective,
			&routine.IsPublic,
			&routine.CreatedBy,
			&routine.CreatedAt,
			&routine.UpdatedAt,
		); err != nil {
			return nil, err
		}
		routine.Level = domain.ParseLevel(level)
		routine.Location = domain.ParseLocation(location)
		routines = append(routines, routine)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routines, nil
}
