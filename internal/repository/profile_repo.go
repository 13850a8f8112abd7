package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"davefit/internal/domain"
)

// ProfileRepository define el contrato de persistencia para perfiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	Upsert(ctx context.Context, userID, email string, input ProfileUpdate) (domain.Profile, error)
}

// ProfileUpdate es una actualizacion parcial: los campos nil conservan el valor guardado.
type ProfileUpdate struct {
	FullName            *string
	BirthDate           *time.Time
	Sex                 *string
	WeightKG            *float64
	HeightCM            *float64
	Goal                *string
	Level               *string
	Location            *string
	TrainingDaysPerWeek *int
}

// PgProfileRepository implementa ProfileRepository usando pgxpool.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, email, full_name, avatar_url, birth_date, sex, weight_kg, height_cm,
		goal, level, location, role, training_days_per_week, created_at, updated_at`

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	// pgx.ErrNoRows se propaga tal cual; el servicio lo traduce.
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *PgProfileRepository) Upsert(ctx context.Context, userID, email string, input ProfileUpdate) (domain.Profile, error) {
	query := `
		INSERT INTO profiles (id, user_id, email, full_name, birth_date, sex, weight_kg, height_cm,
			goal, level, location, training_days_per_week, role, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, 0), 'user', NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			email = COALESCE(NULLIF(EXCLUDED.email, ''), profiles.email),
			full_name = COALESCE($3, profiles.full_name),
			birth_date = COALESCE($4, profiles.birth_date),
			sex = COALESCE($5, profiles.sex),
			weight_kg = COALESCE($6, profiles.weight_kg),
			height_cm = COALESCE($7, profiles.height_cm),
			goal = COALESCE($8, profiles.goal),
			level = COALESCE($9, profiles.level),
			location = COALESCE($10, profiles.location),
			training_days_per_week = COALESCE($11, profiles.training_days_per_week),
			updated_at = NOW()
		RETURNING ` + profileColumns

	return scanProfile(r.pool.QueryRow(ctx, query,
		userID,
		email,
		input.FullName,
		input.BirthDate,
		input.Sex,
		input.WeightKG,
		input.HeightCM,
		input.Goal,
		input.Level,
		input.Location,
		input.TrainingDaysPerWeek,
	))
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		profile  domain.Profile
		sex      *string
		goal     *string
		level    *string
		location *string
	)
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Email,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.BirthDate,
		&sex,
		&profile.WeightKG,
		&profile.HeightCM,
		&goal,
		&level,
		&location,
		&profile.Role,
		&profile.TrainingDaysPerWeek,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	// Valores fuera del conjunto cerrado se tratan como no definidos.
	profile.Sex = domain.ParseSex(deref(sex))
	profile.Goal = domain.ParseGoal(deref(goal))
	profile.Level = domain.ParseLevel(deref(level))
	profile.Location = domain.ParseLocation(deref(location))
	return profile, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
