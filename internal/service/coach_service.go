package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"davefit/internal/domain"
	"davefit/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidWorkout  = errors.New("invalid workout")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidProfile  = errors.New("invalid profile")
)

const (
	defaultHistoryWindow = 10
	defaultCatalogLimit  = 100
)

// CoachService obtiene perfil, catalogo e historial de los repositorios y delega en el motor.
// El motor no toca la base: esta capa es la unica con I/O.
type CoachService struct {
	logger        *zap.Logger
	profiles      repository.ProfileRepository
	routines      repository.RoutineRepository
	workouts      repository.WorkoutRepository
	calculator    MetabolicCalculator
	recommender   RoutineRecommender
	historyWindow int
	catalogLimit  int
	now           func() time.Time
}

// CoachOptions ajusta ventanas de lectura y reloj.
type CoachOptions struct {
	HistoryWindow int
	CatalogLimit  int
	Now           func() time.Time
}

func NewCoachService(
	logger *zap.Logger,
	profiles repository.ProfileRepository,
	routines repository.RoutineRepository,
	workouts repository.WorkoutRepository,
	opts CoachOptions,
) *CoachService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = defaultHistoryWindow
	}
	if opts.CatalogLimit <= 0 {
		opts.CatalogLimit = defaultCatalogLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CoachService{
		logger:        logger,
		profiles:      profiles,
		routines:      routines,
		workouts:      workouts,
		calculator:    MetabolicCalculator{Now: opts.Now},
		recommender:   NewRoutineRecommender(FatigueDetector{Now: opts.Now}),
		historyWindow: opts.HistoryWindow,
		catalogLimit:  opts.CatalogLimit,
		now:           opts.Now,
	}
}

// Preview calcula las cifras para un perfil aun no guardado (onboarding).
func (s *CoachService) Preview(profile domain.Profile) domain.NutritionSummary {
	return s.calculator.Summary(profile)
}

// NutritionFor calcula las cifras del perfil guardado del usuario.
func (s *CoachService) NutritionFor(ctx context.Context, userID string) (domain.NutritionSummary, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return domain.NutritionSummary{}, err
	}
	summary := s.calculator.Summary(profile)
	if !summary.Target.Computable() {
		s.logger.Info("calorie target not computable", zap.String("user_id", userID))
	}
	return summary, nil
}

// RecommendationsFor arma la lista de rutinas recomendadas para el usuario.
func (s *CoachService) RecommendationsFor(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.routines.ListPublic(ctx, s.catalogLimit)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	history, err := s.workouts.ListRecent(ctx, userID, s.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	recs := s.recommender.Recommend(profile, catalog, history)
	s.logger.Debug("recommendations built",
		zap.String("user_id", userID),
		zap.Int("catalog", len(catalog)),
		zap.Int("history", len(history)),
		zap.Int("recommended", len(recs)),
	)
	return recs, nil
}

// LogWorkoutInput es una sesion completada por el usuario.
type LogWorkoutInput struct {
	RoutineID       string
	Date            *time.Time
	DurationMinutes *int
	CaloriesBurned  *int
	PerceivedEffort *int
	Notes           string
}

// LogWorkout guarda una sesion en el historial que luego consume el detector de fatiga.
func (s *CoachService) LogWorkout(ctx context.Context, userID string, input LogWorkoutInput) (domain.WorkoutLogEntry, error) {
	if s.workouts == nil {
		return domain.WorkoutLogEntry{}, errors.New("coach service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return domain.WorkoutLogEntry{}, fmt.Errorf("%w: user id required", ErrInvalidWorkout)
	}
	if input.PerceivedEffort != nil && (*input.PerceivedEffort < 1 || *input.PerceivedEffort > 5) {
		return domain.WorkoutLogEntry{}, fmt.Errorf("%w: perceived_effort must be between 1 and 5", ErrInvalidWorkout)
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		return domain.WorkoutLogEntry{}, fmt.Errorf("%w: duration_minutes must be 0 or greater", ErrInvalidWorkout)
	}

	now := s.now().UTC()
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	entry := domain.WorkoutLogEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            date,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		PerceivedEffort: input.PerceivedEffort,
		CreatedAt:       now,
	}
	if routineID := strings.TrimSpace(input.RoutineID); routineID != "" {
		entry.RoutineID = &routineID
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		entry.Notes = &notes
	}

	if err := s.workouts.Create(ctx, entry); err != nil {
		return domain.WorkoutLogEntry{}, err
	}
	return entry, nil
}

func (s *CoachService) loadProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if s.profiles == nil {
		return domain.Profile{}, errors.New("coach service not configured")
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return profile, nil
}
